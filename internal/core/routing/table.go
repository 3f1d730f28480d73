// Package routing derives currency conversion routes from the set of quoted pairs.
package routing

import (
	"fmt"
	"slices"
	"time"

	"github.com/SscSPs/mma_fx/internal/apperrors"
	"github.com/SscSPs/mma_fx/internal/core/domain"
	"github.com/SscSPs/mma_fx/internal/core/graph"
)

// Table is an immutable snapshot of next hops between every pair of currencies.
type Table struct {
	nextHop    map[string]map[string]string
	currencies []string
	skipped    []domain.ExchangeRate
	builtAt    time.Time
}

// BuildTable turns currencies and quoted pairs into a routing table.
//
// Every quoted pair is an undirected edge of weight 1. Pairs referencing a currency
// that is not in currencies are left out of the graph and reported by Skipped.
func BuildTable(currencies []string, pairs []domain.ExchangeRate) *Table {
	vertices := slices.Clone(currencies)
	slices.Sort(vertices)
	vertices = slices.Compact(vertices)

	known := make(map[string]bool, len(vertices))
	for _, c := range vertices {
		known[c] = true
	}

	adjacent := make(map[string]map[string]bool, len(vertices))
	var skipped []domain.ExchangeRate
	for _, p := range pairs {
		if !known[p.BaseCurrencyCode] || !known[p.QuoteCurrencyCode] || p.BaseCurrencyCode == p.QuoteCurrencyCode {
			skipped = append(skipped, p)
			continue
		}
		link(adjacent, p.BaseCurrencyCode, p.QuoteCurrencyCode)
		link(adjacent, p.QuoteCurrencyCode, p.BaseCurrencyCode)
	}

	solved := graph.FloydWarshall(vertices, func(from, to string) (float64, bool) {
		if adjacent[from][to] {
			return 1, true
		}
		return 0, false
	})

	return &Table{
		nextHop:    solved.NextHops(),
		currencies: vertices,
		skipped:    skipped,
		builtAt:    time.Now().UTC(),
	}
}

func link(adjacent map[string]map[string]bool, a, b string) {
	if adjacent[a] == nil {
		adjacent[a] = make(map[string]bool)
	}
	adjacent[a][b] = true
}

// Route returns the currency codes forming the conversion path from source to target,
// both ends included. Route(x, x) is [x].
func (t *Table) Route(source, target string) ([]string, error) {
	path := []string{source}
	for current := source; current != target; {
		next, ok := t.nextHop[current][target]
		if !ok {
			return nil, fmt.Errorf("%w from currency code %s to %s", apperrors.ErrNoConversionRoute, source, target)
		}
		path = append(path, next)
		current = next
	}
	return path, nil
}

// Currencies returns the sorted vertex set of the table.
func (t *Table) Currencies() []string {
	return slices.Clone(t.currencies)
}

// Skipped returns the pairs that could not be placed in the graph.
func (t *Table) Skipped() []domain.ExchangeRate {
	return slices.Clone(t.skipped)
}

// BuiltAt returns when the table was computed.
func (t *Table) BuiltAt() time.Time {
	return t.builtAt
}
