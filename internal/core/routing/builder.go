package routing

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/SscSPs/mma_fx/internal/apperrors"
	"github.com/SscSPs/mma_fx/internal/core/domain"
	portsrepo "github.com/SscSPs/mma_fx/internal/core/ports/repositories"
)

// Builder owns the current routing table. Rebuild replaces it wholesale; readers
// always see either the previous or the next complete table.
type Builder struct {
	currencies portsrepo.CurrencyReader
	pairs      portsrepo.ExchangeRateReader
	logger     *slog.Logger
	table      atomic.Pointer[Table]
}

// NewBuilder creates a Builder with no table. Route fails with
// apperrors.ErrRoutingTableNotReady until the first Rebuild succeeds.
func NewBuilder(currencies portsrepo.CurrencyReader, pairs portsrepo.ExchangeRateReader, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		currencies: currencies,
		pairs:      pairs,
		logger:     logger,
	}
}

// Rebuild loads currencies and quoted pairs and swaps in a freshly computed table.
// On failure the previous table stays in place.
func (b *Builder) Rebuild(ctx context.Context) error {
	start := time.Now()

	currencies, err := b.currencies.ListCurrencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to list currencies for routing: %w", err)
	}
	pairs, err := b.pairs.ListExchangeRates(ctx)
	if err != nil {
		return fmt.Errorf("failed to list exchange rates for routing: %w", err)
	}

	codes := make([]string, len(currencies))
	for i, c := range currencies {
		codes[i] = c.CurrencyCode
	}

	table := BuildTable(codes, pairs)
	for _, p := range table.Skipped() {
		b.logger.Warn("Exchange rate left out of routing graph",
			slog.String("exchange_rate_id", p.ExchangeRateID),
			slog.String("pair", p.String()))
	}

	b.Install(table)
	b.logger.Info("Currency routing table rebuilt",
		slog.Int("currencies", len(codes)),
		slog.Int("pairs", len(pairs)-len(table.skipped)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// Install swaps in a prebuilt table.
func (b *Builder) Install(table *Table) {
	b.table.Store(table)
}

// Current returns the current table, or nil before the first build.
func (b *Builder) Current() *Table {
	return b.table.Load()
}

// Route resolves a conversion path against the current table.
func (b *Builder) Route(sourceCode, targetCode string) ([]string, error) {
	table := b.Current()
	if table == nil {
		return nil, apperrors.ErrRoutingTableNotReady
	}
	return table.Route(sourceCode, targetCode)
}

// Snapshot describes the current table.
func (b *Builder) Snapshot() ([]string, []domain.ExchangeRate, time.Time, bool) {
	table := b.Current()
	if table == nil {
		return nil, nil, time.Time{}, false
	}
	return table.Currencies(), table.Skipped(), table.BuiltAt(), true
}
