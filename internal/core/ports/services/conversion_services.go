package services

import (
	"context"
	"time"

	"github.com/SscSPs/mma_fx/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyConverterSvc converts monetary amounts between currencies.
type CurrencyConverterSvc interface {
	// ConvertCurrencyAmount converts amount from source to target using the prices valid
	// at asOf (start of today in UTC when nil).
	ConvertCurrencyAmount(ctx context.Context, amount decimal.Decimal, sourceCode, targetCode string, asOf *time.Time) (decimal.Decimal, error)

	// ConvertWithRoute is ConvertCurrencyAmount that also returns the route used.
	ConvertWithRoute(ctx context.Context, amount decimal.Decimal, sourceCode, targetCode string, asOf *time.Time) (decimal.Decimal, []string, error)
}

// ExchangeRateUpdaterSvc merges new prices from the external price source.
type ExchangeRateUpdaterSvc interface {
	// RefreshAll refreshes every quoted pair. Per-pair failures are reported in the
	// summary; an error is only returned when the pairs could not be listed.
	RefreshAll(ctx context.Context) (*domain.RefreshSummary, error)
}

// RoutingSvc owns the currency routing table.
type RoutingSvc interface {
	// Route returns the conversion path from source to target, both included.
	Route(sourceCode, targetCode string) ([]string, error)

	// Rebuild recomputes the routing table from the configured currencies and pairs.
	Rebuild(ctx context.Context) error

	// Snapshot describes the current table. ok is false before the first build.
	Snapshot() (currencies []string, skipped []domain.ExchangeRate, builtAt time.Time, ok bool)
}
