package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/mma_fx/internal/core/domain"
)

// ExchangeRateReader defines read operations for quoted currency pairs
type ExchangeRateReader interface {
	// FindExchangeRateByID retrieves a quoted pair by its ID.
	FindExchangeRateByID(ctx context.Context, exchangeRateID string) (*domain.ExchangeRate, error)

	// FindExchangeRateByCurrencies retrieves the pair quoted exactly as base/quote.
	// The reverse direction is not considered.
	FindExchangeRateByCurrencies(ctx context.Context, baseCurrencyCode, quoteCurrencyCode string) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves all quoted pairs ordered by base then quote code.
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for quoted currency pairs
type ExchangeRateWriter interface {
	// SaveExchangeRate persists a new quoted pair. It fails with ErrDuplicate when the
	// pair already exists in either direction.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// PriceFilter restricts a price history listing. Zero values mean "unbounded".
type PriceFilter struct {
	From  *time.Time // inclusive
	To    *time.Time // inclusive
	After *time.Time // exclusive, used for pagination
	Limit int
}

// ExchangeRatePriceReader defines read operations on the price history of quoted pairs
type ExchangeRatePriceReader interface {
	// FindLatestPriceAtOrBefore returns the most recent price of the pair quoted exactly
	// as base/quote whose date is not after date. It returns ErrNotFound when there is none.
	FindLatestPriceAtOrBefore(ctx context.Context, baseCurrencyCode, quoteCurrencyCode string, date time.Time) (*domain.ExchangeRatePrice, error)

	// FindLatestPriceDate returns the date of the most recent stored price, or nil when
	// the pair has no prices yet.
	FindLatestPriceDate(ctx context.Context, exchangeRateID string) (*time.Time, error)

	// ListPrices returns the price history of a pair in ascending date order.
	ListPrices(ctx context.Context, exchangeRateID string, filter PriceFilter) ([]domain.ExchangeRatePrice, error)
}

// ExchangeRatePriceWriter defines write operations on the price history of quoted pairs
type ExchangeRatePriceWriter interface {
	// UpsertPrices inserts or updates all points in one batch keyed by (pair, date).
	// Either every point is written or none is. It returns the number of points written.
	UpsertPrices(ctx context.Context, exchangeRateID string, points []domain.PricePoint, userID string) (int, error)
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
// This is a facade for clients that need access to all operations
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
	ExchangeRatePriceReader
	ExchangeRatePriceWriter
}
