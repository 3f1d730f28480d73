package providers

import (
	"context"
	"time"

	"github.com/SscSPs/mma_fx/internal/core/domain"
)

// PriceSource fetches historical daily prices of a currency pair from a third party.
type PriceSource interface {
	// FetchPrices returns the prices of base/quote dated on or after from, or the whole
	// available history when from is nil. It returns an empty slice when there is no new data.
	FetchPrices(ctx context.Context, baseCurrencyCode, quoteCurrencyCode string, from *time.Time) ([]domain.PricePoint, error)
}
