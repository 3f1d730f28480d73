package dto

import (
	"time"

	"github.com/SscSPs/mma_fx/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// CreateExchangeRateRequest defines the structure for configuring a new quoted pair.
type CreateExchangeRateRequest struct {
	BaseCurrencyCode  string `json:"baseCurrencyCode" binding:"required,currency_code"`
	QuoteCurrencyCode string `json:"quoteCurrencyCode" binding:"required,currency_code"`
}

// CreateExchangeRatePriceRequest defines the structure for recording a price by hand.
type CreateExchangeRatePriceRequest struct {
	Date  string           `json:"date" binding:"required,datetime=2006-01-02"`
	Value *decimal.Decimal `json:"value" binding:"required"`
}

// ExchangeRateResponse defines the structure for API responses containing quoted pair details.
type ExchangeRateResponse struct {
	ExchangeRateID    string                      `json:"exchangeRateID"`
	BaseCurrencyCode  string                      `json:"baseCurrencyCode"`
	QuoteCurrencyCode string                      `json:"quoteCurrencyCode"`
	LatestPriceDate   string                      `json:"latestPriceDate,omitempty"`
	Prices            []ExchangeRatePriceResponse `json:"prices,omitempty"`
	CreatedAt         time.Time                   `json:"createdAt"`
	CreatedBy         string                      `json:"createdBy"`
	LastUpdatedAt     time.Time                   `json:"lastUpdatedAt"`
	LastUpdatedBy     string                      `json:"lastUpdatedBy"`
}

// ExchangeRatePriceResponse is one dated price of a quoted pair.
type ExchangeRatePriceResponse struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// GetExchangeRateParams are the query parameters of the pair details endpoint.
type GetExchangeRateParams struct {
	IncludePrices bool   `form:"includePrices"`
	From          string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To            string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// ListExchangeRatePricesParams are the query parameters of the price history endpoint.
type ListExchangeRatePricesParams struct {
	From      string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	PageSize  int    `form:"pageSize" binding:"omitempty,min=1,max=1000"`
	PageToken string `form:"pageToken"`
}

// ListExchangeRatePricesResponse is a page of price history.
type ListExchangeRatePricesResponse struct {
	Prices        []ExchangeRatePriceResponse `json:"prices"`
	NextPageToken string                      `json:"nextPageToken,omitempty"`
}

// RefreshExchangeRatesResponse reports the outcome of an administrative price refresh.
type RefreshExchangeRatesResponse struct {
	Pairs          int      `json:"pairs"`
	Updated        int      `json:"updated"`
	Skipped        int      `json:"skipped"`
	Failed         int      `json:"failed"`
	PricesUpserted int      `json:"pricesUpserted"`
	FailedPairs    []string `json:"failedPairs,omitempty"`
	DurationMillis int64    `json:"durationMillis"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:    rate.ExchangeRateID,
		BaseCurrencyCode:  rate.BaseCurrencyCode,
		QuoteCurrencyCode: rate.QuoteCurrencyCode,
		CreatedAt:         rate.CreatedAt,
		CreatedBy:         rate.CreatedBy,
		LastUpdatedAt:     rate.LastUpdatedAt,
		LastUpdatedBy:     rate.LastUpdatedBy,
	}
}

// ToExchangeRateDetailsResponse converts a pair with its latest price date and prices.
func ToExchangeRateDetailsResponse(details *domain.ExchangeRateDetails) ExchangeRateResponse {
	res := ToExchangeRateResponse(&details.ExchangeRate)
	if details.LatestPriceDate != nil {
		res.LatestPriceDate = details.LatestPriceDate.Format(DateLayout)
	}
	if details.Prices != nil {
		res.Prices = ToListExchangeRatePriceResponse(details.Prices)
	}
	return res
}

// ToListExchangeRateResponse converts a slice of pair details to a slice of ExchangeRateResponse DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRateDetails) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateDetailsResponse(&rates[i])
	}
	return responses
}

// ToExchangeRatePriceResponse converts a single price.
func ToExchangeRatePriceResponse(price *domain.ExchangeRatePrice) ExchangeRatePriceResponse {
	return ExchangeRatePriceResponse{
		Date:  price.Date.Format(DateLayout),
		Value: price.Value,
	}
}

// ToListExchangeRatePriceResponse converts a price history.
func ToListExchangeRatePriceResponse(prices []domain.ExchangeRatePrice) []ExchangeRatePriceResponse {
	res := make([]ExchangeRatePriceResponse, len(prices))
	for i := range prices {
		res[i] = ToExchangeRatePriceResponse(&prices[i])
	}
	return res
}

// ToRefreshExchangeRatesResponse converts a refresh summary.
func ToRefreshExchangeRatesResponse(s *domain.RefreshSummary) RefreshExchangeRatesResponse {
	return RefreshExchangeRatesResponse{
		Pairs:          s.Pairs,
		Updated:        s.Updated,
		Skipped:        s.Skipped,
		Failed:         s.Failed,
		PricesUpserted: s.PricesUpserted,
		FailedPairs:    s.FailedPairs,
		DurationMillis: s.Duration.Milliseconds(),
	}
}
