package dto

import (
	"time"

	"github.com/SscSPs/mma_fx/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
type CreateCurrencyRequest struct {
	CurrencyCode string `json:"currencyCode" binding:"required,currency_code"`
	Symbol       string `json:"symbol" binding:"required"`
	Name         string `json:"name" binding:"required"`
	Precision    *int   `json:"precision" binding:"omitempty,min=0,max=18"` // Defaults to 2
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode  string                 `json:"currencyCode"`
	Symbol        string                 `json:"symbol"`
	Name          string                 `json:"name"`
	Precision     int                    `json:"precision"`
	ExchangeRates []ExchangeRateResponse `json:"exchangeRates,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	CreatedBy     string                 `json:"createdBy"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy string                 `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:  curr.CurrencyCode,
		Symbol:        curr.Symbol,
		Name:          curr.Name,
		Precision:     curr.Precision,
		CreatedAt:     curr.CreatedAt,
		CreatedBy:     curr.CreatedBy,
		LastUpdatedAt: curr.LastUpdatedAt,
		LastUpdatedBy: curr.LastUpdatedBy,
	}
}

// ToCurrencyWithPairsResponse converts a currency and its quoted pairs to a CurrencyResponse DTO
func ToCurrencyWithPairsResponse(curr *domain.CurrencyWithPairs) CurrencyResponse {
	res := ToCurrencyResponse(&curr.Currency)
	res.ExchangeRates = make([]ExchangeRateResponse, len(curr.ExchangeRates))
	for i := range curr.ExchangeRates {
		res.ExchangeRates[i] = ToExchangeRateResponse(&curr.ExchangeRates[i])
	}
	return res
}

// ToListCurrencyResponse converts currencies with their pairs to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.CurrencyWithPairs) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyWithPairsResponse(&currencies[i])
	}
	return res
}
