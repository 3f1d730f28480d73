package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConvertCurrencyRequest asks for an amount to be converted between two currencies.
// Date defaults to today (UTC) when empty.
type ConvertCurrencyRequest struct {
	Amount             *decimal.Decimal `json:"amount" binding:"required"`
	SourceCurrencyCode string           `json:"sourceCurrencyCode" binding:"required,currency_code"`
	TargetCurrencyCode string           `json:"targetCurrencyCode" binding:"required,currency_code"`
	Date               string           `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ConvertCurrencyResponse is the result of a conversion.
type ConvertCurrencyResponse struct {
	Amount             decimal.Decimal `json:"amount"`
	FormattedAmount    string          `json:"formattedAmount"`
	SourceAmount       decimal.Decimal `json:"sourceAmount"`
	SourceCurrencyCode string          `json:"sourceCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	Date               string          `json:"date"`
	Route              []string        `json:"route"`
}

// RoutingTableResponse describes the routing table after a rebuild.
type RoutingTableResponse struct {
	Currencies   []string  `json:"currencies"`
	SkippedPairs []string  `json:"skippedPairs,omitempty"`
	BuiltAt      time.Time `json:"builtAt"`
}
