package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a quoted currency pair. A price P on the pair means
// 1 unit of BaseCurrencyCode buys P units of QuoteCurrencyCode.
// Only one direction of a pair is ever stored; the reverse is derived by division.
type ExchangeRate struct {
	ExchangeRateID    string `json:"exchangeRateID"`
	BaseCurrencyCode  string `json:"baseCurrencyCode"`
	QuoteCurrencyCode string `json:"quoteCurrencyCode"`
	AuditFields
}

// Involves reports whether the pair quotes the given currency on either side.
func (r ExchangeRate) Involves(currencyCode string) bool {
	return r.BaseCurrencyCode == currencyCode || r.QuoteCurrencyCode == currencyCode
}

// String returns the pair as "BASE/QUOTE".
func (r ExchangeRate) String() string {
	return r.BaseCurrencyCode + "/" + r.QuoteCurrencyCode
}

// ExchangeRatePrice is the value of a quoted pair on a given UTC date.
type ExchangeRatePrice struct {
	ExchangeRateID string          `json:"exchangeRateID"`
	Date           time.Time       `json:"date"`
	Value          decimal.Decimal `json:"value"`
	AuditFields
}

// PricePoint is a dated price as returned by an external price source.
type PricePoint struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}

// ExchangeRateDetails is a quoted pair with its most recent price date and,
// optionally, its price history.
type ExchangeRateDetails struct {
	ExchangeRate
	LatestPriceDate *time.Time          `json:"latestPriceDate,omitempty"`
	Prices          []ExchangeRatePrice `json:"prices,omitempty"`
}

// RefreshSummary reports the outcome of one price refresh run.
type RefreshSummary struct {
	Pairs          int           `json:"pairs"`
	Updated        int           `json:"updated"`
	Skipped        int           `json:"skipped"`
	Failed         int           `json:"failed"`
	PricesUpserted int           `json:"pricesUpserted"`
	FailedPairs    []string      `json:"failedPairs,omitempty"`
	Duration       time.Duration `json:"duration"`
}
