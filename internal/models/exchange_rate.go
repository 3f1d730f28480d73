package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is a row of the exchange_rates table: one quoted currency pair.
type ExchangeRate struct {
	ExchangeRateID    string `db:"exchange_rate_id"`    // Primary Key (UUID)
	BaseCurrencyCode  string `db:"base_currency_code"`  // FK -> currencies.currency_code
	QuoteCurrencyCode string `db:"quote_currency_code"` // FK -> currencies.currency_code
	AuditFields
}

// ExchangeRatePrice is a row of the exchange_rate_prices table.
// PriceDate is a DATE column; Value is NUMERIC.
type ExchangeRatePrice struct {
	ExchangeRateID string          `db:"exchange_rate_id"`
	PriceDate      time.Time       `db:"price_date"`
	Value          decimal.Decimal `db:"value"`
	AuditFields
}
