package utils

import (
	"github.com/SscSPs/mma_fx/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithCurrencyPrecision formats an amount with the display precision of a currency,
// padding with zeros when needed.
// Example: amount 12.3456 with USD (precision 2) returns "12.35"
// Example: amount 12.3456 with JPY (precision 0) returns "12"
// Example: amount 12.5 with USD (precision 2) returns "12.50"
func FormatWithCurrencyPrecision(amount decimal.Decimal, currency domain.Currency) string {
	return FormatWithPrecision(amount, currency.Precision)
}

// FormatWithPrecision formats an amount with the given number of fractional digits.
// Rounding is half away from zero.
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return amount.StringFixed(int32(precision))
}
