package domain

// Currency represents a supported currency in the domain.
// Only CurrencyCode takes part in conversion routing.
type Currency struct {
	CurrencyCode string `json:"currencyCode"` // Primary Key (e.g., "USD")
	Symbol       string `json:"symbol"`       // e.g., "$"
	Name         string `json:"name"`         // e.g., "US Dollar"
	Precision    int    `json:"precision"`    // Number of decimal places used to present amounts (e.g., 2 for USD, 0 for JPY)
	AuditFields
}

// CurrencyWithPairs is a currency together with the quoted pairs it participates in.
type CurrencyWithPairs struct {
	Currency
	ExchangeRates []ExchangeRate `json:"exchangeRates"`
}
