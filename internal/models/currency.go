package models

// Currency is a row of the currencies table.
type Currency struct {
	CurrencyCode string `db:"currency_code"` // Primary Key (e.g., "USD")
	Symbol       string `db:"symbol"`        // e.g., "$"
	Name         string `db:"name"`          // e.g., "US Dollar"
	Precision    int    `db:"precision"`
	AuditFields
}
