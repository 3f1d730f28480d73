package mapping

import (
	"github.com/SscSPs/mma_fx/internal/core/domain"
	"github.com/SscSPs/mma_fx/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID:    d.ExchangeRateID,
		BaseCurrencyCode:  d.BaseCurrencyCode,
		QuoteCurrencyCode: d.QuoteCurrencyCode,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:    m.ExchangeRateID,
		BaseCurrencyCode:  m.BaseCurrencyCode,
		QuoteCurrencyCode: m.QuoteCurrencyCode,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExchangeRateSlice converts a slice of model ExchangeRates
func ToDomainExchangeRateSlice(ms []models.ExchangeRate) []domain.ExchangeRate {
	ds := make([]domain.ExchangeRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExchangeRate(m)
	}
	return ds
}

// ToDomainExchangeRatePrice converts a price row. The stored DATE is pinned to midnight UTC.
func ToDomainExchangeRatePrice(m models.ExchangeRatePrice) domain.ExchangeRatePrice {
	return domain.ExchangeRatePrice{
		ExchangeRateID: m.ExchangeRateID,
		Date:           domain.StartOfDayUTC(m.PriceDate),
		Value:          m.Value,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExchangeRatePriceSlice converts a slice of price rows
func ToDomainExchangeRatePriceSlice(ms []models.ExchangeRatePrice) []domain.ExchangeRatePrice {
	ds := make([]domain.ExchangeRatePrice, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExchangeRatePrice(m)
	}
	return ds
}
