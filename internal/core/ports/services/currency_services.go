package services

import (
	"context"

	"github.com/SscSPs/mma_fx/internal/core/domain"
	"github.com/SscSPs/mma_fx/internal/core/ports/repositories"
	"github.com/SscSPs/mma_fx/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all available currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// ListCurrenciesWithPairs retrieves all currencies together with the quoted pairs they take part in.
	ListCurrenciesWithPairs(ctx context.Context) ([]domain.CurrencyWithPairs, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}

// ExchangeRateReaderSvc defines read operations for quoted pairs and their prices
type ExchangeRateReaderSvc interface {
	// GetExchangeRate retrieves the pair quoted as base/quote with its latest price date.
	// When includePrices is set, the price history restricted by filter is attached.
	GetExchangeRate(ctx context.Context, baseCode, quoteCode string, includePrices bool, filter repositories.PriceFilter) (*domain.ExchangeRateDetails, error)

	// ListExchangeRates retrieves all quoted pairs with their latest price date.
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRateDetails, error)

	// ListPrices returns a page of the price history of base/quote and the token of the next page.
	ListPrices(ctx context.Context, baseCode, quoteCode string, params dto.ListExchangeRatePricesParams) ([]domain.ExchangeRatePrice, string, error)
}

// ExchangeRateWriterSvc defines write operations for quoted pairs and their prices
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate configures a new quoted pair.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)

	// RecordPrice upserts a single price of base/quote.
	RecordPrice(ctx context.Context, baseCode, quoteCode string, req dto.CreateExchangeRatePriceRequest, creatorUserID string) (*domain.ExchangeRatePrice, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}
