package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/mma_fx/internal/core/domain"
	portsrepo "github.com/SscSPs/mma_fx/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mma_fx/internal/core/ports/services"
	"github.com/SscSPs/mma_fx/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrenciesWithPairs(ctx context.Context) ([]domain.CurrencyWithPairs, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyWithPairs), args.Error(1)
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) RecordPrice(ctx context.Context, base, quote string, req dto.CreateExchangeRatePriceRequest, creatorUserID string) (*domain.ExchangeRatePrice, error) {
	args := m.Called(ctx, base, quote, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRatePrice), args.Error(1)
}

func (m *MockExchangeRateService) GetExchangeRate(ctx context.Context, base, quote string, includePrices bool, filter portsrepo.PriceFilter) (*domain.ExchangeRateDetails, error) {
	args := m.Called(ctx, base, quote, includePrices, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRateDetails), args.Error(1)
}

func (m *MockExchangeRateService) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRateDetails, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRateDetails), args.Error(1)
}

func (m *MockExchangeRateService) ListPrices(ctx context.Context, base, quote string, params dto.ListExchangeRatePricesParams) ([]domain.ExchangeRatePrice, string, error) {
	args := m.Called(ctx, base, quote, params)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExchangeRatePrice), args.String(1), args.Error(2)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Mock Converter ---
type MockConverter struct {
	mock.Mock
}

func (m *MockConverter) ConvertCurrencyAmount(ctx context.Context, amount decimal.Decimal, source, target string, asOf *time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, source, target, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockConverter) ConvertWithRoute(ctx context.Context, amount decimal.Decimal, source, target string, asOf *time.Time) (decimal.Decimal, []string, error) {
	args := m.Called(ctx, amount, source, target, asOf)
	var route []string
	if args.Get(1) != nil {
		route = args.Get(1).([]string)
	}
	return args.Get(0).(decimal.Decimal), route, args.Error(2)
}

// --- Mock Updater ---
type MockUpdater struct {
	mock.Mock
}

func (m *MockUpdater) RefreshAll(ctx context.Context) (*domain.RefreshSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshSummary), args.Error(1)
}

// --- Mock Routing ---
type MockRouting struct {
	mock.Mock
}

func (m *MockRouting) Route(source, target string) ([]string, error) {
	args := m.Called(source, target)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRouting) Rebuild(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockRouting) Snapshot() ([]string, []domain.ExchangeRate, time.Time, bool) {
	args := m.Called()
	var currencies []string
	if args.Get(0) != nil {
		currencies = args.Get(0).([]string)
	}
	var skipped []domain.ExchangeRate
	if args.Get(1) != nil {
		skipped = args.Get(1).([]domain.ExchangeRate)
	}
	return currencies, skipped, args.Get(2).(time.Time), args.Bool(3)
}
