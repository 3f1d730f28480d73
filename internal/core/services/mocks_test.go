package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/mma_fx/internal/core/domain"
	portsrepo "github.com/SscSPs/mma_fx/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindExchangeRateByID(ctx context.Context, exchangeRateID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, exchangeRateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindExchangeRateByCurrencies(ctx context.Context, base, quote string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, base, quote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindLatestPriceAtOrBefore(ctx context.Context, base, quote string, date time.Time) (*domain.ExchangeRatePrice, error) {
	args := m.Called(ctx, base, quote, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRatePrice), args.Error(1)
}

func (m *MockExchangeRateRepository) FindLatestPriceDate(ctx context.Context, exchangeRateID string) (*time.Time, error) {
	args := m.Called(ctx, exchangeRateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockExchangeRateRepository) ListPrices(ctx context.Context, exchangeRateID string, filter portsrepo.PriceFilter) ([]domain.ExchangeRatePrice, error) {
	args := m.Called(ctx, exchangeRateID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRatePrice), args.Error(1)
}

func (m *MockExchangeRateRepository) UpsertPrices(ctx context.Context, exchangeRateID string, points []domain.PricePoint, userID string) (int, error) {
	args := m.Called(ctx, exchangeRateID, points, userID)
	return args.Int(0), args.Error(1)
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*MockExchangeRateRepository)(nil)

// --- Mock PriceSource ---
type MockPriceSource struct {
	mock.Mock
}

func (m *MockPriceSource) FetchPrices(ctx context.Context, base, quote string, from *time.Time) ([]domain.PricePoint, error) {
	args := m.Called(ctx, base, quote, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PricePoint), args.Error(1)
}

// --- Mock RoutingRebuilder ---
type MockRoutingRebuilder struct {
	mock.Mock
}

func (m *MockRoutingRebuilder) Rebuild(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
