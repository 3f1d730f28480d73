package routing_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/SscSPs/mma_fx/internal/apperrors"
	"github.com/SscSPs/mma_fx/internal/core/domain"
	"github.com/SscSPs/mma_fx/internal/core/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mock CurrencyReader ---
type MockCurrencyReader struct {
	mock.Mock
}

func (m *MockCurrencyReader) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyReader) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock ExchangeRateReader ---
type MockExchangeRateReader struct {
	mock.Mock
}

func (m *MockExchangeRateReader) FindExchangeRateByID(ctx context.Context, exchangeRateID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, exchangeRateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateReader) FindExchangeRateByCurrencies(ctx context.Context, base, quote string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, base, quote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateReader) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func currencies(codes ...string) []domain.Currency {
	res := make([]domain.Currency, len(codes))
	for i, c := range codes {
		res[i] = domain.Currency{CurrencyCode: c}
	}
	return res
}

// --- Test Suite ---
type BuilderTestSuite struct {
	suite.Suite
	mockCurrencies *MockCurrencyReader
	mockPairs      *MockExchangeRateReader
	builder        *routing.Builder
}

func (suite *BuilderTestSuite) SetupTest() {
	suite.mockCurrencies = new(MockCurrencyReader)
	suite.mockPairs = new(MockExchangeRateReader)
	suite.builder = routing.NewBuilder(suite.mockCurrencies, suite.mockPairs, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (suite *BuilderTestSuite) TestRoute_NotReadyBeforeFirstBuild() {
	_, err := suite.builder.Route("EUR", "USD")
	suite.ErrorIs(err, apperrors.ErrRoutingTableNotReady)

	// Even the identity route needs a table, so callers get a consistent answer.
	_, err = suite.builder.Route("EUR", "EUR")
	suite.ErrorIs(err, apperrors.ErrRoutingTableNotReady)

	_, _, _, ok := suite.builder.Snapshot()
	suite.False(ok)
	suite.Nil(suite.builder.Current())
}

func (suite *BuilderTestSuite) TestRebuild_Success() {
	ctx := context.Background()
	suite.mockCurrencies.On("ListCurrencies", ctx).Return(currencies("EUR", "GBP", "USD"), nil).Once()
	suite.mockPairs.On("ListExchangeRates", ctx).Return([]domain.ExchangeRate{pair("1", "EUR", "USD"), pair("2", "EUR", "GBP")}, nil).Once()

	err := suite.builder.Rebuild(ctx)
	suite.Require().NoError(err)

	route, err := suite.builder.Route("USD", "GBP")
	suite.Require().NoError(err)
	suite.Equal([]string{"USD", "EUR", "GBP"}, route)

	codes, skipped, builtAt, ok := suite.builder.Snapshot()
	suite.True(ok)
	suite.Equal([]string{"EUR", "GBP", "USD"}, codes)
	suite.Empty(skipped)
	suite.False(builtAt.IsZero())

	suite.mockCurrencies.AssertExpectations(suite.T())
	suite.mockPairs.AssertExpectations(suite.T())
}

func (suite *BuilderTestSuite) TestRebuild_FailureKeepsPreviousTable() {
	ctx := context.Background()
	suite.mockCurrencies.On("ListCurrencies", ctx).Return(currencies("EUR", "USD"), nil).Twice()
	suite.mockPairs.On("ListExchangeRates", ctx).Return([]domain.ExchangeRate{pair("1", "EUR", "USD")}, nil).Once()
	suite.mockPairs.On("ListExchangeRates", ctx).Return(nil, errors.New("db down")).Once()

	suite.Require().NoError(suite.builder.Rebuild(ctx))
	previous := suite.builder.Current()

	err := suite.builder.Rebuild(ctx)
	suite.Require().Error(err)
	suite.Contains(err.Error(), "db down")
	suite.Same(previous, suite.builder.Current())

	route, err := suite.builder.Route("USD", "EUR")
	suite.Require().NoError(err)
	suite.Equal([]string{"USD", "EUR"}, route)
}

func (suite *BuilderTestSuite) TestRebuild_CurrencyListFailure() {
	ctx := context.Background()
	suite.mockCurrencies.On("ListCurrencies", ctx).Return(nil, errors.New("timeout")).Once()

	err := suite.builder.Rebuild(ctx)
	suite.Require().Error(err)
	suite.mockPairs.AssertNotCalled(suite.T(), "ListExchangeRates", mock.Anything)

	_, err = suite.builder.Route("EUR", "USD")
	suite.ErrorIs(err, apperrors.ErrRoutingTableNotReady)
}

func (suite *BuilderTestSuite) TestRebuild_PicksUpNewPairs() {
	ctx := context.Background()
	all := currencies("EUR", "GBP", "GBX", "USD")
	suite.mockCurrencies.On("ListCurrencies", ctx).Return(all, nil)
	suite.mockPairs.On("ListExchangeRates", ctx).Return([]domain.ExchangeRate{pair("1", "EUR", "USD"), pair("2", "GBP", "GBX")}, nil).Once()
	suite.mockPairs.On("ListExchangeRates", ctx).Return([]domain.ExchangeRate{pair("1", "EUR", "USD"), pair("2", "GBP", "GBX"), pair("3", "EUR", "GBP")}, nil).Once()

	suite.Require().NoError(suite.builder.Rebuild(ctx))
	_, err := suite.builder.Route("USD", "GBX")
	suite.ErrorIs(err, apperrors.ErrNoConversionRoute)

	suite.Require().NoError(suite.builder.Rebuild(ctx))
	route, err := suite.builder.Route("USD", "GBX")
	suite.Require().NoError(err)
	suite.Equal([]string{"USD", "EUR", "GBP", "GBX"}, route)
}

func TestBuilderTestSuite(t *testing.T) {
	suite.Run(t, new(BuilderTestSuite))
}

func TestBuilder_ConcurrentReadsDuringSwaps(t *testing.T) {
	b := routing.NewBuilder(nil, nil, nil)
	small := routing.BuildTable([]string{"EUR", "USD"}, []domain.ExchangeRate{pair("1", "EUR", "USD")})
	large := routing.BuildTable([]string{"EUR", "GBP", "USD"}, []domain.ExchangeRate{pair("1", "EUR", "USD"), pair("2", "EUR", "GBP")})
	b.Install(small)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			if i%2 == 0 {
				b.Install(large)
			} else {
				b.Install(small)
			}
		}
	}()

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				route, err := b.Route("USD", "EUR")
				if !assert.NoError(t, err) {
					return
				}
				assert.Equal(t, []string{"USD", "EUR"}, route)
			}
		}()
	}
	wg.Wait()

	route, err := b.Route("EUR", "EUR")
	require.NoError(t, err)
	assert.Equal(t, []string{"EUR"}, route)
}
