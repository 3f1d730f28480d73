package routing_test

import (
	"testing"

	"github.com/SscSPs/mma_fx/internal/apperrors"
	"github.com/SscSPs/mma_fx/internal/core/domain"
	"github.com/SscSPs/mma_fx/internal/core/routing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pair(id, base, quote string) domain.ExchangeRate {
	return domain.ExchangeRate{ExchangeRateID: id, BaseCurrencyCode: base, QuoteCurrencyCode: quote}
}

func TestTable_RouteDisconnectedThenConnected(t *testing.T) {
	currencies := []string{"EUR", "USD", "GBP", "GBX"}
	pairs := []domain.ExchangeRate{
		pair("1", "EUR", "USD"),
		pair("2", "GBP", "GBX"),
	}

	table := routing.BuildTable(currencies, pairs)

	_, err := table.Route("USD", "GBX")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNoConversionRoute)
	assert.Equal(t, "no conversion route found from currency code USD to GBX", err.Error())

	table = routing.BuildTable(currencies, append(pairs, pair("3", "EUR", "GBP")))

	route, err := table.Route("USD", "GBX")
	require.NoError(t, err)
	assert.Equal(t, []string{"USD", "EUR", "GBP", "GBX"}, route)

	route, err = table.Route("GBX", "USD")
	require.NoError(t, err)
	assert.Equal(t, []string{"GBX", "GBP", "EUR", "USD"}, route)
}

func TestTable_SelfRoute(t *testing.T) {
	table := routing.BuildTable([]string{"EUR", "USD"}, []domain.ExchangeRate{pair("1", "EUR", "USD")})

	for _, code := range []string{"EUR", "USD", "XYZ"} {
		route, err := table.Route(code, code)
		require.NoError(t, err)
		assert.Equal(t, []string{code}, route)
	}
}

func TestTable_UnknownCurrency(t *testing.T) {
	table := routing.BuildTable([]string{"EUR", "USD"}, []domain.ExchangeRate{pair("1", "EUR", "USD")})

	_, err := table.Route("EUR", "JPY")
	assert.ErrorIs(t, err, apperrors.ErrNoConversionRoute)

	_, err = table.Route("JPY", "EUR")
	assert.ErrorIs(t, err, apperrors.ErrNoConversionRoute)
}

func TestTable_DirectPairIsSingleHopBothWays(t *testing.T) {
	table := routing.BuildTable([]string{"EUR", "USD"}, []domain.ExchangeRate{pair("1", "EUR", "USD")})

	route, err := table.Route("EUR", "USD")
	require.NoError(t, err)
	assert.Equal(t, []string{"EUR", "USD"}, route)

	route, err = table.Route("USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, []string{"USD", "EUR"}, route)
}

func TestTable_PrefersFewestHops(t *testing.T) {
	currencies := []string{"AUD", "CHF", "EUR", "JPY", "USD"}
	pairs := []domain.ExchangeRate{
		pair("1", "EUR", "USD"),
		pair("2", "USD", "JPY"),
		pair("3", "JPY", "AUD"),
		pair("4", "EUR", "CHF"),
		pair("5", "CHF", "AUD"),
		pair("6", "EUR", "AUD"),
	}
	table := routing.BuildTable(currencies, pairs)

	route, err := table.Route("USD", "AUD")
	require.NoError(t, err)
	assert.Len(t, route, 3)
	assert.Equal(t, "USD", route[0])
	assert.Equal(t, "AUD", route[2])

	route, err = table.Route("CHF", "USD")
	require.NoError(t, err)
	assert.Equal(t, []string{"CHF", "EUR", "USD"}, route)
}

func TestTable_SkipsInvalidPairsAndCollapsesDuplicates(t *testing.T) {
	pairs := []domain.ExchangeRate{
		pair("1", "EUR", "USD"),
		pair("2", "USD", "EUR"), // reverse duplicate collapses into the same edge
		pair("3", "EUR", "XXX"), // unknown currency
		pair("4", "EUR", "EUR"), // self pair
	}
	table := routing.BuildTable([]string{"USD", "EUR", "EUR"}, pairs)

	assert.Equal(t, []string{"EUR", "USD"}, table.Currencies())

	skipped := table.Skipped()
	require.Len(t, skipped, 2)
	assert.Equal(t, "3", skipped[0].ExchangeRateID)
	assert.Equal(t, "4", skipped[1].ExchangeRateID)

	route, err := table.Route("USD", "EUR")
	require.NoError(t, err)
	assert.Equal(t, []string{"USD", "EUR"}, route)
	assert.False(t, table.BuiltAt().IsZero())
}
