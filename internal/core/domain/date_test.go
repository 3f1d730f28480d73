package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/mma_fx/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestStartOfDayUTC(t *testing.T) {
	cet := time.FixedZone("CET", 3600)
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "utc afternoon",
			in:   time.Date(2020, 1, 1, 15, 4, 5, 6, time.UTC),
			want: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "local time just after midnight is previous utc day",
			in:   time.Date(2020, 1, 2, 0, 30, 0, 0, cet),
			want: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "already truncated",
			in:   time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC),
			want: time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.want.Equal(domain.StartOfDayUTC(tt.in)))
		})
	}
}

func TestNextDay(t *testing.T) {
	d := time.Date(2020, 12, 31, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), domain.NextDay(d))
}

func TestExchangeRate_Involves(t *testing.T) {
	pair := domain.ExchangeRate{BaseCurrencyCode: "EUR", QuoteCurrencyCode: "USD"}

	assert.True(t, pair.Involves("EUR"))
	assert.True(t, pair.Involves("USD"))
	assert.False(t, pair.Involves("GBP"))
	assert.Equal(t, "EUR/USD", pair.String())
}
