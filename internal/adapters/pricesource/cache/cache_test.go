package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/mma_fx/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

type mapCache struct {
	mu      sync.Mutex
	data    map[string][]byte
	ttls    map[string]time.Duration
	failGet bool
}

func newMapCache() *mapCache {
	return &mapCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return nil, false, errors.New("connection refused")
	}
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.ttls[key] = ttl
	return nil
}

var points = []domain.PricePoint{
	{Date: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC), Value: decimal.RequireFromString("1.1193")},
	{Date: time.Date(2020, 1, 3, 0, 0, 0, 0, time.UTC), Value: decimal.RequireFromString("1.1147")},
}

func newCached(src *MockPriceSource, c Cache, now time.Time) *CachedSource {
	s := NewCachedSource(src, c, time.Hour, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = func() time.Time { return now }
	return s
}

func TestCachedSource_HitsCacheWithinDay(t *testing.T) {
	ctx := context.Background()
	src := new(MockPriceSource)
	c := newMapCache()
	from := time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)
	src.On("FetchPrices", ctx, "EUR", "USD", &from).Return(points, nil).Once()

	s := newCached(src, c, time.Date(2020, 1, 6, 9, 0, 0, 0, time.UTC))

	first, err := s.FetchPrices(ctx, "EUR", "USD", &from)
	require.NoError(t, err)
	second, err := s.FetchPrices(ctx, "EUR", "USD", &from)
	require.NoError(t, err)

	require.Len(t, second, 2)
	assert.True(t, first[0].Value.Equal(second[0].Value))
	assert.True(t, first[1].Date.Equal(second[1].Date))
	assert.Equal(t, time.Hour, c.ttls["fx:prices:EUR:USD:2020-01-02:2020-01-06"])
	src.AssertExpectations(t)
}

func TestCachedSource_NewDayMisses(t *testing.T) {
	ctx := context.Background()
	src := new(MockPriceSource)
	c := newMapCache()
	src.On("FetchPrices", ctx, "EUR", "USD", (*time.Time)(nil)).Return(points, nil).Twice()

	_, err := newCached(src, c, time.Date(2020, 1, 6, 23, 0, 0, 0, time.UTC)).FetchPrices(ctx, "EUR", "USD", nil)
	require.NoError(t, err)
	_, err = newCached(src, c, time.Date(2020, 1, 7, 1, 0, 0, 0, time.UTC)).FetchPrices(ctx, "EUR", "USD", nil)
	require.NoError(t, err)

	assert.Contains(t, c.data, "fx:prices:EUR:USD:all:2020-01-06")
	assert.Contains(t, c.data, "fx:prices:EUR:USD:all:2020-01-07")
	src.AssertExpectations(t)
}

func TestCachedSource_CacheErrorFallsThrough(t *testing.T) {
	ctx := context.Background()
	src := new(MockPriceSource)
	c := newMapCache()
	c.failGet = true
	src.On("FetchPrices", ctx, "EUR", "GBP", (*time.Time)(nil)).Return(points, nil).Once()

	got, err := newCached(src, c, time.Now()).FetchPrices(ctx, "EUR", "GBP", nil)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestCachedSource_SourceErrorNotCached(t *testing.T) {
	ctx := context.Background()
	src := new(MockPriceSource)
	c := newMapCache()
	src.On("FetchPrices", ctx, "EUR", "GBP", (*time.Time)(nil)).Return(nil, errors.New("timeout")).Once()

	_, err := newCached(src, c, time.Now()).FetchPrices(ctx, "EUR", "GBP", nil)
	require.Error(t, err)
	assert.Empty(t, c.data)
}

func TestCachedSource_EmptyAnswerNotCached(t *testing.T) {
	ctx := context.Background()
	src := new(MockPriceSource)
	c := newMapCache()
	from := time.Date(2020, 1, 6, 0, 0, 0, 0, time.UTC)
	published := []domain.PricePoint{{Date: from, Value: decimal.RequireFromString("1.1194")}}
	src.On("FetchPrices", ctx, "EUR", "USD", &from).Return([]domain.PricePoint{}, nil).Once()
	src.On("FetchPrices", ctx, "EUR", "USD", &from).Return(published, nil).Once()

	morning, err := newCached(src, c, time.Date(2020, 1, 6, 8, 0, 0, 0, time.UTC)).FetchPrices(ctx, "EUR", "USD", &from)
	require.NoError(t, err)
	assert.Empty(t, morning)
	assert.Empty(t, c.data)

	evening, err := newCached(src, c, time.Date(2020, 1, 6, 17, 0, 0, 0, time.UTC)).FetchPrices(ctx, "EUR", "USD", &from)
	require.NoError(t, err)
	require.Len(t, evening, 1)
	assert.Equal(t, "1.1194", evening[0].Value.String())
	assert.Contains(t, c.data, "fx:prices:EUR:USD:2020-01-06:2020-01-06")
	src.AssertExpectations(t)
}
