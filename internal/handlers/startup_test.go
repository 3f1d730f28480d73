package handlers_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/mma_fx/internal/adapters/database/memory"
	"github.com/SscSPs/mma_fx/internal/core/domain"
	portsrepo "github.com/SscSPs/mma_fx/internal/core/ports/repositories"
	"github.com/SscSPs/mma_fx/internal/core/services"
	"github.com/SscSPs/mma_fx/internal/handlers"
	"github.com/SscSPs/mma_fx/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// gatedCurrencyRepo holds ListCurrencies until release is closed.
type gatedCurrencyRepo struct {
	portsrepo.CurrencyRepositoryFacade
	release chan struct{}
}

func (r *gatedCurrencyRepo) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	select {
	case <-r.release:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return r.CurrencyRepositoryFacade.ListCurrencies(ctx)
}

type emptySource struct{}

func (emptySource) FetchPrices(context.Context, string, string, *time.Time) ([]domain.PricePoint, error) {
	return []domain.PricePoint{}, nil
}

func TestConversions_UnavailableUntilFirstRoutingBuild(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	repos, store := memory.NewRepositoryProvider()
	for _, code := range []string{"EUR", "USD"} {
		require.NoError(t, store.SaveCurrency(ctx, domain.Currency{CurrencyCode: code, Precision: 2}))
	}
	require.NoError(t, store.SaveExchangeRate(ctx, domain.ExchangeRate{ExchangeRateID: "eur-usd", BaseCurrencyCode: "EUR", QuoteCurrencyCode: "USD"}))
	_, err := store.UpsertPrices(ctx, "eur-usd", []domain.PricePoint{{Date: day("2020-01-01"), Value: decimal.RequireFromString("1.10")}}, "test")
	require.NoError(t, err)

	gate := &gatedCurrencyRepo{CurrencyRepositoryFacade: repos.CurrencyRepo, release: make(chan struct{})}
	repos.CurrencyRepo = gate

	cfg := &config.Config{
		JWTSecret:                testSecret,
		JWTIssuer:                testIssuer,
		IsProduction:             true,
		RoutingRefreshInterval:   time.Hour,
		PriceRefreshInterval:     time.Hour,
		PriceRefreshInitialDelay: time.Hour,
		PriceRefreshConcurrency:  1,
		ConversionResultScale:    28,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	container := services.NewServiceContainer(cfg, repos, emptySource{}, logger)

	router := gin.New()
	require.NoError(t, handlers.RegisterRoutes(router, cfg, container, nil))

	tasks := services.NewBackgroundTasks(cfg, container, logger)
	for _, task := range tasks {
		require.NoError(t, task.Start(ctx))
	}
	t.Cleanup(func() {
		for _, task := range tasks {
			task.Stop()
		}
	})

	convert := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/conversions",
			strings.NewReader(`{"amount":"11","sourceCurrencyCode":"EUR","targetCurrencyCode":"USD","date":"2020-01-02"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		return w
	}

	// Server is up and answering while the first build is still running.
	w := convert()
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	ready := httptest.NewRecorder()
	router.ServeHTTP(ready, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, ready.Code)

	close(gate.release)

	assert.Eventually(t, func() bool {
		return convert().Code == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)
	assert.Contains(t, convert().Body.String(), `"formattedAmount":"12.10"`)
}
