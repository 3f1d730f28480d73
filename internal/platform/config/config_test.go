package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Setenv("PGSQL_URL", "")
	t.Setenv("PRICE_REFRESH_INTERVAL", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "100-M", cfg.RateLimit)
	assert.Equal(t, "https://api.frankfurter.dev/v1", cfg.PriceSourceBaseURL)
	assert.Equal(t, 10*time.Second, cfg.PriceSourceTimeout)
	assert.Equal(t, time.Hour, cfg.RoutingRefreshInterval)
	assert.Equal(t, 4*time.Hour, cfg.PriceRefreshInterval)
	assert.Equal(t, 10*time.Second, cfg.PriceRefreshInitialDelay)
	assert.Equal(t, 4, cfg.PriceRefreshConcurrency)
	assert.Equal(t, int32(28), cfg.ConversionResultScale)
}

func TestLoadConfig_Overrides(t *testing.T) {
	viper.Reset()
	t.Setenv("PORT", "9090")
	t.Setenv("ROUTING_REFRESH_INTERVAL", "15m")
	t.Setenv("PRICE_REFRESH_CONCURRENCY", "8")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.example, http://b.example ,")
	t.Setenv("PRICE_SOURCE_BASE_URL", "http://localhost:1234/v1/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.RoutingRefreshInterval)
	assert.Equal(t, 8, cfg.PriceRefreshConcurrency)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "http://localhost:1234/v1", cfg.PriceSourceBaseURL)
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	viper.Reset()
	t.Setenv("PRICE_SOURCE_TIMEOUT", "soon")
	t.Setenv("PRICE_REFRESH_INTERVAL", "-1h")
	t.Setenv("PRICE_REFRESH_CONCURRENCY", "0")
	t.Setenv("CONVERSION_RESULT_SCALE", "-3")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Second, cfg.PriceSourceTimeout)
	assert.Equal(t, 4*time.Hour, cfg.PriceRefreshInterval)
	assert.Equal(t, 4, cfg.PriceRefreshConcurrency)
	assert.Equal(t, int32(28), cfg.ConversionResultScale)
}
