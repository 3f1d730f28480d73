package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret          string
	JWTIssuer          string
	CORSAllowedOrigins []string
	RateLimit          string // ulule/limiter formatted rate, e.g. "100-M"

	// External price source
	PriceSourceBaseURL  string
	PriceSourceTimeout  time.Duration
	RedisURL            string
	PriceSourceCacheTTL time.Duration

	// Background tasks
	RoutingRefreshInterval   time.Duration
	PriceRefreshInterval     time.Duration
	PriceRefreshInitialDelay time.Duration
	PriceRefreshConcurrency  int

	ConversionResultScale int32
}

const (
	defaultPort                     = "8080"
	defaultJWTSecret                = "a-very-secret-key-should-be-longer-and-random"
	defaultJWTIssuer                = "mma-fx"
	defaultRateLimit                = "100-M"
	defaultMigrationsPath           = "file://migrations"
	defaultPriceSourceBaseURL       = "https://api.frankfurter.dev/v1"
	defaultPriceSourceTimeout       = 10 * time.Second
	defaultPriceSourceCacheTTL      = 24 * time.Hour
	defaultRoutingRefreshInterval   = time.Hour
	defaultPriceRefreshInterval     = 4 * time.Hour
	defaultPriceRefreshInitialDelay = 10 * time.Second
	defaultPriceRefreshConcurrency  = 4
	defaultConversionResultScale    = 28
)

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", defaultPort)
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MIGRATIONS_PATH", defaultMigrationsPath)
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", defaultJWTIssuer)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("RATE_LIMIT", defaultRateLimit)
	viper.SetDefault("PRICE_SOURCE_BASE_URL", defaultPriceSourceBaseURL)
	viper.SetDefault("PRICE_SOURCE_TIMEOUT", defaultPriceSourceTimeout.String())
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("PRICE_SOURCE_CACHE_TTL", defaultPriceSourceCacheTTL.String())
	viper.SetDefault("ROUTING_REFRESH_INTERVAL", defaultRoutingRefreshInterval.String())
	viper.SetDefault("PRICE_REFRESH_INTERVAL", defaultPriceRefreshInterval.String())
	viper.SetDefault("PRICE_REFRESH_INITIAL_DELAY", defaultPriceRefreshInitialDelay.String())
	viper.SetDefault("PRICE_REFRESH_CONCURRENCY", defaultPriceRefreshConcurrency)
	viper.SetDefault("CONVERSION_RESULT_SCALE", defaultConversionResultScale)

	// Real environment variables override .env values, which override the defaults above.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using the in-memory store.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = defaultPort
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = defaultJWTIssuer
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	if cfg.RateLimit == "" {
		cfg.RateLimit = defaultRateLimit
	}

	cfg.PriceSourceBaseURL = strings.TrimRight(viper.GetString("PRICE_SOURCE_BASE_URL"), "/")
	if cfg.PriceSourceBaseURL == "" {
		cfg.PriceSourceBaseURL = defaultPriceSourceBaseURL
	}
	cfg.PriceSourceTimeout = durationOrDefault("PRICE_SOURCE_TIMEOUT", defaultPriceSourceTimeout)
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.PriceSourceCacheTTL = durationOrDefault("PRICE_SOURCE_CACHE_TTL", defaultPriceSourceCacheTTL)

	cfg.RoutingRefreshInterval = durationOrDefault("ROUTING_REFRESH_INTERVAL", defaultRoutingRefreshInterval)
	cfg.PriceRefreshInterval = durationOrDefault("PRICE_REFRESH_INTERVAL", defaultPriceRefreshInterval)
	cfg.PriceRefreshInitialDelay = durationOrDefault("PRICE_REFRESH_INITIAL_DELAY", defaultPriceRefreshInitialDelay)

	cfg.PriceRefreshConcurrency = viper.GetInt("PRICE_REFRESH_CONCURRENCY")
	if cfg.PriceRefreshConcurrency <= 0 {
		log.Printf("Warning: Invalid value for PRICE_REFRESH_CONCURRENCY ('%s'). Defaulting to %d.\n",
			viper.GetString("PRICE_REFRESH_CONCURRENCY"), defaultPriceRefreshConcurrency)
		cfg.PriceRefreshConcurrency = defaultPriceRefreshConcurrency
	}

	scale := viper.GetInt("CONVERSION_RESULT_SCALE")
	if scale <= 0 || scale > 64 {
		log.Printf("Warning: Invalid value for CONVERSION_RESULT_SCALE ('%s'). Defaulting to %d.\n",
			viper.GetString("CONVERSION_RESULT_SCALE"), defaultConversionResultScale)
		scale = defaultConversionResultScale
	}
	cfg.ConversionResultScale = int32(scale)

	return cfg, nil
}

// durationOrDefault reads key as a Go duration ("10s", "4h"), falling back to def
// when it is missing, malformed or not positive.
func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var res []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			res = append(res, part)
		}
	}
	return res
}
