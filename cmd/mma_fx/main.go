package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SscSPs/mma_fx/internal/adapters/database/memory"
	"github.com/SscSPs/mma_fx/internal/adapters/database/pgsql"
	"github.com/SscSPs/mma_fx/internal/adapters/pricesource/cache"
	"github.com/SscSPs/mma_fx/internal/adapters/pricesource/frankfurter"
	"github.com/SscSPs/mma_fx/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/mma_fx/internal/core/ports/repositories"
	"github.com/SscSPs/mma_fx/internal/core/services"
	"github.com/SscSPs/mma_fx/internal/handlers"
	"github.com/SscSPs/mma_fx/internal/middleware"
	"github.com/SscSPs/mma_fx/internal/platform/config"
	"github.com/SscSPs/mma_fx/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ulule/limiter/v3"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
)

// @title MMA FX API
// @version 1.0
// @description Currency conversion along chains of quoted pairs, with daily reference prices.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, dbPool, err := setupRepositories(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	var redisCache *cache.RedisCache
	if cfg.RedisURL != "" {
		redisCache, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			logger.Error("Failed to configure redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if err := redisCache.Ping(ctx); err != nil {
			logger.Error("Failed to reach redis", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer redisCache.Close()
		logger.Info("Redis connection established.")
	}

	var source providers.PriceSource = frankfurter.New(frankfurter.Config{
		BaseURL: cfg.PriceSourceBaseURL,
		Timeout: cfg.PriceSourceTimeout,
	})
	if redisCache != nil {
		source = cache.NewCachedSource(source, redisCache, cfg.PriceSourceCacheTTL, logger.With(slog.String("component", "price_cache")))
	}

	container := services.NewServiceContainer(cfg, repos, source, logger)

	// The routing task builds the first table in the background; conversions
	// answer 503 until it completes.
	tasks := services.NewBackgroundTasks(cfg, container, logger)
	for _, task := range tasks {
		if err := task.Start(ctx); err != nil {
			logger.Error("Failed to start background task", slog.String("task", task.Name), slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	lim, err := setupLimiter(cfg, redisCache)
	if err != nil {
		logger.Error("Failed to configure rate limiter", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := handlers.RegisterRoutes(r, cfg, container, lim); err != nil {
		logger.Error("Failed to register routes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown requested")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
	for _, task := range tasks {
		task.Stop()
	}
	logger.Info("Server stopped")
}

// setupRepositories returns the PostgreSQL repositories when PGSQL_URL is set and
// the in-memory store otherwise. The pool is nil for the in-memory store.
func setupRepositories(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, *pgxpool.Pool, error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("No database configured, data will not survive a restart")
		repos, _ := memory.NewRepositoryProvider()
		return repos, nil, nil
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")

	logger.Info("Running database migrations...")
	applied, err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath)
	if err != nil {
		dbPool.Close()
		return portsrepo.RepositoryProvider{}, nil, err
	}
	if applied {
		logger.Info("Database migrations applied successfully.")
	} else {
		logger.Info("No new migrations to apply.")
	}

	return pgsql.NewRepositoryProvider(dbPool), dbPool, nil
}

// setupLimiter shares the redis client with the limiter when one is configured so
// limits hold across instances.
func setupLimiter(cfg *config.Config, redisCache *cache.RedisCache) (*limiter.Limiter, error) {
	if redisCache == nil {
		return middleware.NewLimiter(cfg.RateLimit, nil)
	}
	store, err := sredis.NewStoreWithOptions(redisCache.Client(), limiter.StoreOptions{
		Prefix: "mma_fx_limiter",
	})
	if err != nil {
		return nil, err
	}
	return middleware.NewLimiter(cfg.RateLimit, store)
}
