package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/mma_fx/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/mma_fx/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mma_fx/internal/core/ports/services"
	"github.com/SscSPs/mma_fx/internal/core/routing"
	"github.com/SscSPs/mma_fx/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, source providers.PriceSource, logger *slog.Logger) *portssvc.ServiceContainer {
	if logger == nil {
		logger = slog.Default()
	}

	// Routing is shared by the converter and by pair creation, so build it first.
	builder := routing.NewBuilder(repos.CurrencyRepo, repos.ExchangeRateRepo, logger.With(slog.String("component", "routing")))

	container := &portssvc.ServiceContainer{Routing: builder}
	container.Currency = NewCurrencyService(repos.CurrencyRepo, repos.ExchangeRateRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, repos.CurrencyRepo, WithRoutingRebuilder(builder))
	container.Converter = NewConversionService(builder, repos.ExchangeRateRepo, WithConversionScale(cfg.ConversionResultScale))
	container.Updater = NewExchangeRateUpdater(repos.ExchangeRateRepo, source,
		logger.With(slog.String("component", "exchange_rate_updater")),
		WithRefreshConcurrency(cfg.PriceRefreshConcurrency))

	return container
}

// NewBackgroundTasks returns the periodic routing rebuild and price refresh tasks.
// Both call the same functions as the administrative triggers. The routing task
// has no initial delay, so starting it builds the first table.
func NewBackgroundTasks(cfg *config.Config, container *portssvc.ServiceContainer, logger *slog.Logger) []*PeriodicTask {
	if logger == nil {
		logger = slog.Default()
	}
	routingTask := &PeriodicTask{
		Name:     "routing-rebuild",
		Interval: cfg.RoutingRefreshInterval,
		Run:      container.Routing.Rebuild,
		Logger:   logger,
	}
	priceTask := &PeriodicTask{
		Name:         "exchange-rate-refresh",
		InitialDelay: cfg.PriceRefreshInitialDelay,
		Interval:     cfg.PriceRefreshInterval,
		Run: func(ctx context.Context) error {
			_, err := container.Updater.RefreshAll(ctx)
			return err
		},
		Logger: logger,
	}
	return []*PeriodicTask{routingTask, priceTask}
}
