package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/mma_fx/internal/apperrors"
	"github.com/SscSPs/mma_fx/internal/core/domain"
	"github.com/SscSPs/mma_fx/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/mma_fx/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mma_fx/internal/core/ports/services"
	"golang.org/x/sync/errgroup"
)

// UpdaterUserID is recorded as the author of prices merged by the updater.
const UpdaterUserID = "system:exchange-rate-updater"

// DefaultRefreshConcurrency bounds how many pairs are refreshed at the same time.
const DefaultRefreshConcurrency = 4

// ExchangeRateUpdater merges new daily prices from an external source into the price store.
type ExchangeRateUpdater struct {
	rates       portsrepo.ExchangeRateRepositoryFacade
	source      providers.PriceSource
	logger      *slog.Logger
	concurrency int
	now         func() time.Time
	mu          sync.Mutex
}

// UpdaterOption configures an ExchangeRateUpdater.
type UpdaterOption func(*ExchangeRateUpdater)

// WithRefreshConcurrency sets how many pairs are refreshed in parallel.
func WithRefreshConcurrency(n int) UpdaterOption {
	return func(u *ExchangeRateUpdater) {
		if n > 0 {
			u.concurrency = n
		}
	}
}

// WithUpdaterClock overrides the clock used to decide what "today" is.
func WithUpdaterClock(now func() time.Time) UpdaterOption {
	return func(u *ExchangeRateUpdater) {
		u.now = now
	}
}

// NewExchangeRateUpdater creates a new ExchangeRateUpdater.
func NewExchangeRateUpdater(rates portsrepo.ExchangeRateRepositoryFacade, source providers.PriceSource, logger *slog.Logger, opts ...UpdaterOption) *ExchangeRateUpdater {
	if logger == nil {
		logger = slog.Default()
	}
	u := &ExchangeRateUpdater{
		rates:       rates,
		source:      source,
		logger:      logger,
		concurrency: DefaultRefreshConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

var _ portssvc.ExchangeRateUpdaterSvc = (*ExchangeRateUpdater)(nil)

type pairOutcome int

const (
	outcomeSkipped pairOutcome = iota
	outcomeUpdated
	outcomeUnchanged
)

// RefreshAll refreshes the price history of every quoted pair.
//
// Runs are serialized; a run started while another is in progress waits for it.
// A pair that fails is logged and left for the next run without affecting the others.
func (u *ExchangeRateUpdater) RefreshAll(ctx context.Context) (*domain.RefreshSummary, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	start := time.Now()
	pairs, err := u.rates.ListExchangeRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates to refresh: %w", err)
	}

	today := domain.StartOfDayUTC(u.now())
	summary := &domain.RefreshSummary{Pairs: len(pairs)}
	var summaryMu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.concurrency)
	for _, pair := range pairs {
		g.Go(func() error {
			outcome, inserted, err := u.refreshPair(gctx, pair, today)

			summaryMu.Lock()
			defer summaryMu.Unlock()
			switch {
			case err != nil:
				summary.Failed++
				summary.FailedPairs = append(summary.FailedPairs, pair.String())
				u.logger.Error("Failed to refresh exchange rate prices",
					slog.String("pair", pair.String()),
					slog.String("exchange_rate_id", pair.ExchangeRateID),
					slog.String("error", err.Error()))
			case outcome == outcomeSkipped:
				summary.Skipped++
			default:
				summary.Updated++
				summary.PricesUpserted += inserted
			}
			// Failures stay isolated to their pair.
			return nil
		})
	}
	_ = g.Wait()

	summary.Duration = time.Since(start)
	u.logger.Info("Exchange rate refresh completed",
		slog.Int("pairs", summary.Pairs),
		slog.Int("updated", summary.Updated),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed),
		slog.Int("prices_upserted", summary.PricesUpserted),
		slog.Duration("duration", summary.Duration))
	return summary, nil
}

func (u *ExchangeRateUpdater) refreshPair(ctx context.Context, pair domain.ExchangeRate, today time.Time) (pairOutcome, int, error) {
	latest, err := u.rates.FindLatestPriceDate(ctx, pair.ExchangeRateID)
	if err != nil {
		return outcomeSkipped, 0, fmt.Errorf("failed to find latest price date: %w", err)
	}

	var from *time.Time
	if latest != nil {
		if !latest.Before(today) {
			return outcomeSkipped, 0, nil
		}
		next := domain.NextDay(*latest)
		from = &next
	}

	fetched, err := u.source.FetchPrices(ctx, pair.BaseCurrencyCode, pair.QuoteCurrencyCode, from)
	if err != nil {
		return outcomeSkipped, 0, fmt.Errorf("%w for %s: %w", apperrors.ErrExternalSourceFetch, pair.String(), err)
	}

	points := u.acceptable(pair, fetched, from, today)
	if len(points) == 0 {
		return outcomeUnchanged, 0, nil
	}

	written, err := u.rates.UpsertPrices(ctx, pair.ExchangeRateID, points, UpdaterUserID)
	if err != nil {
		return outcomeSkipped, 0, fmt.Errorf("failed to store %d prices: %w", len(points), err)
	}
	u.logger.Info("Exchange rate prices merged",
		slog.String("pair", pair.String()),
		slog.Int("inserted", written))
	return outcomeUpdated, written, nil
}

// acceptable drops points that are not strictly positive, dated in the future,
// or dated before the requested start. Dates are normalized to UTC midnight.
func (u *ExchangeRateUpdater) acceptable(pair domain.ExchangeRate, points []domain.PricePoint, from *time.Time, today time.Time) []domain.PricePoint {
	res := make([]domain.PricePoint, 0, len(points))
	seen := make(map[time.Time]bool, len(points))
	for _, p := range points {
		date := domain.StartOfDayUTC(p.Date)
		switch {
		case !p.Value.IsPositive():
			u.logger.Warn("Dropping non-positive price", slog.String("pair", pair.String()), slog.Time("date", date), slog.String("value", p.Value.String()))
			continue
		case date.After(today):
			u.logger.Warn("Dropping future-dated price", slog.String("pair", pair.String()), slog.Time("date", date))
			continue
		case from != nil && date.Before(*from):
			continue
		case seen[date]:
			continue
		}
		seen[date] = true
		res = append(res, domain.PricePoint{Date: date, Value: p.Value})
	}
	return res
}
