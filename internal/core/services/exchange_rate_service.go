package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/mma_fx/internal/apperrors"
	"github.com/SscSPs/mma_fx/internal/core/domain"
	portsrepo "github.com/SscSPs/mma_fx/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mma_fx/internal/core/ports/services"
	"github.com/SscSPs/mma_fx/internal/dto"
	"github.com/SscSPs/mma_fx/internal/utils/pagination"
	"github.com/google/uuid"
)

// DefaultPricePageSize is used when a price history page size is not given.
const DefaultPricePageSize = 100

// RoutingRebuilder recomputes the routing table.
type RoutingRebuilder interface {
	Rebuild(ctx context.Context) error
}

// ExchangeRateService provides business logic for quoted pairs and their prices.
type ExchangeRateService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencyRepo portsrepo.CurrencyReader
	routing      RoutingRebuilder
	now          func() time.Time
}

// ExchangeRateServiceOption configures an ExchangeRateService.
type ExchangeRateServiceOption func(*ExchangeRateService)

// WithRoutingRebuilder makes new pairs routable right after they are created.
func WithRoutingRebuilder(r RoutingRebuilder) ExchangeRateServiceOption {
	return func(s *ExchangeRateService) {
		s.routing = r
	}
}

// WithExchangeRateClock overrides the clock used to reject future-dated prices.
func WithExchangeRateClock(now func() time.Time) ExchangeRateServiceOption {
	return func(s *ExchangeRateService) {
		s.now = now
	}
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencyRepo portsrepo.CurrencyReader, opts ...ExchangeRateServiceOption) *ExchangeRateService {
	s := &ExchangeRateService{
		rateRepo:     rateRepo,
		currencyRepo: currencyRepo,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// CreateExchangeRate configures a new quoted pair.
func (s *ExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	base, quote, err := normalizePair(req.BaseCurrencyCode, req.QuoteCurrencyCode)
	if err != nil {
		return nil, err
	}
	if base == quote {
		return nil, fmt.Errorf("%w: base and quote currency codes cannot be the same", apperrors.ErrValidation)
	}

	for _, code := range []string{base, quote} {
		if _, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
			}
			return nil, fmt.Errorf("failed to validate currency '%s': %w", code, err)
		}
	}

	for _, p := range [][2]string{{base, quote}, {quote, base}} {
		existing, err := s.rateRepo.FindExchangeRateByCurrencies(ctx, p[0], p[1])
		if err == nil {
			return nil, fmt.Errorf("%w: currency pair already quoted as %s", apperrors.ErrDuplicate, existing.String())
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check existing pair %s/%s: %w", p[0], p[1], err)
		}
	}

	now := s.now().UTC()
	rate := domain.ExchangeRate{
		ExchangeRateID:    uuid.NewString(),
		BaseCurrencyCode:  base,
		QuoteCurrencyCode: quote,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		s.LogError(ctx, err, "Failed to create exchange rate", slog.String("pair", rate.String()))
		return nil, fmt.Errorf("failed to create exchange rate in service: %w", err)
	}
	s.LogInfo(ctx, "Exchange rate created", slog.String("pair", rate.String()), slog.String("exchange_rate_id", rate.ExchangeRateID))

	if s.routing != nil {
		if err := s.routing.Rebuild(ctx); err != nil {
			// The periodic rebuild picks the pair up later.
			s.LogError(ctx, err, "Failed to rebuild routing table after pair creation", slog.String("pair", rate.String()))
		}
	}
	return &rate, nil
}

// RecordPrice upserts a single price of the pair quoted as base/quote.
func (s *ExchangeRateService) RecordPrice(ctx context.Context, baseCode, quoteCode string, req dto.CreateExchangeRatePriceRequest, creatorUserID string) (*domain.ExchangeRatePrice, error) {
	rate, err := s.findPair(ctx, baseCode, quoteCode)
	if err != nil {
		return nil, err
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if date.After(domain.StartOfDayUTC(s.now())) {
		return nil, apperrors.NewValidationError("price date " + req.Date + " is in the future")
	}
	if req.Value == nil || !req.Value.IsPositive() {
		return nil, fmt.Errorf("%w: exchange rate price must be positive", apperrors.ErrValidation)
	}

	point := domain.PricePoint{Date: date, Value: *req.Value}
	if _, err := s.rateRepo.UpsertPrices(ctx, rate.ExchangeRateID, []domain.PricePoint{point}, creatorUserID); err != nil {
		s.LogError(ctx, err, "Failed to record exchange rate price", slog.String("pair", rate.String()), slog.String("date", req.Date))
		return nil, fmt.Errorf("failed to record exchange rate price in service: %w", err)
	}

	now := s.now().UTC()
	return &domain.ExchangeRatePrice{
		ExchangeRateID: rate.ExchangeRateID,
		Date:           date,
		Value:          point.Value,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}, nil
}

// GetExchangeRate retrieves the pair quoted as base/quote.
func (s *ExchangeRateService) GetExchangeRate(ctx context.Context, baseCode, quoteCode string, includePrices bool, filter portsrepo.PriceFilter) (*domain.ExchangeRateDetails, error) {
	rate, err := s.findPair(ctx, baseCode, quoteCode)
	if err != nil {
		return nil, err
	}

	details, err := s.details(ctx, *rate)
	if err != nil {
		return nil, err
	}
	if includePrices {
		prices, err := s.rateRepo.ListPrices(ctx, rate.ExchangeRateID, filter)
		if err != nil {
			return nil, fmt.Errorf("failed to list prices of %s: %w", rate.String(), err)
		}
		if prices == nil {
			prices = []domain.ExchangeRatePrice{}
		}
		details.Prices = prices
	}
	return details, nil
}

// ListExchangeRates retrieves all quoted pairs with their latest price date.
func (s *ExchangeRateService) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRateDetails, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rates")
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}

	res := make([]domain.ExchangeRateDetails, 0, len(rates))
	for _, rate := range rates {
		details, err := s.details(ctx, rate)
		if err != nil {
			return nil, err
		}
		res = append(res, *details)
	}
	return res, nil
}

// ListPrices returns one page of the price history of base/quote in ascending date order.
func (s *ExchangeRateService) ListPrices(ctx context.Context, baseCode, quoteCode string, params dto.ListExchangeRatePricesParams) ([]domain.ExchangeRatePrice, string, error) {
	rate, err := s.findPair(ctx, baseCode, quoteCode)
	if err != nil {
		return nil, "", err
	}

	filter, err := PriceFilterFromParams(params.From, params.To)
	if err != nil {
		return nil, "", err
	}
	pageSize := params.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPricePageSize
	}
	if params.PageToken != "" {
		after, err := pagination.DecodeDateBasedToken(params.PageToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		filter.After = &after
	}
	filter.Limit = pageSize + 1

	prices, err := s.rateRepo.ListPrices(ctx, rate.ExchangeRateID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rate prices", slog.String("pair", rate.String()))
		return nil, "", fmt.Errorf("failed to list prices of %s: %w", rate.String(), err)
	}

	var nextToken string
	if len(prices) > pageSize {
		prices = prices[:pageSize]
		nextToken = pagination.EncodeDateBasedToken(prices[len(prices)-1].Date)
	}
	if prices == nil {
		prices = []domain.ExchangeRatePrice{}
	}
	return prices, nextToken, nil
}

func (s *ExchangeRateService) findPair(ctx context.Context, baseCode, quoteCode string) (*domain.ExchangeRate, error) {
	base, quote, err := normalizePair(baseCode, quoteCode)
	if err != nil {
		return nil, err
	}
	rate, err := s.rateRepo.FindExchangeRateByCurrencies(ctx, base, quote)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get exchange rate", slog.String("pair", base+"/"+quote))
		}
		return nil, fmt.Errorf("failed to get exchange rate %s/%s in service: %w", base, quote, err)
	}
	return rate, nil
}

func (s *ExchangeRateService) details(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRateDetails, error) {
	latest, err := s.rateRepo.FindLatestPriceDate(ctx, rate.ExchangeRateID)
	if err != nil {
		return nil, fmt.Errorf("failed to find latest price date of %s: %w", rate.String(), err)
	}
	return &domain.ExchangeRateDetails{ExchangeRate: rate, LatestPriceDate: latest}, nil
}

// PriceFilterFromParams builds an inclusive date range from optional YYYY-MM-DD strings.
func PriceFilterFromParams(from, to string) (portsrepo.PriceFilter, error) {
	var filter portsrepo.PriceFilter
	if from != "" {
		d, err := parseDate(from)
		if err != nil {
			return filter, err
		}
		filter.From = &d
	}
	if to != "" {
		d, err := parseDate(to)
		if err != nil {
			return filter, err
		}
		filter.To = &d
	}
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return filter, apperrors.NewValidationError("'from' date must not be after 'to' date")
	}
	return filter, nil
}

func parseDate(value string) (time.Time, error) {
	d, err := time.Parse(dto.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date '%s', expected YYYY-MM-DD", apperrors.ErrValidation, value)
	}
	return domain.StartOfDayUTC(d), nil
}

func normalizePair(baseCode, quoteCode string) (string, string, error) {
	base, err := NormalizeCurrencyCode(baseCode)
	if err != nil {
		return "", "", err
	}
	quote, err := NormalizeCurrencyCode(quoteCode)
	if err != nil {
		return "", "", err
	}
	return base, quote, nil
}
