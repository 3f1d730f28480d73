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
)

// DefaultCurrencyPrecision is used when a currency is created without an explicit precision.
const DefaultCurrencyPrecision = 2

type CurrencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
	rateRepo     portsrepo.ExchangeRateReader
}

func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, rateRepo portsrepo.ExchangeRateReader) *CurrencyService {
	return &CurrencyService{currencyRepo: currencyRepo, rateRepo: rateRepo}
}

var _ portssvc.CurrencySvcFacade = (*CurrencyService)(nil)

func (s *CurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	code, err := NormalizeCurrencyCode(req.CurrencyCode)
	if err != nil {
		return nil, err
	}

	precision := DefaultCurrencyPrecision
	if req.Precision != nil {
		precision = *req.Precision
	}
	if precision < 0 || precision > 18 {
		return nil, apperrors.NewValidationError(fmt.Sprintf("precision %d is out of range 0..18", precision))
	}

	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyCode: code,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    precision,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "Failed to create currency", slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}

	s.LogInfo(ctx, "Currency created", slog.String("currency_code", code))
	return &currency, nil
}

func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	code, err := NormalizeCurrencyCode(currencyCode)
	if err != nil {
		return nil, err
	}
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get currency by code", slog.String("currency_code", code))
		}
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	return currency, nil
}

func (s *CurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

// ListCurrenciesWithPairs attaches to every currency the quoted pairs it takes part in.
func (s *CurrencyService) ListCurrenciesWithPairs(ctx context.Context) ([]domain.CurrencyWithPairs, error) {
	currencies, err := s.ListCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	pairs, err := s.rateRepo.ListExchangeRates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rates for currencies")
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}

	res := make([]domain.CurrencyWithPairs, len(currencies))
	for i, c := range currencies {
		rates := []domain.ExchangeRate{}
		for _, p := range pairs {
			if p.Involves(c.CurrencyCode) {
				rates = append(rates, p)
			}
		}
		res[i] = domain.CurrencyWithPairs{Currency: c, ExchangeRates: rates}
	}
	return res, nil
}
