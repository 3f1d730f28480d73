package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/SscSPs/mma_fx/internal/apperrors"
	"github.com/SscSPs/mma_fx/internal/core/domain"
	portsrepo "github.com/SscSPs/mma_fx/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/mma_fx/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// DefaultConversionScale is the number of fractional digits kept in conversion results.
const DefaultConversionScale int32 = 28

// RouteResolver resolves conversion paths between currencies.
type RouteResolver interface {
	Route(sourceCode, targetCode string) ([]string, error)
}

// ConversionService converts amounts along the routes of the routing table,
// applying the price of each hop valid at the requested date.
type ConversionService struct {
	routes RouteResolver
	prices portsrepo.ExchangeRatePriceReader
	scale  int32
	now    func() time.Time
}

// ConversionOption configures a ConversionService.
type ConversionOption func(*ConversionService)

// WithConversionScale sets the number of fractional digits of converted amounts.
func WithConversionScale(scale int32) ConversionOption {
	return func(s *ConversionService) {
		if scale > 0 {
			s.scale = scale
		}
	}
}

// WithConversionClock overrides the clock used to default the as-of date.
func WithConversionClock(now func() time.Time) ConversionOption {
	return func(s *ConversionService) {
		s.now = now
	}
}

// NewConversionService creates a new ConversionService.
func NewConversionService(routes RouteResolver, prices portsrepo.ExchangeRatePriceReader, opts ...ConversionOption) *ConversionService {
	s := &ConversionService{
		routes: routes,
		prices: prices,
		scale:  DefaultConversionScale,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.CurrencyConverterSvc = (*ConversionService)(nil)

// ConvertCurrencyAmount converts amount from sourceCode to targetCode as of asOf.
func (s *ConversionService) ConvertCurrencyAmount(ctx context.Context, amount decimal.Decimal, sourceCode, targetCode string, asOf *time.Time) (decimal.Decimal, error) {
	converted, _, err := s.ConvertWithRoute(ctx, amount, sourceCode, targetCode, asOf)
	return converted, err
}

// ConvertWithRoute converts amount and also returns the route that was walked.
//
// Intermediate values are kept as exact rationals; only the final result is
// expressed with the configured scale. An identity route returns amount untouched.
func (s *ConversionService) ConvertWithRoute(ctx context.Context, amount decimal.Decimal, sourceCode, targetCode string, asOf *time.Time) (decimal.Decimal, []string, error) {
	date := domain.StartOfDayUTC(s.now())
	if asOf != nil {
		date = domain.StartOfDayUTC(*asOf)
	}

	route, err := s.routes.Route(sourceCode, targetCode)
	if err != nil {
		return decimal.Zero, nil, apperrors.NewConversionError(sourceCode, targetCode, err)
	}
	if len(route) == 1 {
		return amount, route, nil
	}

	value := amount.Rat()
	for i := 0; i < len(route)-1; i++ {
		current, next := route[i], route[i+1]
		price, inverse, err := s.hopPrice(ctx, current, next, date)
		if err != nil {
			return decimal.Zero, nil, apperrors.NewConversionError(sourceCode, targetCode, err)
		}
		if inverse {
			value.Quo(value, price.Rat())
		} else {
			value.Mul(value, price.Rat())
		}
	}

	return ratToDecimal(value, s.scale), route, nil
}

// hopPrice finds the price to apply for the hop current -> next. inverse is true
// when the pair is quoted as next/current and the amount must be divided.
func (s *ConversionService) hopPrice(ctx context.Context, current, next string, date time.Time) (decimal.Decimal, bool, error) {
	price, err := s.prices.FindLatestPriceAtOrBefore(ctx, current, next, date)
	if err == nil {
		return checkedPrice(price, current, next, false)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, false, fmt.Errorf("failed to look up price of %s/%s: %w", current, next, err)
	}

	price, err = s.prices.FindLatestPriceAtOrBefore(ctx, next, current, date)
	if err == nil {
		return checkedPrice(price, next, current, true)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, false, fmt.Errorf("failed to look up price of %s/%s: %w", next, current, err)
	}

	return decimal.Zero, false, fmt.Errorf("%w for currency pair %s/%s at or before %s",
		apperrors.ErrPriceNotFound, current, next, date.Format("2006-01-02"))
}

func checkedPrice(price *domain.ExchangeRatePrice, base, quote string, inverse bool) (decimal.Decimal, bool, error) {
	if !price.Value.IsPositive() {
		return decimal.Zero, false, fmt.Errorf("%w: stored price %s of %s/%s on %s is not positive",
			apperrors.ErrValidation, price.Value, base, quote, price.Date.Format("2006-01-02"))
	}
	return price.Value, inverse, nil
}

// ratToDecimal expresses r exactly when it has a terminating expansion within scale
// digits, rounding otherwise.
func ratToDecimal(r *big.Rat, scale int32) decimal.Decimal {
	if r.IsInt() {
		return decimal.NewFromBigInt(r.Num(), 0)
	}
	return decimal.NewFromBigRat(r, scale)
}
