// Package memory provides in-process repositories used when no database is
// configured and by tests.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/mma_fx/internal/apperrors"
	"github.com/SscSPs/mma_fx/internal/core/domain"
	portsrepo "github.com/SscSPs/mma_fx/internal/core/ports/repositories"
)

// Store keeps currencies, quoted pairs and their price histories in memory.
// It enforces the same constraints as the PostgreSQL schema.
type Store struct {
	mu         sync.RWMutex
	currencies map[string]domain.Currency
	rates      map[string]domain.ExchangeRate // by ExchangeRateID
	byPair     map[[2]string]string           // (base, quote) -> ExchangeRateID
	prices     map[string][]domain.ExchangeRatePrice
	now        func() time.Time
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		currencies: make(map[string]domain.Currency),
		rates:      make(map[string]domain.ExchangeRate),
		byPair:     make(map[[2]string]string),
		prices:     make(map[string][]domain.ExchangeRatePrice),
		now:        time.Now,
	}
}

var (
	_ portsrepo.CurrencyRepositoryFacade     = (*Store)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade = (*Store)(nil)
)

// NewRepositoryProvider wires a fresh Store into every repository slot.
func NewRepositoryProvider() (portsrepo.RepositoryProvider, *Store) {
	s := NewStore()
	return portsrepo.RepositoryProvider{
		CurrencyRepo:     s,
		ExchangeRateRepo: s,
	}, s
}

// SaveCurrency inserts a new currency.
func (s *Store) SaveCurrency(_ context.Context, currency domain.Currency) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.currencies[currency.CurrencyCode]; ok {
		return fmt.Errorf("%w: currency %s already exists", apperrors.ErrDuplicate, currency.CurrencyCode)
	}
	s.currencies[currency.CurrencyCode] = currency
	return nil
}

// FindCurrencyByCode retrieves a currency by its code.
func (s *Store) FindCurrencyByCode(_ context.Context, currencyCode string) (*domain.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.currencies[currencyCode]
	if !ok {
		return nil, apperrors.NewNotFoundError("currency " + currencyCode)
	}
	return &c, nil
}

// ListCurrencies returns all currencies ordered by code.
func (s *Store) ListCurrencies(_ context.Context) ([]domain.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]domain.Currency, 0, len(s.currencies))
	for _, c := range s.currencies {
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CurrencyCode < res[j].CurrencyCode })
	return res, nil
}

// SaveExchangeRate inserts a new quoted pair, rejecting either direction of an existing one.
func (s *Store) SaveExchangeRate(_ context.Context, rate domain.ExchangeRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	base, quote := rate.BaseCurrencyCode, rate.QuoteCurrencyCode
	if base == quote {
		return apperrors.NewValidationError("base and quote currencies cannot be the same")
	}
	for _, code := range []string{base, quote} {
		if _, ok := s.currencies[code]; !ok {
			return fmt.Errorf("%w: unknown currency in pair %s/%s", apperrors.ErrValidation, base, quote)
		}
	}
	if _, ok := s.rates[rate.ExchangeRateID]; ok {
		return fmt.Errorf("%w: exchange rate %s already exists", apperrors.ErrDuplicate, rate.ExchangeRateID)
	}
	if _, ok := s.byPair[[2]string{base, quote}]; ok {
		return fmt.Errorf("%w: currency pair %s/%s is already quoted", apperrors.ErrDuplicate, base, quote)
	}
	if _, ok := s.byPair[[2]string{quote, base}]; ok {
		return fmt.Errorf("%w: currency pair %s/%s is already quoted", apperrors.ErrDuplicate, base, quote)
	}

	s.rates[rate.ExchangeRateID] = rate
	s.byPair[[2]string{base, quote}] = rate.ExchangeRateID
	return nil
}

// FindExchangeRateByID retrieves a quoted pair by its ID.
func (s *Store) FindExchangeRateByID(_ context.Context, exchangeRateID string) (*domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.rates[exchangeRateID]
	if !ok {
		return nil, apperrors.NewNotFoundError("exchange rate " + exchangeRateID)
	}
	return &r, nil
}

// FindExchangeRateByCurrencies retrieves the pair quoted exactly as base/quote.
func (s *Store) FindExchangeRateByCurrencies(_ context.Context, baseCurrencyCode, quoteCurrencyCode string) (*domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byPair[[2]string{baseCurrencyCode, quoteCurrencyCode}]
	if !ok {
		return nil, apperrors.NewNotFoundError("exchange rate " + baseCurrencyCode + "/" + quoteCurrencyCode)
	}
	r := s.rates[id]
	return &r, nil
}

// ListExchangeRates returns all quoted pairs ordered by base then quote code.
func (s *Store) ListExchangeRates(_ context.Context) ([]domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]domain.ExchangeRate, 0, len(s.rates))
	for _, r := range s.rates {
		res = append(res, r)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].BaseCurrencyCode != res[j].BaseCurrencyCode {
			return res[i].BaseCurrencyCode < res[j].BaseCurrencyCode
		}
		return res[i].QuoteCurrencyCode < res[j].QuoteCurrencyCode
	})
	return res, nil
}

// FindLatestPriceAtOrBefore returns the most recent price of base/quote not later than date.
func (s *Store) FindLatestPriceAtOrBefore(_ context.Context, baseCurrencyCode, quoteCurrencyCode string, date time.Time) (*domain.ExchangeRatePrice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notFound := apperrors.NewNotFoundError(fmt.Sprintf("price of %s/%s at or before %s",
		baseCurrencyCode, quoteCurrencyCode, date.Format("2006-01-02")))

	id, ok := s.byPair[[2]string{baseCurrencyCode, quoteCurrencyCode}]
	if !ok {
		return nil, notFound
	}
	history := s.prices[id]
	i, found := searchDate(history, domain.StartOfDayUTC(date))
	if found {
		p := history[i]
		return &p, nil
	}
	// i is where date would be inserted; the value in force is the one before it.
	if i == 0 {
		return nil, notFound
	}
	p := history[i-1]
	return &p, nil
}

// FindLatestPriceDate returns the date of the most recent stored price, nil when there is none.
func (s *Store) FindLatestPriceDate(_ context.Context, exchangeRateID string) (*time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history := s.prices[exchangeRateID]
	if len(history) == 0 {
		return nil, nil
	}
	latest := history[len(history)-1].Date
	return &latest, nil
}

// ListPrices returns the price history of a pair in ascending date order.
func (s *Store) ListPrices(_ context.Context, exchangeRateID string, filter portsrepo.PriceFilter) ([]domain.ExchangeRatePrice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := []domain.ExchangeRatePrice{}
	for _, p := range s.prices[exchangeRateID] {
		switch {
		case filter.From != nil && p.Date.Before(domain.StartOfDayUTC(*filter.From)):
			continue
		case filter.To != nil && p.Date.After(domain.StartOfDayUTC(*filter.To)):
			continue
		case filter.After != nil && !p.Date.After(domain.StartOfDayUTC(*filter.After)):
			continue
		}
		res = append(res, p)
		if filter.Limit > 0 && len(res) == filter.Limit {
			break
		}
	}
	return res, nil
}

// UpsertPrices writes all points or none of them.
func (s *Store) UpsertPrices(_ context.Context, exchangeRateID string, points []domain.PricePoint, userID string) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rates[exchangeRateID]; !ok {
		return 0, apperrors.NewNotFoundError("exchange rate " + exchangeRateID)
	}
	for _, p := range points {
		if !p.Value.IsPositive() {
			return 0, fmt.Errorf("%w: price %s on %s rejected", apperrors.ErrValidation, p.Value, p.Date.Format("2006-01-02"))
		}
	}

	now := s.now().UTC()
	history := slices.Clone(s.prices[exchangeRateID])
	for _, p := range points {
		date := domain.StartOfDayUTC(p.Date)
		i, found := searchDate(history, date)
		if found {
			history[i].Value = p.Value
			history[i].LastUpdatedAt = now
			history[i].LastUpdatedBy = userID
			continue
		}
		history = slices.Insert(history, i, domain.ExchangeRatePrice{
			ExchangeRateID: exchangeRateID,
			Date:           date,
			Value:          p.Value,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		})
	}
	s.prices[exchangeRateID] = history
	return len(points), nil
}

func searchDate(history []domain.ExchangeRatePrice, date time.Time) (int, bool) {
	return slices.BinarySearchFunc(history, date, func(p domain.ExchangeRatePrice, t time.Time) int {
		return p.Date.Compare(t)
	})
}
