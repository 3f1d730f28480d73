package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/mma_fx/internal/apperrors"
	"github.com/SscSPs/mma_fx/internal/core/domain"
	portsrepo "github.com/SscSPs/mma_fx/internal/core/ports/repositories"
	"github.com/SscSPs/mma_fx/internal/models"
	"github.com/SscSPs/mma_fx/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxExchangeRateRepository stores quoted pairs and their daily prices.
type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new PgxExchangeRateRepository.
func newPgxExchangeRateRepository(db *pgxpool.Pool) *PgxExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*PgxExchangeRateRepository)(nil)

const exchangeRateColumns = `exchange_rate_id, base_currency_code, quote_currency_code, created_at, created_by, last_updated_at, last_updated_by`

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var m models.ExchangeRate
	err := row.Scan(
		&m.ExchangeRateID, &m.BaseCurrencyCode, &m.QuoteCurrencyCode,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func scanExchangeRatePrice(row pgx.Row) (models.ExchangeRatePrice, error) {
	var m models.ExchangeRatePrice
	err := row.Scan(
		&m.ExchangeRateID, &m.PriceDate, &m.Value,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// SaveExchangeRate inserts a new quoted pair. The unique index on the unordered
// pair rejects the reverse direction as well.
func (r *PgxExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	m := mapping.ToModelExchangeRate(rate)
	if m.BaseCurrencyCode == m.QuoteCurrencyCode {
		return apperrors.NewValidationError("base and quote currencies cannot be the same")
	}

	query := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExchangeRateID, m.BaseCurrencyCode, m.QuoteCurrencyCode,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		switch pgErrorCode(err) {
		case pgUniqueViolation:
			return fmt.Errorf("%w: currency pair %s/%s is already quoted", apperrors.ErrDuplicate, m.BaseCurrencyCode, m.QuoteCurrencyCode)
		case pgForeignKeyViolation:
			return fmt.Errorf("%w: unknown currency in pair %s/%s", apperrors.ErrValidation, m.BaseCurrencyCode, m.QuoteCurrencyCode)
		}
		return fmt.Errorf("error inserting exchange rate: %w", err)
	}
	return nil
}

// FindExchangeRateByID retrieves a quoted pair by its ID.
func (r *PgxExchangeRateRepository) FindExchangeRateByID(ctx context.Context, exchangeRateID string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates WHERE exchange_rate_id = $1`
	return r.findOne(ctx, query, "exchange rate "+exchangeRateID, exchangeRateID)
}

// FindExchangeRateByCurrencies retrieves the pair quoted exactly as base/quote.
func (r *PgxExchangeRateRepository) FindExchangeRateByCurrencies(ctx context.Context, baseCurrencyCode, quoteCurrencyCode string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates WHERE base_currency_code = $1 AND quote_currency_code = $2`
	return r.findOne(ctx, query, "exchange rate "+baseCurrencyCode+"/"+quoteCurrencyCode, baseCurrencyCode, quoteCurrencyCode)
}

func (r *PgxExchangeRateRepository) findOne(ctx context.Context, query, what string, args ...any) (*domain.ExchangeRate, error) {
	m, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(what)
		}
		return nil, fmt.Errorf("error finding %s: %w", what, err)
	}
	rate := mapping.ToDomainExchangeRate(m)
	return &rate, nil
}

// ListExchangeRates retrieves all quoted pairs ordered by base then quote code.
func (r *PgxExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates ORDER BY base_currency_code, quote_currency_code`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		return scanExchangeRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan exchange rates: %w", err)
	}
	return mapping.ToDomainExchangeRateSlice(ms), nil
}

// FindLatestPriceAtOrBefore returns the most recent price of base/quote not later than date.
func (r *PgxExchangeRateRepository) FindLatestPriceAtOrBefore(ctx context.Context, baseCurrencyCode, quoteCurrencyCode string, date time.Time) (*domain.ExchangeRatePrice, error) {
	query := `
		SELECT p.exchange_rate_id, p.price_date, p.value,
			p.created_at, p.created_by, p.last_updated_at, p.last_updated_by
		FROM exchange_rate_prices p
		JOIN exchange_rates er ON er.exchange_rate_id = p.exchange_rate_id
		WHERE er.base_currency_code = $1 AND er.quote_currency_code = $2 AND p.price_date <= $3
		ORDER BY p.price_date DESC
		LIMIT 1
	`
	m, err := scanExchangeRatePrice(r.Pool.QueryRow(ctx, query, baseCurrencyCode, quoteCurrencyCode, domain.StartOfDayUTC(date)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("price of %s/%s at or before %s", baseCurrencyCode, quoteCurrencyCode, date.Format("2006-01-02")))
		}
		return nil, fmt.Errorf("failed to find price of %s/%s: %w", baseCurrencyCode, quoteCurrencyCode, err)
	}
	price := mapping.ToDomainExchangeRatePrice(m)
	return &price, nil
}

// FindLatestPriceDate returns the date of the most recent stored price, nil when there is none.
func (r *PgxExchangeRateRepository) FindLatestPriceDate(ctx context.Context, exchangeRateID string) (*time.Time, error) {
	var latest *time.Time
	err := r.Pool.QueryRow(ctx,
		`SELECT MAX(price_date) FROM exchange_rate_prices WHERE exchange_rate_id = $1`,
		exchangeRateID,
	).Scan(&latest)
	if err != nil {
		return nil, fmt.Errorf("failed to find latest price date of %s: %w", exchangeRateID, err)
	}
	if latest != nil {
		d := domain.StartOfDayUTC(*latest)
		latest = &d
	}
	return latest, nil
}

// ListPrices returns the price history of a pair in ascending date order.
func (r *PgxExchangeRateRepository) ListPrices(ctx context.Context, exchangeRateID string, filter portsrepo.PriceFilter) ([]domain.ExchangeRatePrice, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT exchange_rate_id, price_date, value, created_at, created_by, last_updated_at, last_updated_by
		FROM exchange_rate_prices
		WHERE exchange_rate_id = $1`)
	args := []any{exchangeRateID}

	addCond := func(cond string, value any) {
		args = append(args, value)
		fmt.Fprintf(&sb, " AND price_date %s $%d", cond, len(args))
	}
	if filter.From != nil {
		addCond(">=", domain.StartOfDayUTC(*filter.From))
	}
	if filter.To != nil {
		addCond("<=", domain.StartOfDayUTC(*filter.To))
	}
	if filter.After != nil {
		addCond(">", domain.StartOfDayUTC(*filter.After))
	}
	sb.WriteString(" ORDER BY price_date ASC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query prices of %s: %w", exchangeRateID, err)
	}
	defer rows.Close()

	ms, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRatePrice, error) {
		return scanExchangeRatePrice(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan prices of %s: %w", exchangeRateID, err)
	}
	return mapping.ToDomainExchangeRatePriceSlice(ms), nil
}

// UpsertPrices writes all points in a single transaction using one pgx batch.
func (r *PgxExchangeRateRepository) UpsertPrices(ctx context.Context, exchangeRateID string, points []domain.PricePoint, userID string) (int, error) {
	if len(points) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO exchange_rate_prices (
			exchange_rate_id, price_date, value, created_at, created_by, last_updated_at, last_updated_by
		) VALUES ($1, $2, $3, $4, $5, $4, $5)
		ON CONFLICT (exchange_rate_id, price_date) DO UPDATE SET
			value = EXCLUDED.value,
			last_updated_at = EXCLUDED.last_updated_at,
			last_updated_by = EXCLUDED.last_updated_by
	`
	now := time.Now().UTC()
	batch := &pgx.Batch{}
	for _, p := range points {
		batch.Queue(query, exchangeRateID, domain.StartOfDayUTC(p.Date), p.Value, now, userID)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	results := tx.SendBatch(ctx, batch)
	for i := range points {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			switch pgErrorCode(err) {
			case pgCheckViolation:
				return 0, fmt.Errorf("%w: price %s on %s rejected", apperrors.ErrValidation, points[i].Value, points[i].Date.Format("2006-01-02"))
			case pgForeignKeyViolation:
				return 0, apperrors.NewNotFoundError("exchange rate " + exchangeRateID)
			}
			return 0, fmt.Errorf("failed to upsert price %d of %d for %s: %w", i+1, len(points), exchangeRateID, err)
		}
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("failed to close price batch for %s: %w", exchangeRateID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return 0, err
	}
	return len(points), nil
}
