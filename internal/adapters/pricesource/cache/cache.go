// Package cache decorates a price source with a daily response cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/mma_fx/internal/core/domain"
	"github.com/SscSPs/mma_fx/internal/core/ports/providers"
	"github.com/redis/go-redis/v9"
)

// Cache is a byte store with expiry. Get reports a miss with ok == false.
type Cache interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedSource serves repeated fetches of the same pair and start date from the
// cache for the rest of the UTC day. Empty answers are not cached. Cache failures
// fall through to the source.
type CachedSource struct {
	source providers.PriceSource
	cache  Cache
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

var _ providers.PriceSource = (*CachedSource)(nil)

// NewCachedSource wraps source.
func NewCachedSource(source providers.PriceSource, cache Cache, ttl time.Duration, logger *slog.Logger) *CachedSource {
	if logger == nil {
		logger = slog.Default()
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedSource{source: source, cache: cache, ttl: ttl, logger: logger, now: time.Now}
}

// FetchPrices implements providers.PriceSource.
func (s *CachedSource) FetchPrices(ctx context.Context, base, quote string, from *time.Time) ([]domain.PricePoint, error) {
	key := s.key(base, quote, from)

	if data, ok, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("Price cache get error", slog.String("key", key), slog.String("error", err.Error()))
	} else if ok {
		var points []domain.PricePoint
		if err := json.Unmarshal(data, &points); err == nil {
			s.logger.Debug("Price cache hit", slog.String("key", key), slog.Int("points", len(points)))
			return points, nil
		}
		s.logger.Warn("Price cache entry unreadable", slog.String("key", key))
	}

	points, err := s.source.FetchPrices(ctx, base, quote, from)
	if err != nil {
		return nil, err
	}
	// Today's price may not be published yet; ask again on the next refresh.
	if len(points) == 0 {
		return points, nil
	}

	data, err := json.Marshal(points)
	if err != nil {
		return points, nil
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("Price cache set error", slog.String("key", key), slog.String("error", err.Error()))
	}
	return points, nil
}

// key is scoped to the current UTC day so a new day always reaches the source.
func (s *CachedSource) key(base, quote string, from *time.Time) string {
	start := "all"
	if from != nil {
		start = from.UTC().Format("2006-01-02")
	}
	return fmt.Sprintf("fx:prices:%s:%s:%s:%s", base, quote, start, domain.StartOfDayUTC(s.now()).Format("2006-01-02"))
}

// RedisCache implements Cache on a go-redis client.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a RedisCache from a redis:// URL.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return &RedisCache{client: redis.NewClient(opt)}, nil
}

// Client exposes the underlying client, e.g. to share it with the rate limiter.
func (r *RedisCache) Client() *redis.Client {
	return r.client
}

// Get implements Cache.
func (r *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

// Set implements Cache.
func (r *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Ping checks connectivity.
func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the client.
func (r *RedisCache) Close() error {
	return r.client.Close()
}
