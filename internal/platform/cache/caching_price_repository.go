// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"iqx_backend/internal/feature/dailyprices/domain/entity"
	"iqx_backend/internal/feature/dailyprices/usecase"
)

// CachingPriceRepository decorates a PriceRepository with Redis caching of
// range reads. It implements the decorator pattern, transparently adding
// caching without modifying the underlying repository. Point lookups and
// counts always hit the store; only FindSince, the charting hot path, is
// cached. Writes invalidate every cached window for the affected ticker.
type CachingPriceRepository struct {
	inner     usecase.PriceRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.PriceRepository = (*CachingPriceRepository)(nil)

// NewCachingPriceRepository decorates a PriceRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses
// "prices". A nil client disables caching entirely.
func NewCachingPriceRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PriceRepository, namespace string) *CachingPriceRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "prices"
	}
	return &CachingPriceRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// List passes through to the underlying repository.
func (c *CachingPriceRepository) List(ctx context.Context, f usecase.PriceFilter, skip, limit int) ([]entity.DailyPrice, error) {
	return c.inner.List(ctx, f, skip, limit)
}

// Count passes through to the underlying repository.
func (c *CachingPriceRepository) Count(ctx context.Context, f usecase.PriceFilter) (int64, error) {
	return c.inner.Count(ctx, f)
}

// GetByKey passes through to the underlying repository.
func (c *CachingPriceRepository) GetByKey(ctx context.Context, ticker string, t time.Time) (*entity.DailyPrice, error) {
	return c.inner.GetByKey(ctx, ticker, t)
}

// Create inserts the bar and invalidates the ticker's cached windows.
func (c *CachingPriceRepository) Create(ctx context.Context, p *entity.DailyPrice) error {
	if err := c.inner.Create(ctx, p); err != nil {
		return err
	}
	c.invalidate(ctx, p.Ticker)
	return nil
}

// Update writes the patch and invalidates the ticker's cached windows.
func (c *CachingPriceRepository) Update(ctx context.Context, ticker string, t time.Time, patch usecase.PricePatch) error {
	if err := c.inner.Update(ctx, ticker, t, patch); err != nil {
		return err
	}
	c.invalidate(ctx, ticker)
	return nil
}

// Delete removes the bar and invalidates the ticker's cached windows.
func (c *CachingPriceRepository) Delete(ctx context.Context, ticker string, t time.Time) error {
	if err := c.inner.Delete(ctx, ticker, t); err != nil {
		return err
	}
	c.invalidate(ctx, ticker)
	return nil
}

// FindSince retrieves a window of bars, checking the cache first and
// falling back to the database.
func (c *CachingPriceRepository) FindSince(ctx context.Context, ticker string, since *time.Time, limit int) ([]entity.DailyPrice, error) {
	if c.rdb == nil {
		return c.inner.FindSince(ctx, ticker, since, limit)
	}

	key := c.cacheKey(ticker, since, limit)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.DailyPrice
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Drop the corrupted entry and fall through to the store.
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindSince(ctx, ticker, since, limit)
	if err != nil {
		return nil, err
	}

	// Best effort: a failed cache write never fails the read.
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// cacheKey generates the key for one window query. The since bound is
// keyed at day granularity: bars exist per day, so windows resolved within
// the same day share an entry instead of missing on every call.
func (c *CachingPriceRepository) cacheKey(ticker string, since *time.Time, limit int) string {
	bound := "all"
	if since != nil {
		bound = since.UTC().Format("2006-01-02")
	}
	return fmt.Sprintf("%s:%s:%s:%d", c.namespace, safe(ticker), bound, limit)
}

// cacheKeyPrefix generates the prefix covering every cached window for a ticker.
func (c *CachingPriceRepository) cacheKeyPrefix(ticker string) string {
	return fmt.Sprintf("%s:%s:", c.namespace, safe(ticker))
}

// invalidate deletes all cached windows for a ticker, best effort.
func (c *CachingPriceRepository) invalidate(ctx context.Context, ticker string) {
	if c.rdb == nil {
		return
	}
	_ = c.deleteByPattern(ctx, c.cacheKeyPrefix(ticker)+"*")
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingPriceRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
