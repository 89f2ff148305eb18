// v1
// internal/holiday/cache.go
package holiday

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Observer receives cache hit/miss notifications so the metrics layer can
// count them without the cache importing it.
type Observer interface {
	CacheHit()
	CacheMiss()
}

type entry[T any] struct {
	val T
	exp time.Time
}

type memCache[T any] struct {
	mu  sync.RWMutex
	m   map[string]entry[T]
	ttl time.Duration
	obs Observer
}

func newMemCache[T any](ttl time.Duration, obs Observer) *memCache[T] {
	return &memCache[T]{m: make(map[string]entry[T]), ttl: ttl, obs: obs}
}

func (c *memCache[T]) get(key string) (T, bool) {
	var zero T
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.exp) {
		if c.obs != nil {
			c.obs.CacheMiss()
		}
		return zero, false
	}
	if c.obs != nil {
		c.obs.CacheHit()
	}
	return e.val, true
}

func (c *memCache[T]) set(key string, v T) {
	c.mu.Lock()
	c.m[key] = entry[T]{val: v, exp: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Cached memoizes lookups per (region, year) for the run's lifetime.
// Holiday calendars for a fixed year do not change, so the TTL exists only
// to bound memory in long-running service deployments.
type Cached struct {
	src      Source
	holidays *memCache[[]PublicHoliday]
	periods  *memCache[[]SchoolPeriod]
}

// NewCached wraps a source with the in-memory cache. A nil observer is
// allowed.
func NewCached(src Source, ttl time.Duration, obs Observer) *Cached {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Cached{
		src:      src,
		holidays: newMemCache[[]PublicHoliday](ttl, obs),
		periods:  newMemCache[[]SchoolPeriod](ttl, obs),
	}
}

func cacheKey(region string, year int) string {
	return fmt.Sprintf("%s/%d", region, year)
}

func (c *Cached) PublicHolidays(ctx context.Context, region string, year int) ([]PublicHoliday, error) {
	region, err := ValidateRegion(region)
	if err != nil {
		return nil, err
	}
	key := cacheKey(region, year)
	if v, ok := c.holidays.get(key); ok {
		return v, nil
	}
	v, err := c.src.PublicHolidays(ctx, region, year)
	if err != nil {
		return nil, err
	}
	c.holidays.set(key, v)
	return v, nil
}

func (c *Cached) SchoolHolidays(ctx context.Context, region string, year int) ([]SchoolPeriod, error) {
	region, err := ValidateRegion(region)
	if err != nil {
		return nil, err
	}
	key := cacheKey(region, year)
	if v, ok := c.periods.get(key); ok {
		return v, nil
	}
	v, err := c.src.SchoolHolidays(ctx, region, year)
	if err != nil {
		return nil, err
	}
	c.periods.set(key, v)
	return v, nil
}
