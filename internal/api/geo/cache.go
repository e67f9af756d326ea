package geo

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

var _ Locator = (*CachedLocator)(nil)

// CachedLocator is a read-through cache over another Locator. Only successful
// lookups are stored; service failures always reach the caller.
type CachedLocator struct {
	next   Locator
	cache  *cache.Cache
	logger *slog.Logger
}

func NewCachedLocator(next Locator, ttl time.Duration, logger *slog.Logger) *CachedLocator {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedLocator{
		next:   next,
		cache:  cache.New(ttl, ttl/4),
		logger: logger,
	}
}

func (c *CachedLocator) Autocomplete(ctx context.Context, input string) ([]Prediction, error) {
	key := "ac:" + strings.ToLower(strings.TrimSpace(input))
	if cached, found := c.cache.Get(key); found {
		if predictions, ok := cached.([]Prediction); ok {
			c.logger.DebugContext(ctx, "Cache hit for autocomplete", slog.String("cache_key", key))
			return predictions, nil
		}
	}

	predictions, err := c.next.Autocomplete(ctx, input)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, predictions, cache.DefaultExpiration)
	return predictions, nil
}

func (c *CachedLocator) Reverse(ctx context.Context, lat, lon float64) (Address, error) {
	key := fmt.Sprintf("rev:%.5f,%.5f", lat, lon)
	if cached, found := c.cache.Get(key); found {
		if addr, ok := cached.(Address); ok {
			c.logger.DebugContext(ctx, "Cache hit for reverse geocode", slog.String("cache_key", key))
			return addr, nil
		}
	}

	addr, err := c.next.Reverse(ctx, lat, lon)
	if err != nil {
		return Address{}, err
	}
	c.cache.Set(key, addr, cache.DefaultExpiration)
	return addr, nil
}
