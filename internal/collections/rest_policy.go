package collections

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// SettingsSource reads department-specific configuration from the store.
type SettingsSource interface {
	GetMinRestHours(collection string) (int, error)
}

// RestPolicy answers "how much rest does this department require between
// assignments". Lookups go through redis so that every availability check does
// not hit the settings table; any failure falls back to the configured
// default, so a degraded cache or store can never block a check.
type RestPolicy struct {
	source    SettingsSource
	cache     *redis.Client
	cacheTTL  time.Duration
	opTimeout time.Duration
	fallback  int
}

func NewRestPolicy(source SettingsSource, cache *redis.Client, cacheTTL time.Duration, opTimeout time.Duration, fallbackHours int) *RestPolicy {
	return &RestPolicy{
		source:    source,
		cache:     cache,
		cacheTTL:  cacheTTL,
		opTimeout: opTimeout,
		fallback:  fallbackHours,
	}
}

func (p *RestPolicy) cacheKey(collection string) string {
	return fmt.Sprintf("rest_hours_%s", collection)
}

// MinRestHours returns the department's minimum rest duration in hours.
func (p *RestPolicy) MinRestHours(collection string) int {
	ctx, cancel := context.WithTimeout(context.Background(), p.opTimeout)
	defer cancel()

	if p.cache != nil {
		cached, err := p.cache.Get(ctx, p.cacheKey(collection)).Result()
		if err == nil {
			if hours, convErr := strconv.Atoi(cached); convErr == nil && hours > 0 {
				return hours
			}
		} else if err != redis.Nil {
			slog.Warn("rest-hours cache read failed", "collection", collection, "error", err)
		}
	}

	hours, err := p.source.GetMinRestHours(collection)
	if err != nil || hours <= 0 {
		if err != nil {
			slog.Warn("rest-hours lookup failed, using default", "collection", collection, "error", err)
		}
		return p.fallback
	}

	if p.cache != nil {
		if err := p.cache.Set(ctx, p.cacheKey(collection), strconv.Itoa(hours), p.cacheTTL).Err(); err != nil {
			slog.Warn("rest-hours cache write failed", "collection", collection, "error", err)
		}
	}

	return hours
}

// Invalidate drops the cached value after a settings update.
func (p *RestPolicy) Invalidate(collection string) {
	if p.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.opTimeout)
	defer cancel()

	if err := p.cache.Del(ctx, p.cacheKey(collection)).Err(); err != nil {
		slog.Warn("rest-hours cache invalidation failed", "collection", collection, "error", err)
	}
}
