// Package cache holds the Redis-backed read-side caches. Redis is optional:
// a nil client disables caching and every lookup falls through to the
// repository scan.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const occupiedDaysPrefix = "availability:occupied-days:"

// AvailabilityCache caches occupied-days answers per car. Entries are
// invalidated on every booking mutation, the TTL only bounds staleness when
// an invalidation is lost.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewAvailabilityCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *AvailabilityCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &AvailabilityCache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("cache", "availability")),
	}
}

// GetOccupiedDays returns the cached days for a car and whether the entry was
// present. Redis failures count as a miss.
func (c *AvailabilityCache) GetOccupiedDays(ctx context.Context, carID uuid.UUID) ([]string, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, occupiedDaysPrefix+carID.String()).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.log.Warn("Occupied-days cache read failed",
			zap.Error(err),
			zap.String("car_id", carID.String()),
		)
		return nil, false
	}

	var days []string
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		c.log.Warn("Occupied-days cache entry corrupt, dropping",
			zap.Error(err),
			zap.String("car_id", carID.String()),
		)
		c.Invalidate(ctx, carID)
		return nil, false
	}

	return days, true
}

// SetOccupiedDays stores the days for a car. Failures are logged and ignored.
func (c *AvailabilityCache) SetOccupiedDays(ctx context.Context, carID uuid.UUID, days []string) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(days)
	if err != nil {
		return
	}

	if err := c.client.Set(ctx, occupiedDaysPrefix+carID.String(), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Occupied-days cache write failed",
			zap.Error(err),
			zap.String("car_id", carID.String()),
		)
	}
}

// Invalidate drops the car's entry. Called after every booking mutation.
func (c *AvailabilityCache) Invalidate(ctx context.Context, carID uuid.UUID) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(ctx, occupiedDaysPrefix+carID.String()).Err(); err != nil {
		c.log.Warn("Occupied-days cache invalidation failed",
			zap.Error(err),
			zap.String("car_id", carID.String()),
		)
	}
}
