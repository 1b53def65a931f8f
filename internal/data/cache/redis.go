package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"car-rental/pkg/utils"
)

// NewRedisClient connects to Redis using the loaded configuration. It returns
// nil when Redis is disabled or unreachable; callers degrade to uncached
// operation.
func NewRedisClient(cfg utils.RedisConfig) *redis.Client {
	if !cfg.Enabled {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil
	}

	return client
}
