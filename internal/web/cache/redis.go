package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a Cache backed by Redis.
type RedisCache struct {
	client     *redis.Client
	defaultTTL time.Duration
}

// NewRedisCache wraps an existing *redis.Client. defaultTTL is used by
// Set when ttl is zero.
func NewRedisCache(client *redis.Client, defaultTTL time.Duration) *RedisCache {
	if defaultTTL <= 0 {
		defaultTTL = 5 * time.Minute
	}
	return &RedisCache{client: client, defaultTTL: defaultTTL}
}

// Get retrieves the cached value for key, returning ErrMiss if absent.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrMiss{Key: key}
		}
		return nil, err
	}
	return val, nil
}

// Set stores value under key with ttl (or the configured default TTL if
// ttl is zero).
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.defaultTTL
	}
	return c.client.Set(ctx, key, value, ttl).Err()
}
