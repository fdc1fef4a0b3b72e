// Package cache provides a small JSON read-through cache over Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache stores JSON-encoded values with a fixed TTL. A nil Redis client
// disables it, so callers never have to branch on availability.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
}

// New builds a cache over the given client. rdb may be nil.
func New(rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{rdb: rdb, ttl: ttl}
}

// Get unmarshals the cached value for key into dest. The boolean reports
// whether the key was present.
func (c *Cache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, nil
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// Set stores value under key for the configured TTL.
func (c *Cache) Set(ctx context.Context, key string, value any) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, b, c.ttl).Err()
}

// Delete drops key from the cache.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, key).Err()
}
