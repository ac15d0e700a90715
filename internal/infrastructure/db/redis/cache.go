package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultCacheTTL = 30 * time.Second

// commands is the subset of redis.Cmdable the cache uses.
type commands interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Cache is a ports.Cache backed by Redis.
// Key format: <prefix><kind>:<icao24>
type Cache struct {
	client commands
	prefix string
	ttl    time.Duration
	log    zerolog.Logger
}

// NewCache creates a Cache wrapping the given Redis client. Entries expire
// after ttl (defaultCacheTTL when non-positive).
func NewCache(client commands, prefix string, ttl time.Duration, log zerolog.Logger) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{client: client, prefix: prefix, ttl: ttl, log: log}
}

// Get returns the stored value. Missing keys and Redis errors are misses.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	b, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("key", key).Msg("redis get")
		}
		return nil, false
	}
	return b, true
}

// Set stores value until the cache TTL passes.
func (c *Cache) Set(ctx context.Context, key string, value []byte) {
	if err := c.client.Set(ctx, c.prefix+key, value, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("redis set")
	}
}
