package repository

import "time"

// CacheOption applies a configuration option to the RedisRowCache.
type CacheOption func(*RedisRowCache)

// WithKey sets the Redis key holding the cached rows.
func WithKey(key string) CacheOption {
	return func(c *RedisRowCache) {
		if key != "" {
			c.key = key
		}
	}
}

// WithTTL sets how long cached rows live. Zero keeps them until overwritten.
func WithTTL(ttl time.Duration) CacheOption {
	return func(c *RedisRowCache) {
		if ttl >= 0 {
			c.ttl = ttl
		}
	}
}
