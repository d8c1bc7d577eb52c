package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultCacheKey = "cadenas:rows:last"

// CachedRows is a raw sheet delivery as persisted in the cache.
type CachedRows struct {
	Rows      [][]string `json:"rows"`
	FetchedAt time.Time  `json:"fetched_at"`
}

// RowCache persists the last successfully fetched rows.
type RowCache interface {
	Save(ctx context.Context, rows CachedRows) error
	// Load returns ErrCacheMiss when nothing is stored.
	Load(ctx context.Context) (CachedRows, error)
}

// RedisRowCache stores rows as one JSON value in Redis.
type RedisRowCache struct {
	client redis.UniversalClient
	key    string
	ttl    time.Duration
}

// NewRedisRowCache wraps an existing client.
func NewRedisRowCache(client redis.UniversalClient, opts ...CacheOption) *RedisRowCache {
	c := &RedisRowCache{client: client, key: defaultCacheKey, ttl: 24 * time.Hour}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewRedisRowCacheFromURL parses a redis:// URL and connects lazily.
func NewRedisRowCacheFromURL(url string, opts ...CacheOption) (*RedisRowCache, error) {
	ropts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("%w: parse url: %w", ErrCache, err)
	}
	return NewRedisRowCache(redis.NewClient(ropts), opts...), nil
}

// Save implements RowCache.
func (c *RedisRowCache) Save(ctx context.Context, rows CachedRows) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrCache, err)
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: set: %w", ErrCache, err)
	}
	return nil
}

// Load implements RowCache.
func (c *RedisRowCache) Load(ctx context.Context) (CachedRows, error) {
	var out CachedRows
	data, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return out, ErrCacheMiss
	}
	if err != nil {
		return out, fmt.Errorf("%w: get: %w", ErrCache, err)
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("%w: decode: %w", ErrCache, err)
	}
	return out, nil
}

// Ping checks connectivity.
func (c *RedisRowCache) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: ping: %w", ErrCache, err)
	}
	return nil
}

// Close releases the underlying client.
func (c *RedisRowCache) Close() error {
	return c.client.Close()
}
