// Package rediscache provides a Redis-backed httpcache.CacheManager built on
// github.com/redis/go-redis/v9.
package rediscache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"go.cachekit.dev/httpcache"
	"go.cachekit.dev/httpcache/internal/codec"
	"go.cachekit.dev/httpcache/policy"
)

// Config holds the configuration for creating a Redis cache.
type Config struct {
	// Addr is the Redis server address (e.g., "localhost:6379"). Required.
	Addr string

	// Password is the Redis password for authentication. Optional.
	Password string

	// DB is the Redis database number to use. Optional, defaults to 0.
	DB int

	// PoolSize is the maximum number of socket connections. Optional, defaults to the
	// go-redis client default.
	PoolSize int

	// DialTimeout is the timeout for establishing new connections. Optional, defaults
	// to 5 seconds.
	DialTimeout time.Duration

	// ReadTimeout is the timeout for socket reads. Optional, defaults to 3 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the timeout for socket writes. Optional, defaults to 3 seconds.
	WriteTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// Cache is a go-redis-backed httpcache.CacheManager.
type Cache struct {
	client *redis.Client
}

var _ httpcache.CacheManager = (*Cache)(nil)

// cacheKey prefixes a fingerprint to avoid collision with other data stored in Redis.
func cacheKey(method, url string) string {
	return "httpcache:" + method + "\x00" + url
}

// New creates a new Cache with the given configuration and verifies connectivity with
// a PING.
func New(ctx context.Context, config Config) (*Cache, error) {
	if config.Addr == "" {
		return nil, fmt.Errorf("rediscache: address is required")
	}

	defaults := DefaultConfig()
	if config.DialTimeout == 0 {
		config.DialTimeout = defaults.DialTimeout
	}
	if config.ReadTimeout == 0 {
		config.ReadTimeout = defaults.ReadTimeout
	}
	if config.WriteTimeout == 0 {
		config.WriteTimeout = defaults.WriteTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     config.PoolSize,
		DialTimeout:  config.DialTimeout,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("rediscache: failed to connect to redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// NewWithClient returns a new Cache using the given, already-configured client.
func NewWithClient(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get implements httpcache.CacheManager.
func (c *Cache) Get(ctx context.Context, method, url string) (httpcache.HttpResponse, policy.CachePolicy, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(method, url)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return httpcache.HttpResponse{}, policy.CachePolicy{}, false, nil
		}
		return httpcache.HttpResponse{}, policy.CachePolicy{}, false, fmt.Errorf("rediscache: get failed: %w", err)
	}

	res, pol, err := codec.Unmarshal(raw)
	if err != nil {
		return httpcache.HttpResponse{}, policy.CachePolicy{}, false, err
	}
	return res, pol, true, nil
}

// Put implements httpcache.CacheManager. Entries are stored without expiration; callers
// that want TTL-based eviction should wrap Cache or prune keys out of band.
func (c *Cache) Put(ctx context.Context, method, url string, res httpcache.HttpResponse, pol policy.CachePolicy) error {
	raw, err := codec.Marshal(res, pol)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, cacheKey(method, url), raw, 0).Err(); err != nil {
		return fmt.Errorf("rediscache: set failed: %w", err)
	}
	return nil
}

// Delete implements httpcache.CacheManager. Deleting a missing key is not an error.
func (c *Cache) Delete(ctx context.Context, method, url string) error {
	if err := c.client.Del(ctx, cacheKey(method, url)).Err(); err != nil {
		return fmt.Errorf("rediscache: delete failed: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (c *Cache) Close() error {
	return c.client.Close()
}
