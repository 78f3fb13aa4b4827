// Package memcache provides an httpcache.CacheManager built on
// github.com/bradfitz/gomemcache/memcache.
package memcache

import (
	"context"
	"errors"
	"fmt"

	"github.com/bradfitz/gomemcache/memcache"

	"go.cachekit.dev/httpcache"
	"go.cachekit.dev/httpcache/internal/codec"
	"go.cachekit.dev/httpcache/policy"
)

// Cache is a gomemcache-backed httpcache.CacheManager.
type Cache struct {
	client *memcache.Client
}

var _ httpcache.CacheManager = (*Cache)(nil)

// cacheKey prefixes a fingerprint to avoid collision with other data stored in
// memcache. Method and URL are joined with ':' because memcache keys may not contain
// whitespace or control bytes. The key is not hashed: a key longer than memcache's
// 250-byte limit is rejected by the client with memcache.ErrMalformedKey; diskcache,
// which is content-addressed, has no such limit.
func cacheKey(method, url string) string {
	return "httpcache:" + method + ":" + url
}

// New returns a new Cache using the provided memcache server(s) with equal weight. If
// a server is listed multiple times, it gets a proportional amount of weight.
func New(server ...string) *Cache {
	return NewWithClient(memcache.New(server...))
}

// NewWithClient returns a new Cache with the given memcache client.
func NewWithClient(client *memcache.Client) *Cache {
	return &Cache{client: client}
}

// Get implements httpcache.CacheManager.
func (c *Cache) Get(ctx context.Context, method, url string) (httpcache.HttpResponse, policy.CachePolicy, bool, error) {
	item, err := c.client.Get(cacheKey(method, url))
	if err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return httpcache.HttpResponse{}, policy.CachePolicy{}, false, nil
		}
		return httpcache.HttpResponse{}, policy.CachePolicy{}, false, fmt.Errorf("memcache: get failed for key %q: %w", url, err)
	}

	res, pol, err := codec.Unmarshal(item.Value)
	if err != nil {
		return httpcache.HttpResponse{}, policy.CachePolicy{}, false, err
	}
	return res, pol, true, nil
}

// Put implements httpcache.CacheManager.
func (c *Cache) Put(ctx context.Context, method, url string, res httpcache.HttpResponse, pol policy.CachePolicy) error {
	raw, err := codec.Marshal(res, pol)
	if err != nil {
		return err
	}
	item := &memcache.Item{Key: cacheKey(method, url), Value: raw}
	if err := c.client.Set(item); err != nil {
		return fmt.Errorf("memcache: set failed for key %q: %w", url, err)
	}
	return nil
}

// Delete implements httpcache.CacheManager. Deleting a missing key is not an error.
func (c *Cache) Delete(ctx context.Context, method, url string) error {
	if err := c.client.Delete(cacheKey(method, url)); err != nil {
		if errors.Is(err, memcache.ErrCacheMiss) {
			return nil
		}
		return fmt.Errorf("memcache: delete failed for key %q: %w", url, err)
	}
	return nil
}
