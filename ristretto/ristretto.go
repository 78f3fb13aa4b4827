/*
Package ristretto provides a bounded, in-memory httpcache.CacheManager built on
github.com/dgraph-io/ristretto/v2. It is suitable for applications that need to cache
many entries in high-throughput environments with many goroutines accessing the cache
concurrently, at the cost of the usual ristretto caveat: writes are applied
asynchronously, so a Put is not guaranteed visible to an immediately following Get
(call Wait in tests that depend on read-after-write).

Example Usage:

	backend, err := ristretto.New(&ristretto.Config{
		NumCounters: 1e7,     // number of keys to track frequency of (10M).
		MaxCost:     1 << 30, // maximum cost of cache (1GB).
		BufferItems: 64,      // number of keys per Get buffer.
	})

	cache := httpcache.NewHttpCache(backend)
*/
package ristretto

import (
	"context"
	"io"

	"github.com/dgraph-io/ristretto/v2"

	"go.cachekit.dev/httpcache"
	"go.cachekit.dev/httpcache/internal/codec"
	"go.cachekit.dev/httpcache/policy"
)

// Cache is a ristretto-backed httpcache.CacheManager. Entries are gob-encoded via
// internal/codec and stored under the (method, url) fingerprint joined by a single
// NUL byte, since ristretto's key type is a plain string.
type Cache struct {
	cache *ristretto.Cache[string, []byte]
}

var _ httpcache.CacheManager = (*Cache)(nil)
var _ io.Closer = (*Cache)(nil)

// New creates a new Ristretto-backed httpcache.CacheManager with the specified
// configuration.
func New(config *Config) (_ *Cache, err error) {
	c := &Cache{}
	if c.cache, err = ristretto.NewCache(config.convert()); err != nil {
		return nil, err
	}
	return c, nil
}

func key(method, url string) string {
	return method + "\x00" + url
}

// Get implements httpcache.CacheManager.
func (c *Cache) Get(ctx context.Context, method, url string) (httpcache.HttpResponse, policy.CachePolicy, bool, error) {
	raw, ok := c.cache.Get(key(method, url))
	if !ok {
		return httpcache.HttpResponse{}, policy.CachePolicy{}, false, nil
	}

	res, pol, err := codec.Unmarshal(raw)
	if err != nil {
		return httpcache.HttpResponse{}, policy.CachePolicy{}, false, err
	}
	return res, pol, true, nil
}

// Put implements httpcache.CacheManager. Put does not set an explicit cost for the
// item; it relies on the Config's Cost function. When Cost is nil, the entry's cost is
// only ristretto's fixed internal per-item cost (zero with IgnoreInternalCost), not the
// length of the encoded value.
func (c *Cache) Put(ctx context.Context, method, url string, res httpcache.HttpResponse, pol policy.CachePolicy) error {
	raw, err := codec.Marshal(res, pol)
	if err != nil {
		return err
	}
	c.cache.Set(key(method, url), raw, 0)
	return nil
}

// Delete implements httpcache.CacheManager. Deleting a missing key is not an error.
func (c *Cache) Delete(ctx context.Context, method, url string) error {
	c.cache.Del(key(method, url))
	return nil
}

// Close stops all goroutines and closes all channels.
// Implements io.Closer.
func (c *Cache) Close() error {
	c.cache.Close()
	return nil
}

// Wait blocks until all buffered writes have been applied. This ensures a call to
// Put will be visible to an immediately following Get; primarily useful in tests.
func (c *Cache) Wait() {
	c.cache.Wait()
}
