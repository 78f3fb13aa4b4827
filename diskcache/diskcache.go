// Package diskcache provides an on-disk httpcache.CacheManager built on
// github.com/syndtr/goleveldb. Entries are stored content-addressed: the leveldb key is
// the SHA-256 digest of the (method, url) fingerprint rather than the fingerprint
// itself, so that keys have a fixed, compact size regardless of URL length.
package diskcache

import (
	"context"
	"crypto/sha256"
	"errors"
	"log/slog"

	"github.com/syndtr/goleveldb/leveldb"

	"go.cachekit.dev/httpcache"
	"go.cachekit.dev/httpcache/internal/codec"
	"go.cachekit.dev/httpcache/policy"
)

// Cache is a goleveldb-backed httpcache.CacheManager.
type Cache struct {
	db *leveldb.DB
}

var _ httpcache.CacheManager = (*Cache)(nil)

// New returns a cache that stores entries in a leveldb database at path, opening or
// creating it as needed.
func New(path string) (_ *Cache, err error) {
	c := &Cache{}
	if c.db, err = leveldb.OpenFile(path, nil); err != nil {
		return nil, err
	}
	return c, nil
}

// Make returns a cache using the specified db instance as the underlying storage.
func Make(db *leveldb.DB) *Cache {
	return &Cache{db: db}
}

// digest returns the content-addressed leveldb key for (method, url).
func digest(method, url string) []byte {
	sum := sha256.Sum256([]byte(method + "\x00" + url))
	return sum[:]
}

// Get implements httpcache.CacheManager. Any error other than leveldb.ErrNotFound is
// logged and returned; ErrNotFound is folded into a plain miss.
func (c *Cache) Get(ctx context.Context, method, url string) (httpcache.HttpResponse, policy.CachePolicy, bool, error) {
	raw, err := c.db.Get(digest(method, url), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return httpcache.HttpResponse{}, policy.CachePolicy{}, false, nil
		}
		httpcache.GetLogger().Warn("failed to read from disk cache", slog.Any("error", err))
		return httpcache.HttpResponse{}, policy.CachePolicy{}, false, err
	}

	res, pol, err := codec.Unmarshal(raw)
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
	if err := c.db.Put(digest(method, url), raw, nil); err != nil {
		httpcache.GetLogger().Warn("failed to write to disk cache", slog.Any("error", err))
		return err
	}
	return nil
}

// Delete implements httpcache.CacheManager. Deleting a missing key is not an error.
func (c *Cache) Delete(ctx context.Context, method, url string) error {
	if err := c.db.Delete(digest(method, url), nil); err != nil {
		httpcache.GetLogger().Warn("failed to delete from disk cache", slog.Any("error", err))
		return err
	}
	return nil
}

// Close closes the underlying leveldb database.
func (c *Cache) Close() error {
	return c.db.Close()
}
