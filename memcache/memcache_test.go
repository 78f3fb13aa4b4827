package memcache_test

import (
	"context"
	"errors"
	"testing"

	gomemcache "github.com/bradfitz/gomemcache/memcache"
	"github.com/stretchr/testify/require"

	"go.cachekit.dev/httpcache"
	"go.cachekit.dev/httpcache/memcache"
	"go.cachekit.dev/httpcache/policy"
)

func dial(t *testing.T) *memcache.Cache {
	t.Helper()
	client := gomemcache.New("localhost:11211")
	if _, err := client.Get("httpcache:probe"); err != nil && !errors.Is(err, gomemcache.ErrCacheMiss) {
		t.Skipf("skipping test; no memcached server running at localhost:11211: %v", err)
	}
	return memcache.NewWithClient(client)
}

func TestMemcacheCache(t *testing.T) {
	ctx := context.Background()
	cache := dial(t)

	res := httpcache.NewHttpResponse([]byte("bar"), map[string]string{}, 200, "http://example.com/foo", httpcache.Http11)
	pol := policy.New(policy.RequestParts{Method: "GET", URL: "http://example.com/foo"}, res.Parts())

	require.NoError(t, cache.Put(ctx, "GET", "http://example.com/foo", res, pol))

	got, _, ok, err := cache.Get(ctx, "GET", "http://example.com/foo")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("bar"), got.Body)

	require.NoError(t, cache.Delete(ctx, "GET", "http://example.com/foo"))
	_, _, ok, err = cache.Get(ctx, "GET", "http://example.com/foo")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemcacheCacheMiss(t *testing.T) {
	ctx := context.Background()
	cache := dial(t)

	_, _, ok, err := cache.Get(ctx, "GET", "http://example.com/nowhere")
	require.NoError(t, err)
	require.False(t, ok)
}
