package rediscache_test

import (
	"context"
	"testing"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"go.cachekit.dev/httpcache"
	"go.cachekit.dev/httpcache/policy"
	"go.cachekit.dev/httpcache/rediscache"
)

func dial(t *testing.T) *goredis.Client {
	t.Helper()
	ctx := context.Background()
	client := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("skipping test; no server running at localhost:6379")
	}
	_ = client.FlushAll(ctx)
	return client
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	client := dial(t)
	cache := rediscache.NewWithClient(client)
	defer cache.Close()

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

func TestRedisCacheMiss(t *testing.T) {
	ctx := context.Background()
	client := dial(t)
	cache := rediscache.NewWithClient(client)
	defer cache.Close()

	_, _, ok, err := cache.Get(ctx, "GET", "http://example.com/nowhere")
	require.NoError(t, err)
	require.False(t, ok)
}
