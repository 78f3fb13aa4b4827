package ristretto_test

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"go.cachekit.dev/httpcache"
	"go.cachekit.dev/httpcache/policy"
	"go.cachekit.dev/httpcache/ristretto"
)

func newTestCache(t *testing.T) *ristretto.Cache {
	t.Helper()
	cache, err := ristretto.New(&ristretto.Config{
		NumCounters: 1e7,     // number of keys to track frequency of (10M).
		MaxCost:     1 << 30, // maximum cost of cache (1GB).
		BufferItems: 64,      // number of keys per Get buffer.
	})
	require.NoError(t, err)
	return cache
}

func TestRistrettoCache(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	res := httpcache.NewHttpResponse([]byte("bar"), map[string]string{}, 200, "http://example.com/foo", httpcache.Http11)
	pol := policy.New(policy.RequestParts{Method: "GET", URL: "http://example.com/foo"}, res.Parts())

	require.NoError(t, cache.Put(ctx, "GET", "http://example.com/foo", res, pol))
	cache.Wait()

	got, _, ok, err := cache.Get(ctx, "GET", "http://example.com/foo")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("bar"), got.Body)

	require.NoError(t, cache.Delete(ctx, "GET", "http://example.com/foo"))
	_, _, ok, err = cache.Get(ctx, "GET", "http://example.com/foo")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRistrettoCacheMiss(t *testing.T) {
	ctx := context.Background()
	cache := newTestCache(t)

	_, _, ok, err := cache.Get(ctx, "GET", "http://example.com/nowhere")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRistrettoRace(t *testing.T) {
	// Ensures no race conditions occur during concurrent access.
	ctx := context.Background()
	cache := newTestCache(t)

	res := httpcache.NewHttpResponse(make([]byte, 2048), map[string]string{}, 200, "http://example.com/x", httpcache.Http11)
	pol := policy.New(policy.RequestParts{Method: "GET", URL: "http://example.com/x"}, res.Parts())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 512; j++ {
				k := rand.IntN(64)
				url := "http://example.com/" + string(rune('a'+k%16))
				switch k % 3 {
				case 0:
					_ = cache.Put(ctx, "GET", url, res, pol)
				case 1:
					_, _, _, _ = cache.Get(ctx, "GET", url)
				case 2:
					_ = cache.Delete(ctx, "GET", url)
				}
			}
		}()
	}
	wg.Wait()
}
