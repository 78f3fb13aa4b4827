package diskcache_test

import (
	"context"
	"math/rand/v2"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"go.cachekit.dev/httpcache"
	"go.cachekit.dev/httpcache/diskcache"
	"go.cachekit.dev/httpcache/policy"
)

func TestDiskCache(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	cache, err := diskcache.New(path)
	require.NoError(t, err)
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

func TestDiskCacheMiss(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")

	cache, err := diskcache.New(path)
	require.NoError(t, err)
	defer cache.Close()

	_, _, ok, err := cache.Get(ctx, "GET", "http://example.com/nowhere")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestDiskCacheRace(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "cache.db")
	cache, err := diskcache.New(path)
	require.NoError(t, err)
	defer cache.Close()

	res := httpcache.NewHttpResponse(make([]byte, 2048), map[string]string{}, 200, "http://example.com/x", httpcache.Http11)
	pol := policy.New(policy.RequestParts{Method: "GET", URL: "http://example.com/x"}, res.Parts())

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 128; j++ {
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
