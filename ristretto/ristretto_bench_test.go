package ristretto_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"go.cachekit.dev/httpcache"
	"go.cachekit.dev/httpcache/policy"
	"go.cachekit.dev/httpcache/ristretto"
)

func benchmarkGet(size int) func(b *testing.B) {
	return func(b *testing.B) {
		ctx := context.Background()
		cache, err := ristretto.New(&ristretto.Config{
			NumCounters: 1e7,     // number of keys to track frequency of (10M).
			MaxCost:     1 << 30, // maximum cost of cache (1GB).
			BufferItems: 64,      // number of keys per Get buffer.
		})
		require.NoError(b, err)

		res := httpcache.NewHttpResponse(make([]byte, size), map[string]string{}, 200, "http://example.com/", httpcache.Http11)
		pol := policy.New(policy.RequestParts{Method: "GET", URL: "http://example.com/"}, res.Parts())

		// Prepopulate the cache
		for i := 0; i < 128; i++ {
			url := "http://example.com/" + string(rune('a'+i))
			_ = cache.Put(ctx, "GET", url, res, pol)
		}
		cache.Wait()

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			_, _, _, _ = cache.Get(ctx, "GET", "http://example.com/"+string(rune('a'+i%192)))
		}
	}
}

func BenchmarkRistrettoCacheGet(b *testing.B) {
	b.Run("Small", benchmarkGet(512))
	b.Run("Realistic", benchmarkGet(2048))
	b.Run("Large", benchmarkGet(5.243e+6))
}

func benchmarkPut(size int) func(b *testing.B) {
	return func(b *testing.B) {
		ctx := context.Background()
		cache, err := ristretto.New(&ristretto.Config{
			NumCounters: 1e7,     // number of keys to track frequency of (10M).
			MaxCost:     1 << 30, // maximum cost of cache (1GB).
			BufferItems: 64,      // number of keys per Get buffer.
		})
		require.NoError(b, err)

		res := httpcache.NewHttpResponse(make([]byte, size), map[string]string{}, 200, "http://example.com/", httpcache.Http11)
		pol := policy.New(policy.RequestParts{Method: "GET", URL: "http://example.com/"}, res.Parts())

		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			url := "http://example.com/" + string(rune('a'+i%192))
			_ = cache.Put(ctx, "GET", url, res, pol)
		}
	}
}

func BenchmarkRistrettoCachePut(b *testing.B) {
	b.Run("Small", benchmarkPut(512))
	b.Run("Realistic", benchmarkPut(2048))
	b.Run("Large", benchmarkPut(5.243e+6))
}

// Benchmark mixed operations
func BenchmarkRistrettoCacheMixed(b *testing.B) {
	ctx := context.Background()
	cache, err := ristretto.New(&ristretto.Config{
		NumCounters: 1e7,     // number of keys to track frequency of (10M).
		MaxCost:     1 << 30, // maximum cost of cache (1GB).
		BufferItems: 64,      // number of keys per Get buffer.
	})
	require.NoError(b, err)

	res := httpcache.NewHttpResponse(make([]byte, 1024), map[string]string{}, 200, "http://example.com/", httpcache.Http11)
	pol := policy.New(policy.RequestParts{Method: "GET", URL: "http://example.com/"}, res.Parts())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		url := "http://example.com/" + string(rune('a'+i%128))
		switch i % 3 {
		case 0:
			_ = cache.Put(ctx, "GET", url, res, pol)
		case 1:
			_, _, _, _ = cache.Get(ctx, "GET", url)
		case 2:
			_ = cache.Delete(ctx, "GET", url)
		}
	}
}

// Benchmark concurrent mixed operations
func BenchmarkRistrettoCacheParallelMixed(b *testing.B) {
	ctx := context.Background()
	cache, err := ristretto.New(&ristretto.Config{
		NumCounters: 1e7,     // number of keys to track frequency of (10M).
		MaxCost:     1 << 30, // maximum cost of cache (1GB).
		BufferItems: 64,      // number of keys per Get buffer.
	})
	require.NoError(b, err)

	res := httpcache.NewHttpResponse(make([]byte, 1024), map[string]string{}, 200, "http://example.com/", httpcache.Http11)
	pol := policy.New(policy.RequestParts{Method: "GET", URL: "http://example.com/"}, res.Parts())

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			url := "http://example.com/" + string(rune('a'+i%128))
			switch i % 3 {
			case 0:
				_ = cache.Put(ctx, "GET", url, res, pol)
			case 1:
				_, _, _, _ = cache.Get(ctx, "GET", url)
			case 2:
				_ = cache.Delete(ctx, "GET", url)
			}
			i++
		}
	})
}
