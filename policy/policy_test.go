package policy_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"go.cachekit.dev/httpcache/policy"
)

func req(method, url string, headers map[string]string) policy.RequestParts {
	h := policy.NewHeader()
	for k, v := range headers {
		h.Set(k, v)
	}
	return policy.RequestParts{Method: method, URL: url, Header: h}
}

func res(status int, headers map[string]string) policy.ResponseParts {
	h := policy.NewHeader()
	for k, v := range headers {
		h.Set(k, v)
	}
	return policy.ResponseParts{Status: status, Header: h}
}

func TestIsStorableNoStore(t *testing.T) {
	p := policy.New(req("GET", "http://example.com/", nil), res(200, map[string]string{
		"cache-control": "no-store",
	}))
	require.False(t, p.IsStorable())
}

func TestIsStorableMustUnderstandOverridesNoStore(t *testing.T) {
	p := policy.New(req("GET", "http://example.com/", nil), res(200, map[string]string{
		"cache-control": "must-understand, no-store",
	}))
	require.True(t, p.IsStorable())
}

func TestIsStorableMustUnderstandUnknownStatus(t *testing.T) {
	p := policy.New(req("GET", "http://example.com/", nil), res(209, map[string]string{
		"cache-control": "must-understand",
	}))
	require.False(t, p.IsStorable())
}

func TestIsStorablePrivateInSharedCache(t *testing.T) {
	now := time.Now()
	p := policy.NewWithOptions(req("GET", "http://example.com/", nil), res(200, map[string]string{
		"cache-control": "private",
	}), now, policy.CacheOptions{Shared: true})
	require.False(t, p.IsStorable())
}

func TestBeforeRequestFreshWithinMaxAge(t *testing.T) {
	now := time.Now()
	p := policy.NewWithOptions(req("GET", "http://example.com/", nil), res(200, map[string]string{
		"cache-control": "max-age=60",
		"date":          now.UTC().Format(time.RFC1123),
	}), now, policy.CacheOptions{})

	result := p.BeforeRequest(req("GET", "http://example.com/", nil), now.Add(30*time.Second))
	require.True(t, result.IsFresh())
}

func TestBeforeRequestStaleAfterMaxAge(t *testing.T) {
	now := time.Now()
	p := policy.NewWithOptions(req("GET", "http://example.com/", nil), res(200, map[string]string{
		"cache-control": "max-age=60",
		"etag":          `"v1"`,
		"date":          now.UTC().Format(time.RFC1123),
	}), now, policy.CacheOptions{})

	result := p.BeforeRequest(req("GET", "http://example.com/", nil), now.Add(90*time.Second))
	require.False(t, result.IsFresh())
	require.Equal(t, `"v1"`, result.StaleRequestHeaders.Get("if-none-match"))
	require.True(t, result.Matches)
}

func TestBeforeRequestNoCacheForcesRevalidation(t *testing.T) {
	now := time.Now()
	p := policy.NewWithOptions(req("GET", "http://example.com/", nil), res(200, map[string]string{
		"cache-control": "max-age=600",
		"date":          now.UTC().Format(time.RFC1123),
	}), now, policy.CacheOptions{})

	result := p.BeforeRequest(req("GET", "http://example.com/", map[string]string{
		"cache-control": "no-cache",
	}), now.Add(time.Second))
	require.False(t, result.IsFresh())
}

func TestBeforeRequestMaxStaleWithNoValueAcceptsAnyStaleness(t *testing.T) {
	now := time.Now()
	p := policy.NewWithOptions(req("GET", "http://example.com/", nil), res(200, map[string]string{
		"cache-control": "max-age=60",
		"date":          now.UTC().Format(time.RFC1123),
	}), now, policy.CacheOptions{})

	result := p.BeforeRequest(req("GET", "http://example.com/", map[string]string{
		"cache-control": "max-stale",
	}), now.Add(time.Hour))
	require.True(t, result.IsFresh())
}

func TestBeforeRequestMustRevalidateIgnoresMaxStale(t *testing.T) {
	now := time.Now()
	p := policy.NewWithOptions(req("GET", "http://example.com/", nil), res(200, map[string]string{
		"cache-control": "max-age=60, must-revalidate",
		"date":          now.UTC().Format(time.RFC1123),
	}), now, policy.CacheOptions{})

	result := p.BeforeRequest(req("GET", "http://example.com/", map[string]string{
		"cache-control": "max-stale=3600",
	}), now.Add(90*time.Second))
	require.False(t, result.IsFresh())
}

func TestAfterResponseNotModifiedKeepsValidators(t *testing.T) {
	now := time.Now()
	stored := policy.NewWithOptions(req("GET", "http://example.com/", nil), res(200, map[string]string{
		"cache-control": "max-age=60",
		"etag":          `"v1"`,
		"date":          now.UTC().Format(time.RFC1123),
	}), now, policy.CacheOptions{})

	result := stored.AfterResponse(req("GET", "http://example.com/", nil), res(304, map[string]string{
		"date": now.Add(time.Minute).UTC().Format(time.RFC1123),
	}), now.Add(time.Minute))

	require.False(t, result.Modified)
	require.Equal(t, `"v1"`, result.Policy.ETag)
}

func TestBeforeRequestHeuristicFreshnessFromLastModified(t *testing.T) {
	now := time.Now()
	lastModified := now.Add(-20 * time.Hour)
	p := policy.NewWithOptions(req("GET", "http://example.com/", nil), res(200, map[string]string{
		"last-modified": lastModified.UTC().Format(time.RFC1123),
		"date":          now.UTC().Format(time.RFC1123),
	}), now, policy.CacheOptions{CacheHeuristic: 0.1})

	// Heuristic lifetime is 10% of 20h = 2h, so 1h later is still fresh.
	result := p.BeforeRequest(req("GET", "http://example.com/", nil), now.Add(time.Hour))
	require.True(t, result.IsFresh())
}

func TestBeforeRequestResponseNoCacheForcesRevalidationRegardlessOfLifetime(t *testing.T) {
	now := time.Now()
	p := policy.NewWithOptions(req("GET", "http://example.com/", nil), res(200, map[string]string{
		"cache-control": "no-cache",
		"expires":       now.Add(24 * time.Hour).UTC().Format(time.RFC1123),
		"date":          now.UTC().Format(time.RFC1123),
	}), now, policy.CacheOptions{})

	result := p.BeforeRequest(req("GET", "http://example.com/", nil), now.Add(time.Second))
	require.False(t, result.IsFresh())
}

func TestBeforeRequestIgnoreCargoCultSuppressesForcedRevalidation(t *testing.T) {
	now := time.Now()
	p := policy.NewWithOptions(req("GET", "http://example.com/", nil), res(200, map[string]string{
		"cache-control": "no-cache",
		"expires":       now.Add(24 * time.Hour).UTC().Format(time.RFC1123),
		"date":          now.UTC().Format(time.RFC1123),
	}), now, policy.CacheOptions{IgnoreCargoCult: true})

	result := p.BeforeRequest(req("GET", "http://example.com/", nil), now.Add(time.Second))
	require.True(t, result.IsFresh())
}

func TestAfterResponseModifiedWhenStatusIsNot304(t *testing.T) {
	now := time.Now()
	stored := policy.New(req("GET", "http://example.com/", nil), res(200, map[string]string{
		"cache-control": "max-age=60",
		"date":          now.UTC().Format(time.RFC1123),
	}))

	result := stored.AfterResponse(req("GET", "http://example.com/", nil), res(200, map[string]string{
		"date": now.UTC().Format(time.RFC1123),
	}), now)
	require.True(t, result.Modified)
}
