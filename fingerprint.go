package httpcache

import "strings"

// fingerprint returns the cache key for (method, url): the uppercased method paired
// with the URL, as two values (the CacheManager contract carries them separately; see
// spec §3 "Cache key / fingerprint").
//
// Grounded on _examples/rotationalio-httpcache/cache.go's cacheKey, narrowed to the
// spec's (METHOD_UPPER, url) pair with no header-based key variants: Vary-aware keying
// is explicitly out of scope for the core engine (spec §9).
func fingerprint(method, url string) (string, string) {
	return strings.ToUpper(method), url
}
