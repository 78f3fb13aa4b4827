package httpcache

import "time"

// Option configures an HttpCache at construction time.
//
// Grounded on _examples/sandrolain-httpcache/options.go's functional With* pattern.
type Option func(*HttpCache)

// WithMode sets the cache mode. Default: ModeDefault.
func WithMode(mode CacheMode) Option {
	return func(c *HttpCache) { c.Mode = mode }
}

// WithCacheOptions overrides the default CacheOptions passed to the policy adapter.
func WithCacheOptions(opts CacheOptions) Option {
	return func(c *HttpCache) {
		o := opts
		c.Options = &o
	}
}

// WithClock overrides the function used to read the current time. Intended for tests;
// production callers should leave this unset (defaults to time.Now).
func WithClock(now func() time.Time) Option {
	return func(c *HttpCache) { c.now = now }
}
