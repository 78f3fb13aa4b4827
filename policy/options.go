package policy

import "time"

// CacheOptions controls shared-cache behavior, heuristic freshness and cache-control
// strictness when building a CachePolicy. The zero value is the private-cache, no
// heuristics, strict-cache-control default.
//
// Named and shaped after the options exposed by http-cache-semantics-style RFC 9111
// evaluators (see _examples/original_source/http-cache/src/lib.rs's re-export of
// http_cache_semantics::CacheOptions): this is the Go rendition of the same knobs.
type CacheOptions struct {
	// Shared marks this policy as belonging to a shared (public) cache rather than a
	// private, single-user cache. A shared policy is not storable when the response
	// carries Cache-Control: private, and its lifetime comes from s-maxage before
	// max-age. The request's Authorization header is not consulted.
	Shared bool

	// CacheHeuristic is the fraction (0.0-1.0) of the time since Last-Modified to treat
	// as a heuristic freshness lifetime when the response carries neither an explicit
	// max-age/s-maxage directive nor an Expires header (RFC 9111 §4.2.2). Zero disables
	// heuristic freshness.
	CacheHeuristic float64

	// ImmutableMinTimeToLive is the minimum freshness lifetime granted to a response
	// carrying Cache-Control: immutable, regardless of its computed max-age.
	ImmutableMinTimeToLive time.Duration

	// IgnoreCargoCult, when true, ignores the common misconfiguration of pairing
	// Cache-Control: no-cache with a far-future Expires header by treating such
	// responses as cacheable with the Expires-derived lifetime instead of forcing
	// revalidation on every request.
	IgnoreCargoCult bool
}
