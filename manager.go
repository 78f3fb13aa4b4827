package httpcache

import (
	"context"
	"errors"

	"go.cachekit.dev/httpcache/policy"
)

// ErrBadVersion is returned when converting to/from an HttpVersion fails because the
// source value does not correspond to a known HTTP version.
var ErrBadVersion = errors.New("unknown HTTP version")

// ErrBadHeader is returned when a header value cannot be parsed or converted between
// the canonical envelope and a client's native request/response types.
var ErrBadHeader = errors.New("error parsing header value")

// CacheManager is the storage contract the decision engine requires. Implementations
// are responsible for all I/O and for their own concurrency safety; the engine never
// holds a lock and never retries a failed call.
//
// Get returns ok == false only on a genuine miss. Any I/O or deserialization failure
// must be returned as an error, never folded into a miss, so that the engine's
// fail-closed error propagation (spec §7) isn't silently defeated by a lossy backend.
type CacheManager interface {
	// Get attempts to pull a cached response and its policy for (method, url).
	Get(ctx context.Context, method, url string) (res HttpResponse, pol policy.CachePolicy, ok bool, err error)

	// Put stores a response and its policy for (method, url). Put is idempotent: two
	// calls with identical arguments must leave the backend in the same state.
	Put(ctx context.Context, method, url string, res HttpResponse, pol policy.CachePolicy) error

	// Delete removes any entry for (method, url). Deleting a missing key is not an error.
	Delete(ctx context.Context, method, url string) error
}
