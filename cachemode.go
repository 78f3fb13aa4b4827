package httpcache

// CacheMode controls how the decision engine treats the cache on the way to the
// network. See spec §4.1/§6.
type CacheMode uint8

const (
	// ModeDefault inspects the cache on the way to the network: a fresh response is
	// used as-is, a stale response is conditionally revalidated, and a missing entry
	// falls through to a normal request. Updates the cache with the outcome.
	ModeDefault CacheMode = iota
	// ModeNoStore behaves as if there were no cache at all: never read, never write.
	ModeNoStore
	// ModeReload bypasses the cache on the way to the network (always issues a normal
	// request) but still updates the cache with the response.
	ModeReload
	// ModeNoCache forces revalidation with the origin: on a hit the request is sent with
	// Cache-Control: no-cache and no validators (or as a normal request on a miss), and
	// the cache is updated with the outcome.
	ModeNoCache
	// ModeForceCache serves any cached entry regardless of staleness, marking it with a
	// 112 Disconnected Operation warning. Falls through to a normal request on a miss.
	ModeForceCache
	// ModeOnlyIfCached serves any cached entry regardless of staleness. On a miss it
	// synthesizes a 504 Gateway Timeout rather than touching the network.
	ModeOnlyIfCached
)

// String implements fmt.Stringer.
func (m CacheMode) String() string {
	switch m {
	case ModeDefault:
		return "Default"
	case ModeNoStore:
		return "NoStore"
	case ModeReload:
		return "Reload"
	case ModeNoCache:
		return "NoCache"
	case ModeForceCache:
		return "ForceCache"
	case ModeOnlyIfCached:
		return "OnlyIfCached"
	default:
		return "Unknown"
	}
}
