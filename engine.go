package httpcache

import (
	"context"
	"net/http"
	"time"

	"go.cachekit.dev/httpcache/policy"
)

// HttpCache is the stateless decision engine: a façade over a CacheMode, a
// CacheManager and an optional CacheOptions override. It holds no locks and no
// process-wide mutable state; every suspension point is delegated to Manager.
//
// Grounded directly on _examples/original_source/http-cache/src/lib.rs's HttpCache
// impl (this is the Go rendition of the engine that spec.md distills), with the
// control-flow sequencing (fingerprint lookup, mode dispatch, unsafe-method
// invalidation) following _examples/rotationalio-httpcache/httpcache.go's Transport.
type HttpCache struct {
	// Mode determines how the cache is consulted and updated. Default: ModeDefault.
	Mode CacheMode
	// Manager is the storage backend. Required.
	Manager CacheManager
	// Options overrides the default CacheOptions passed to the policy adapter. Nil
	// means "use policy defaults".
	Options *CacheOptions

	now func() time.Time
}

// NewHttpCache constructs an HttpCache over manager with the given options applied.
func NewHttpCache(manager CacheManager, opts ...Option) *HttpCache {
	c := &HttpCache{
		Mode:    ModeDefault,
		Manager: manager,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *HttpCache) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

func (c *HttpCache) buildPolicy(reqParts RequestParts, res HttpResponse) CachePolicy {
	if c.Options != nil {
		return policy.NewWithOptions(reqParts, res.Parts(), c.clock(), *c.Options)
	}
	return policy.NewWithOptions(reqParts, res.Parts(), c.clock(), policy.CacheOptions{})
}

// isCacheable implements the fixed cacheability predicate named in spec §9's Open
// Questions: (method ∈ {GET, HEAD}) ∧ mode ∉ {NoStore, Reload}. The original grouping
// bug (method == "GET" bypassing the mode check entirely) is intentionally not
// reproduced.
func isCacheable(method string, mode CacheMode) bool {
	isGetOrHead := method == http.MethodGet || method == http.MethodHead
	return isGetOrHead && mode != ModeNoStore && mode != ModeReload
}

// BeforeRequest determines cacheability of the request and returns the next Action to
// take. See spec §4.1.
func (c *HttpCache) BeforeRequest(ctx context.Context, reqParts RequestParts) (Action, error) {
	if !isCacheable(reqParts.Method, c.Mode) {
		return ActionRemote{Fetch: FetchNormal{}}, nil
	}

	method, url := fingerprint(reqParts.Method, reqParts.URL)
	res, pol, ok, err := c.Manager.Get(ctx, method, url)
	if err != nil {
		return nil, err
	}

	if !ok {
		if c.Mode == ModeOnlyIfCached {
			synthetic := DefaultHttpResponse()
			synthetic.Status = 504
			synthetic.Body = []byte("GatewayTimeout")
			synthetic.URL = reqParts.URL
			return ActionCached{Response: synthetic}, nil
		}
		return ActionRemote{Fetch: FetchNormal{}}, nil
	}

	res.CacheLookupStatus(Hit)
	// RFC 7234 §4.3.4: a stored response selected for update or use MUST have any 1xx
	// warn-code warning headers removed; 2xx warn-codes are retained.
	if code, present := res.WarningCode(); present && code >= 100 && code < 200 {
		res.RemoveWarning()
	}

	switch c.Mode {
	case ModeDefault:
		return ActionRemote{Fetch: FetchConditional{Stage: StageBeforeFetch{Response: res, Policy: pol}}}, nil
	case ModeNoCache:
		return ActionRemote{Fetch: FetchForceNoCache{}}, nil
	case ModeForceCache, ModeOnlyIfCached:
		// RFC 2616 §14.46: 112 Disconnected Operation SHOULD be included if the cache
		// is intentionally disconnected from the rest of the network.
		res.AddWarning(res.URL, 112, "Disconnected operation")
		res.CacheStatus(Hit)
		return ActionCached{Response: res}, nil
	default:
		return ActionRemote{Fetch: FetchNormal{}}, nil
	}
}

// AfterRemoteFetch is invoked once a Normal or ForceNoCache fetch completes, and
// decides whether to store or invalidate the result. See spec §4.1.
func (c *HttpCache) AfterRemoteFetch(ctx context.Context, res HttpResponse, reqParts RequestParts) error {
	pol := c.buildPolicy(reqParts, res)

	isGetOrHead := reqParts.Method == http.MethodGet || reqParts.Method == http.MethodHead
	cacheable := isGetOrHead &&
		c.Mode != ModeNoStore &&
		c.Mode != ModeReload &&
		res.Status == 200 &&
		pol.IsStorable()

	method, url := fingerprint(reqParts.Method, reqParts.URL)
	if cacheable {
		return c.Manager.Put(ctx, method, url, res, pol)
	}

	if !isGetOrHead {
		// Best-effort: a mutating method invalidates any cached GET at the same URL.
		// Errors here are intentionally swallowed (spec §7).
		getMethod, getURL := fingerprint(http.MethodGet, reqParts.URL)
		_ = c.Manager.Delete(ctx, getMethod, getURL)
	}
	return nil
}

// BeforeConditionalFetch judges the freshness of a stored response without any I/O,
// returning the next Stage for the adapter to act on. See spec §4.1.
func (c *HttpCache) BeforeConditionalFetch(reqParts RequestParts, cached HttpResponse, pol CachePolicy) Stage {
	result := pol.BeforeRequest(reqParts, c.clock())
	if result.IsFresh() {
		cached.UpdateHeaders(ResponseParts{Header: result.FreshHeaders})
		cached.CacheStatus(Hit)
		cached.CacheLookupStatus(Hit)
		return StageCached{Response: cached}
	}
	return StageUpdateRequestHeaders{RequestParts: RequestParts{
		Method: reqParts.Method,
		URL:    reqParts.URL,
		Header: result.StaleRequestHeaders,
	}}
}

// AfterConditionalFetch resolves the outcome of a revalidation request. See spec §4.1.
func (c *HttpCache) AfterConditionalFetch(ctx context.Context, reqParts RequestParts, cached, conditional HttpResponse, pol CachePolicy) (HttpResponse, error) {
	cached.CacheLookupStatus(Hit)
	conditional.CacheLookupStatus(Hit)

	status := conditional.Status
	if status >= 500 && status < 600 && cached.MustRevalidate() {
		// RFC 2616 §14.46: 111 Revalidation Failed MUST be included if a cache returns
		// a stale response because revalidation failed due to an inability to reach
		// the server.
		cached.AddWarning(cached.URL, 111, "Revalidation failed")
		cached.CacheStatus(Hit)
		return cached, nil
	}

	method, url := fingerprint(reqParts.Method, reqParts.URL)

	switch {
	case status == 304:
		result := pol.AfterResponse(reqParts, conditional.Parts(), c.clock())
		cached.UpdateHeaders(ResponseParts{Header: result.Headers})
		cached.CacheStatus(Hit)
		if err := c.Manager.Put(ctx, method, url, cached, result.Policy); err != nil {
			return HttpResponse{}, err
		}
		return cached, nil

	case status == 200:
		newPolicy := c.buildPolicy(reqParts, conditional)
		conditional.CacheStatus(Miss)
		if err := c.Manager.Put(ctx, method, url, conditional, newPolicy); err != nil {
			return HttpResponse{}, err
		}
		return conditional, nil

	default:
		cached.CacheStatus(Hit)
		return cached, nil
	}
}
