package transport

import (
	"context"
	"log/slog"
	"net/http"

	"go.rtnl.ai/x/httpcc"

	"go.cachekit.dev/httpcache"
)

// XFromCache is set to "1" on responses served from cache when MarkCachedResponses is
// enabled, mirroring the teacher's debug-header convention.
const XFromCache = "X-From-Cache"

// Transport is an http.RoundTripper that drives an *httpcache.HttpCache through its
// four operations, performing the actual network I/O the engine itself never does.
//
// Grounded on _examples/rotationalio-httpcache/httpcache.go's Transport/NewTransport/
// Client shape, rewritten to dispatch on Action/Fetch/Stage instead of inlining RFC
// logic directly in RoundTrip.
type Transport struct {
	// Transport is the underlying round tripper used for actual network requests. If
	// nil, http.DefaultTransport is used.
	Transport http.RoundTripper

	// Cache drives cacheability/freshness/revalidation decisions. Required.
	Cache *httpcache.HttpCache

	// MarkCachedResponses, if true, sets X-From-Cache: 1 on responses returned without
	// a network fetch.
	MarkCachedResponses bool
}

// NewTransport returns a new Transport over cache with MarkCachedResponses enabled.
func NewTransport(cache *httpcache.HttpCache) *Transport {
	return &Transport{Cache: cache, MarkCachedResponses: true}
}

// Client returns a new http.Client that caches responses through t.
func (t *Transport) Client() *http.Client {
	return &http.Client{Transport: t}
}

func (t *Transport) transport() http.RoundTripper {
	if t.Transport != nil {
		return t.Transport
	}
	return http.DefaultTransport
}

// RoundTrip implements http.RoundTripper, consulting the cache before performing any
// network I/O and storing/revalidating the result afterward. See spec §4.4.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	reqParts := requestPartsFromHTTP(req)

	action, err := t.Cache.BeforeRequest(ctx, reqParts)
	if err != nil {
		return nil, err
	}

	switch a := action.(type) {
	case httpcache.ActionCached:
		return t.markCached(responseToHTTP(a.Response, req)), nil

	case httpcache.ActionRemote:
		return t.handleFetch(ctx, req, reqParts, a.Fetch)

	default:
		return t.transport().RoundTrip(req)
	}
}

func (t *Transport) handleFetch(ctx context.Context, req *http.Request, reqParts httpcache.RequestParts, fetch httpcache.Fetch) (*http.Response, error) {
	switch f := fetch.(type) {
	case httpcache.FetchNormal:
		return t.fetchAndStore(ctx, req, reqParts, false)

	case httpcache.FetchForceNoCache:
		req = req.Clone(ctx)
		req.Header.Set("Cache-Control", "no-cache")
		// A cached entry existed at lookup time (that's why the engine chose
		// ForceNoCache over Normal) and this fetch effectively revalidates it, so the
		// returned response reports x-cache-lookup: HIT. See spec §4.4.
		return t.fetchAndStore(ctx, req, reqParts, true)

	case httpcache.FetchConditional:
		before, ok := f.Stage.(httpcache.StageBeforeFetch)
		if !ok {
			return t.fetchAndStore(ctx, req, reqParts, false)
		}

		stage := t.Cache.BeforeConditionalFetch(reqParts, before.Response, before.Policy)
		switch s := stage.(type) {
		case httpcache.StageCached:
			return t.markCached(responseToHTTP(s.Response, req)), nil

		case httpcache.StageUpdateRequestHeaders:
			condReq := req.Clone(ctx)
			applyRequestHeaders(condReq, s.RequestParts.Header)

			httpResp, err := t.transport().RoundTrip(condReq)
			if err != nil {
				return nil, err
			}
			conditional, err := httpResponseFromHTTP(httpResp, req.URL.String())
			if err != nil {
				return nil, err
			}

			final, err := t.Cache.AfterConditionalFetch(ctx, reqParts, before.Response, conditional, before.Policy)
			if err != nil {
				return nil, err
			}
			return responseToHTTP(final, req), nil

		default:
			return t.fetchAndStore(ctx, req, reqParts, false)
		}

	default:
		return t.fetchAndStore(ctx, req, reqParts, false)
	}
}

// fetchAndStore performs the actual network round trip and lets the engine decide
// whether to store or invalidate the result. markLookupHit reports x-cache-lookup: HIT
// on the returned response instead of the MISS httpResponseFromHTTP pre-sets, used when
// the fetch is a forced revalidation of an entry that did exist at lookup time.
func (t *Transport) fetchAndStore(ctx context.Context, req *http.Request, reqParts httpcache.RequestParts, markLookupHit bool) (*http.Response, error) {
	httpResp, err := t.transport().RoundTrip(req)
	if err != nil {
		return nil, err
	}

	res, err := httpResponseFromHTTP(httpResp, req.URL.String())
	if err != nil {
		return nil, err
	}

	if repcc, ccErr := httpcc.Response(httpResp); ccErr != nil {
		httpcache.GetLogger().Warn("could not parse response cache-control directives", slog.Any("error", ccErr))
	} else if repcc.NoStore() {
		httpcache.GetLogger().Debug("response carries Cache-Control: no-store, AfterRemoteFetch will not store it", slog.String("url", req.URL.String()))
	}

	if markLookupHit {
		res.CacheLookupStatus(httpcache.Hit)
	}

	if err := t.Cache.AfterRemoteFetch(ctx, res, reqParts); err != nil {
		return nil, err
	}

	return responseToHTTP(res, req), nil
}

func (t *Transport) markCached(resp *http.Response) *http.Response {
	if t.MarkCachedResponses {
		resp.Header.Set(XFromCache, "1")
	}
	return resp
}
