package policy

import "time"

// BeforeRequestResult is the tagged outcome of CachePolicy.BeforeRequest: either the
// stored response is Fresh and can be served directly, or it is Stale and must be
// revalidated first.
//
// Grounded on the BeforeRequest enum consumed by
// _examples/original_source/http-cache/src/lib.rs's before_conditional_fetch.
type BeforeRequestResult struct {
	fresh bool

	// FreshHeaders carries headers (e.g. a recomputed Age) to merge into the served
	// cached response when fresh is true.
	FreshHeaders Header

	// StaleRequestHeaders carries conditional-request headers (If-None-Match,
	// If-Modified-Since) to inject into the outgoing revalidation request when fresh is
	// false.
	StaleRequestHeaders Header
	// Matches reports whether a validator (etag or last-modified) was available to
	// build a real conditional request.
	Matches bool
}

// IsFresh reports whether the stored response may be served without revalidation.
func (r BeforeRequestResult) IsFresh() bool { return r.fresh }

// BeforeRequest judges the freshness of the stored response against now and the
// incoming request's cache-control overrides (RFC 9111 §4.2, §5.2.1).
//
// Grounded on _examples/sandrolain-httpcache/freshness.go's getFreshness, adjusted to
// operate on the persisted CachePolicy rather than re-reading response headers.
func (p CachePolicy) BeforeRequest(reqParts RequestParts, now time.Time) BeforeRequestResult {
	reqCC := parseCacheControl(reqParts.Header)

	if reqCC.has("no-cache") || p.ForceRevalidate {
		return p.staleResult()
	}

	age := currentAge(p.Date, p.AgeAtStore, p.StoredAt, now)
	lifetime := p.Lifetime

	if s, ok := reqCC.seconds("max-age"); ok {
		lifetime = time.Duration(s) * time.Second
	}

	if !p.mustRevalidate() {
		if s, ok := reqCC.seconds("max-stale"); ok {
			age -= time.Duration(s) * time.Second
		} else if _, present := reqCC["max-stale"]; present {
			// max-stale with no value: accept any staleness.
			return p.freshResult(age)
		}
	}

	if s, ok := reqCC.seconds("min-fresh"); ok {
		age += time.Duration(s) * time.Second
	}

	if lifetime > age {
		return p.freshResult(age)
	}

	if s, ok := directives(p.RespCacheControl).seconds("stale-while-revalidate"); ok {
		if lifetime+time.Duration(s)*time.Second > age {
			return p.freshResult(age)
		}
	}

	return p.staleResult()
}

func (p CachePolicy) freshResult(age time.Duration) BeforeRequestResult {
	h := NewHeader()
	h.Set("age", formatAge(age))
	return BeforeRequestResult{fresh: true, FreshHeaders: h}
}

func (p CachePolicy) staleResult() BeforeRequestResult {
	h := NewHeader()
	matches := false
	if p.ETag != "" {
		h.Set("if-none-match", p.ETag)
		matches = true
	}
	if p.LastModified != "" {
		h.Set("if-modified-since", p.LastModified)
		matches = true
	}
	return BeforeRequestResult{fresh: false, StaleRequestHeaders: h, Matches: matches}
}

// AfterResponseResult is the tagged outcome of CachePolicy.AfterResponse: the
// revalidation either confirmed the stored response is still current (NotModified) or
// produced different metadata that still requires a policy update (Modified). Both
// arms carry the policy to persist and the headers to merge into the stored response.
type AfterResponseResult struct {
	Modified bool
	Policy   CachePolicy
	Headers  Header
}

// AfterResponse reconciles a revalidation response (typically a 304) with the stored
// policy, per RFC 9111 §4.3.4: the stored response's headers are updated with any
// headers the revalidation response supplied, and the freshness clock is reset.
//
// Grounded on the AfterResponse enum consumed by
// _examples/original_source/http-cache/src/lib.rs's after_conditional_fetch.
func (p CachePolicy) AfterResponse(reqParts RequestParts, resParts ResponseParts, now time.Time) AfterResponseResult {
	newPolicy := NewWithOptions(reqParts, ResponseParts{Status: p.Status, Header: resParts.Header}, now, CacheOptions{
		Shared:                 p.Shared,
		ImmutableMinTimeToLive: p.ImmutableMinTimeToLive,
		CacheHeuristic:         p.CacheHeuristic,
		IgnoreCargoCult:        p.IgnoreCargoCult,
	})

	// A 304 response carries no body and typically a thin header set; any validator or
	// representation header it does supply overrides the stored one.
	if resParts.Header.Get("etag") != "" {
		newPolicy.ETag = resParts.Header.Get("etag")
	} else {
		newPolicy.ETag = p.ETag
	}
	if resParts.Header.Get("last-modified") != "" {
		newPolicy.LastModified = resParts.Header.Get("last-modified")
	} else {
		newPolicy.LastModified = p.LastModified
	}

	modified := resParts.Status != 304
	return AfterResponseResult{Modified: modified, Policy: newPolicy, Headers: resParts.Header.Clone()}
}
