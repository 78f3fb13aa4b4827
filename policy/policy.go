package policy

import "time"

// CachePolicy is the serializable RFC 9111 freshness/validator record attached to a
// cached response. It is produced from (request parts, response parts) and persisted
// alongside the response envelope so later requests can be judged without re-reading
// an absent response body.
//
// All fields are exported so the struct gob-encodes directly (see
// go.cachekit.dev/httpcache/internal/codec), matching how the in-tree backends
// serialize the (HttpResponse, CachePolicy) pair.
type CachePolicy struct {
	Method string
	URL    string

	// Date is the response's Date header at the time the policy was built.
	Date time.Time
	// StoredAt is the wall-clock time the policy was built (used as the anchor for the
	// resident-time term of the Age algorithm).
	StoredAt time.Time
	// AgeAtStore is the response's reported Age (or zero) at the time the policy was
	// built, combined with the apparent age derived from the Date header.
	AgeAtStore time.Duration

	ReqCacheControl  map[string]string
	RespCacheControl map[string]string

	// Lifetime is the freshness lifetime computed at construction time (from
	// max-age/s-maxage, falling back to Expires, then to a heuristic lifetime when
	// CacheHeuristic is set, then to zero). It is computed
	// once here because Expires must be read from the response headers, which are not
	// otherwise retained on the policy.
	Lifetime time.Duration

	Status int

	// ETag and LastModified are the stored response's validators, carried forward so a
	// later revalidation can synthesize If-None-Match / If-Modified-Since.
	ETag         string
	LastModified string

	Shared                 bool
	ImmutableMinTimeToLive time.Duration
	CacheHeuristic         float64
	IgnoreCargoCult        bool

	// ForceRevalidate records that the response carried Cache-Control: no-cache (the
	// response form, distinct from a request's no-cache), which per RFC 9111 §5.2.2.4
	// requires revalidation on every use regardless of computed lifetime — unless
	// CacheOptions.IgnoreCargoCult judged this a no-cache-plus-far-future-Expires
	// misconfiguration and suppressed it.
	ForceRevalidate bool
}

// New builds a CachePolicy from request/response parts using the default options
// (private cache, no heuristic freshness).
func New(reqParts RequestParts, resParts ResponseParts) CachePolicy {
	return NewWithOptions(reqParts, resParts, time.Now(), CacheOptions{})
}

// NewWithOptions builds a CachePolicy from request/response parts at the given time,
// honoring the supplied CacheOptions.
func NewWithOptions(reqParts RequestParts, resParts ResponseParts, now time.Time, opts CacheOptions) CachePolicy {
	reqCC := parseCacheControl(reqParts.Header)
	respCC := parseCacheControl(resParts.Header)

	date, err := responseDate(resParts.Header)
	if err != nil {
		date = now
	}

	apparentAge := time.Duration(0)
	if now.After(date) {
		apparentAge = now.Sub(date)
	}
	if age, ok := parseAge(resParts.Header); ok && age > apparentAge {
		apparentAge = age
	}

	p := CachePolicy{
		Method:                 reqParts.Method,
		URL:                    reqParts.URL,
		Date:                   date,
		StoredAt:               now,
		AgeAtStore:             apparentAge,
		ReqCacheControl:        map[string]string(reqCC),
		RespCacheControl:       map[string]string(respCC),
		Status:                 resParts.Status,
		ETag:                   resParts.Header.Get("etag"),
		LastModified:           resParts.Header.Get("last-modified"),
		Shared:                 opts.Shared,
		ImmutableMinTimeToLive: opts.ImmutableMinTimeToLive,
		CacheHeuristic:         opts.CacheHeuristic,
		IgnoreCargoCult:        opts.IgnoreCargoCult,
	}
	p.Lifetime = p.computeLifetime(resParts.Header, opts)
	p.ForceRevalidate = respCC.has("no-cache") && !(opts.IgnoreCargoCult && isCargoCult(respCC, resParts.Header))
	return p
}

// isCargoCult reports the common misconfiguration CacheOptions.IgnoreCargoCult exists
// to tolerate: a response pairing Cache-Control: no-cache with a far-future Expires and
// no explicit max-age/s-maxage, which would otherwise force revalidation on every use
// despite the server's evident intent to let the response be cached.
func isCargoCult(respCC directives, header Header) bool {
	if _, ok := respCC.seconds("max-age"); ok {
		return false
	}
	if _, ok := respCC.seconds("s-maxage"); ok {
		return false
	}
	return header.Get("expires") != ""
}

// IsStorable reports whether the response this policy was built from may be stored,
// per RFC 9111 §3 (general storability) and §5.2.2.3 (must-understand).
//
// Grounded on _examples/sandrolain-httpcache/cachecontrol.go's canStore.
func (p CachePolicy) IsStorable() bool {
	respCC := directives(p.RespCacheControl)
	reqCC := directives(p.ReqCacheControl)

	if respCC.has("must-understand") {
		if !understoodStatusCodes[p.Status] {
			return false
		}
		// must-understand + understood status overrides no-store.
	} else {
		if respCC.has("no-store") || reqCC.has("no-store") {
			return false
		}
	}

	if p.Shared {
		if respCC.has("private") {
			return false
		}
	}

	return true
}

// mustRevalidate reports whether the stored response carries Cache-Control:
// must-revalidate.
func (p CachePolicy) mustRevalidate() bool {
	return directives(p.RespCacheControl).has("must-revalidate")
}

// computeLifetime computes the response's freshness lifetime (RFC 9111 §4.2.1) from
// max-age/s-maxage, falling back to Expires, falling back to a heuristic lifetime when
// CacheOptions.CacheHeuristic is set (RFC 9111 §4.2.2). Called once at construction time
// because Expires/Last-Modified must be read from the response headers.
func (p CachePolicy) computeLifetime(respHeader Header, opts CacheOptions) time.Duration {
	respCC := directives(p.RespCacheControl)

	if p.Shared {
		if s, ok := respCC.seconds("s-maxage"); ok {
			return time.Duration(s) * time.Second
		}
	}
	if s, ok := respCC.seconds("max-age"); ok {
		lifetime := time.Duration(s) * time.Second
		if respCC.has("immutable") && lifetime < p.ImmutableMinTimeToLive {
			return p.ImmutableMinTimeToLive
		}
		return lifetime
	}

	if expires := respHeader.Get("expires"); expires != "" {
		if t, err := parseHTTPDate(expires); err == nil {
			if t.After(p.Date) {
				return t.Sub(p.Date)
			}
			return 0
		}
	}

	if opts.CacheHeuristic > 0 && p.LastModified != "" {
		if lastModified, err := parseHTTPDate(p.LastModified); err == nil && p.Date.After(lastModified) {
			age := p.Date.Sub(lastModified)
			return time.Duration(float64(age) * opts.CacheHeuristic)
		}
	}

	return 0
}
