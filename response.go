package httpcache

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Custom headers written by the engine to carry cache status across the adapter
// boundary. See spec §6.
const (
	// XCache is HIT if this specific response came from cache, MISS otherwise.
	XCache = "x-cache"
	// XCacheLookup is HIT if an entry existed in cache at lookup time, MISS otherwise.
	XCacheLookup = "x-cache-lookup"
)

// HitOrMiss is the value carried by the XCache/XCacheLookup headers.
type HitOrMiss uint8

const (
	// Miss indicates no cache hit occurred.
	Miss HitOrMiss = iota
	// Hit indicates a cache hit occurred.
	Hit
)

// String implements fmt.Stringer.
func (h HitOrMiss) String() string {
	if h == Hit {
		return "HIT"
	}
	return "MISS"
}

// HttpResponse is the canonical, serializable representation of an HTTP response
// persisted by a CacheManager. See spec §3.
type HttpResponse struct {
	Body    []byte
	Headers map[string]string
	Status  int
	URL     string
	Version HttpVersion
}

// NewHttpResponse constructs an HttpResponse with the given fields.
func NewHttpResponse(body []byte, headers map[string]string, status int, u string, version HttpVersion) HttpResponse {
	return HttpResponse{Body: body, Headers: headers, Status: status, URL: u, Version: version}
}

// DefaultHttpResponse constructs a placeholder response: status 500, URL
// http://localhost, HTTP/1.1, with both cache-status headers pre-set to MISS.
func DefaultHttpResponse() HttpResponse {
	r := HttpResponse{
		Body:    nil,
		Headers: map[string]string{},
		Status:  500,
		URL:     "http://localhost",
		Version: Http11,
	}
	r.CacheStatus(Miss)
	r.CacheLookupStatus(Miss)
	return r
}

// header returns the lower-cased header map, initializing it if nil.
func (r *HttpResponse) header() map[string]string {
	if r.Headers == nil {
		r.Headers = map[string]string{}
	}
	return r.Headers
}

// HeaderGet returns the value of a header, case-insensitively.
func (r HttpResponse) HeaderGet(name string) string {
	if r.Headers == nil {
		return ""
	}
	return r.Headers[strings.ToLower(name)]
}

// headerSet stores value under the lower-cased name.
func (r *HttpResponse) headerSet(name, value string) {
	r.header()[strings.ToLower(name)] = value
}

// Parts rebuilds the canonical ResponseParts for this envelope, used to feed the
// policy adapter.
func (r HttpResponse) Parts() ResponseParts {
	h := policyHeaderFrom(r.Headers)
	return ResponseParts{Status: r.Status, Header: h}
}

func policyHeaderFrom(m map[string]string) Header {
	h := Header{}
	for k, v := range m {
		h[strings.ToLower(k)] = v
	}
	return h
}

// WarningCode returns the integer value of the first three characters of the warning
// header, if present and well-formed.
func (r HttpResponse) WarningCode() (int, bool) {
	v := r.HeaderGet("warning")
	if len(v) < 3 {
		return 0, false
	}
	n, err := strconv.Atoi(v[:3])
	if err != nil {
		return 0, false
	}
	return n, true
}

// AddWarning writes the warning header in the RFC 2616 §14.46 format:
// "{code} {host} \"{message}\" \"{HTTP-date}\"".
func (r *HttpResponse) AddWarning(rawURL string, code int, message string) {
	u, err := url.Parse(rawURL)
	host := ""
	if err == nil {
		host = u.Host
	}
	value := fmt.Sprintf("%d %s %q %q", code, host, message, httpDate(time.Now()))
	r.headerSet("warning", value)
}

// RemoveWarning deletes the warning header unconditionally.
func (r *HttpResponse) RemoveWarning() {
	delete(r.header(), "warning")
}

// UpdateHeaders copies every header from parts into the envelope, keyed by
// lower-cased name.
func (r *HttpResponse) UpdateHeaders(parts ResponseParts) {
	for k, v := range parts.Header {
		r.headerSet(k, v)
	}
}

// MustRevalidate reports whether the Cache-Control header contains the must-revalidate
// token, case-insensitively.
func (r HttpResponse) MustRevalidate() bool {
	return strings.Contains(strings.ToLower(r.HeaderGet("cache-control")), "must-revalidate")
}

// CacheStatus overwrites the x-cache header.
func (r *HttpResponse) CacheStatus(status HitOrMiss) {
	r.headerSet(XCache, status.String())
}

// CacheLookupStatus overwrites the x-cache-lookup header.
func (r *HttpResponse) CacheLookupStatus(status HitOrMiss) {
	r.headerSet(XCacheLookup, status.String())
}

// httpDate formats t per RFC 7231 (the format used by the standard HTTP Date header).
func httpDate(t time.Time) string {
	return t.UTC().Format("Mon, 02 Jan 2006 15:04:05 GMT")
}
