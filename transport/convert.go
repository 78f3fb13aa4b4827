// Package transport provides a reference net/http adapter driving the decision engine:
// an http.RoundTripper that converts to/from the engine's canonical RequestParts and
// HttpResponse types and performs the actual network I/O on its behalf.
package transport

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"go.cachekit.dev/httpcache"
	"go.cachekit.dev/httpcache/policy"
)

// requestPartsFromHTTP builds policy.RequestParts from an outgoing *http.Request.
func requestPartsFromHTTP(req *http.Request) policy.RequestParts {
	return policy.RequestParts{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: headerFromHTTP(req.Header),
	}
}

// applyRequestHeaders copies h onto req's outgoing headers, used when the engine asks
// the adapter to inject conditional-request validators (If-None-Match, etc.) before a
// revalidation fetch.
func applyRequestHeaders(req *http.Request, h policy.Header) {
	for name, value := range h {
		req.Header.Set(name, value)
	}
}

// httpResponseFromHTTP drains resp's body and converts it to the canonical envelope.
// resp.Body is closed by this call, matching http.RoundTripper's contract that the
// caller of RoundTrip owns the body afterward only via the returned *http.Response.
func httpResponseFromHTTP(resp *http.Response, rawURL string) (httpcache.HttpResponse, error) {
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return httpcache.HttpResponse{}, err
	}

	version, err := httpcache.VersionFromProto(resp.Proto, resp.ProtoMajor, resp.ProtoMinor)
	if err != nil {
		return httpcache.HttpResponse{}, err
	}

	res := httpcache.NewHttpResponse(body, headerFromHTTP(resp.Header), resp.StatusCode, rawURL, version)
	// A fresh network response has no cache-status opinion yet: pre-set MISS/MISS so the
	// envelope always carries both headers (spec §3), same as DefaultHttpResponse.
	res.CacheStatus(httpcache.Miss)
	res.CacheLookupStatus(httpcache.Miss)
	return res, nil
}

// responseToHTTP rebuilds an *http.Response from the canonical envelope, suitable for
// returning from RoundTrip. req is attached to the result per http.Response convention.
func responseToHTTP(res httpcache.HttpResponse, req *http.Request) *http.Response {
	header := make(http.Header, len(res.Headers))
	for name, value := range res.Headers {
		header.Set(name, value)
	}

	proto, major, minor := res.Version.Proto()
	body := res.Body
	if body == nil {
		body = []byte{}
	}

	return &http.Response{
		Status:        fmt.Sprintf("%d %s", res.Status, http.StatusText(res.Status)),
		StatusCode:    res.Status,
		Proto:         proto,
		ProtoMajor:    major,
		ProtoMinor:    minor,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
	}
}

// headerFromHTTP flattens an http.Header into a policy.Header, joining multi-valued
// headers with ", " per RFC 9110 §5.3.
func headerFromHTTP(h http.Header) policy.Header {
	out := policy.NewHeader()
	for name, values := range h {
		out.Set(name, strings.Join(values, ", "))
	}
	return out
}
