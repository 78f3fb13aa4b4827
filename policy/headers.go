// Package policy implements the RFC 9111 (HTTP Caching) evaluator consumed by the
// decision engine as a black box: it builds a CachePolicy from request/response parts,
// judges storability, and computes freshness/revalidation outcomes. The engine never
// re-derives any of this logic itself (spec §4.3, §9).
package policy

import "strings"

// Header is a case-insensitive name -> value map, mirroring the envelope's header
// representation: multi-valued headers are expected to already be collapsed to a
// single comma-joined string by the caller.
type Header map[string]string

// NewHeader builds a Header, canonicalizing every key to lower-case.
func NewHeader() Header {
	return Header{}
}

// Get returns the value for name, case-insensitively, or "" if absent.
func (h Header) Get(name string) string {
	if h == nil {
		return ""
	}
	return h[strings.ToLower(name)]
}

// Set stores value under the lower-cased name.
func (h Header) Set(name, value string) {
	h[strings.ToLower(name)] = value
}

// Del removes name, case-insensitively.
func (h Header) Del(name string) {
	delete(h, strings.ToLower(name))
}

// Clone returns a shallow copy of h.
func (h Header) Clone() Header {
	out := make(Header, len(h))
	for k, v := range h {
		out[k] = v
	}
	return out
}

// RequestParts is the canonical request shape the policy adapter consumes: method,
// absolute URL, and headers. It deliberately avoids any net/http dependency so the
// policy package stays a leaf that adapters (and the engine) can build without
// importing a specific transport's types.
type RequestParts struct {
	Method string
	URL    string
	Header Header
}

// ResponseParts is the canonical response shape the policy adapter consumes: status
// code and headers.
type ResponseParts struct {
	Status int
	Header Header
}
