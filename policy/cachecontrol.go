package policy

import (
	"strconv"
	"strings"
)

// directives is a parsed Cache-Control header: directive name -> value (empty string
// for valueless directives such as no-cache or must-revalidate).
//
// Grounded on _examples/sandrolain-httpcache/cachecontrol.go's parseCacheControl, kept
// to the directives the freshness/storability algorithms below actually consume.
type directives map[string]string

func parseCacheControl(h Header) directives {
	cc := directives{}
	raw := h.Get("cache-control")
	if raw == "" {
		return cc
	}

	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		var name, value string
		if idx := strings.IndexByte(part, '='); idx >= 0 {
			name = strings.TrimSpace(part[:idx])
			value = strings.Trim(strings.TrimSpace(part[idx+1:]), `"`)
		} else {
			name = part
		}
		name = strings.ToLower(name)

		// RFC 9111 §4.2.1: on duplicate directives, the first occurrence wins.
		if _, seen := cc[name]; seen {
			continue
		}
		cc[name] = value
	}

	return cc
}

func (d directives) has(name string) bool {
	_, ok := d[name]
	return ok
}

// seconds returns the non-negative integer value of a directive such as max-age or
// stale-while-revalidate. A missing, malformed or negative value reports ok == false.
func (d directives) seconds(name string) (n int64, ok bool) {
	v, present := d[name]
	if !present {
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// understoodStatusCodes are the response status codes this cache comprehends for the
// purposes of the must-understand directive (RFC 9111 §5.2.2.3).
//
// Grounded on _examples/rotationalio-httpcache/httpcache.go's understoodStatusCodes.
var understoodStatusCodes = map[int]bool{
	200: true, // OK
	203: true, // Non-Authoritative Information
	204: true, // No Content
	206: true, // Partial Content
	300: true, // Multiple Choices
	301: true, // Moved Permanently
	404: true, // Not Found
	405: true, // Method Not Allowed
	410: true, // Gone
	414: true, // URI Too Long
	501: true, // Not Implemented
}
