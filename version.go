package httpcache

import (
	"fmt"
)

// HttpVersion is a closed enumeration of the HTTP protocol versions the engine
// understands. It is carried on HttpResponse so that cached entries round-trip the
// exact version they were received over.
type HttpVersion uint8

const (
	// Http09 is HTTP/0.9.
	Http09 HttpVersion = iota
	// Http10 is HTTP/1.0.
	Http10
	// Http11 is HTTP/1.1.
	Http11
	// H2 is HTTP/2.
	H2
	// H3 is HTTP/3.
	H3
)

// String implements fmt.Stringer.
func (v HttpVersion) String() string {
	switch v {
	case Http09:
		return "HTTP/0.9"
	case Http10:
		return "HTTP/1.0"
	case Http11:
		return "HTTP/1.1"
	case H2:
		return "HTTP/2.0"
	case H3:
		return "HTTP/3.0"
	default:
		return "HTTP/unknown"
	}
}

// VersionFromProto converts an *http.Response's Proto/ProtoMajor/ProtoMinor fields
// into an HttpVersion, returning BadVersion if the combination is not recognized.
func VersionFromProto(proto string, major, minor int) (HttpVersion, error) {
	switch {
	case major == 0 && minor == 9:
		return Http09, nil
	case major == 1 && minor == 0:
		return Http10, nil
	case major == 1 && minor == 1:
		return Http11, nil
	case major == 2:
		return H2, nil
	case major == 3:
		return H3, nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrBadVersion, proto)
	}
}

// Proto returns the net/http-style proto string and major/minor pair for the version,
// suitable for assigning back onto an *http.Response.
func (v HttpVersion) Proto() (proto string, major, minor int) {
	switch v {
	case Http09:
		return "HTTP/0.9", 0, 9
	case Http10:
		return "HTTP/1.0", 1, 0
	case Http11:
		return "HTTP/1.1", 1, 1
	case H2:
		return "HTTP/2.0", 2, 0
	case H3:
		return "HTTP/3.0", 3, 0
	default:
		return "HTTP/1.1", 1, 1
	}
}
