package policy

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrNoDateHeader indicates the response carried no (or an unparsable) Date header.
var ErrNoDateHeader = errors.New("policy: no Date header")

// parseHTTPDate parses an RFC 7231 HTTP-date, trying the three legal formats in order.
func parseHTTPDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC1123, time.RFC850, time.ANSIC} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrNoDateHeader
}

func responseDate(h Header) (time.Time, error) {
	v := h.Get("date")
	if v == "" {
		return time.Time{}, ErrNoDateHeader
	}
	return parseHTTPDate(v)
}

// parseAge parses the Age response header (RFC 9111 §5.1): a non-negative integer
// number of seconds. An invalid value is ignored entirely, per the RFC.
func parseAge(h Header) (age time.Duration, ok bool) {
	v := strings.TrimSpace(h.Get("age"))
	if v == "" {
		return 0, false
	}
	seconds, err := strconv.ParseInt(v, 10, 64)
	if err != nil || seconds < 0 {
		return 0, false
	}
	return time.Duration(seconds) * time.Second, true
}

// currentAge implements the Age calculation of RFC 9111 §4.2.3, simplified to the
// single-hop case (no stored request_time/response_time trail): it adds the resident
// time since storedAt to ageAtStore, the age computed at store time (the larger of the
// Date-derived apparent age and any Age header value). The date argument is not used.
//
// Grounded on _examples/sandrolain-httpcache/age.go's calculateAge, trimmed to the
// fields the CachePolicy struct actually persists (date + initial age at store time).
func currentAge(date time.Time, ageAtStore time.Duration, storedAt, now time.Time) time.Duration {
	apparentAge := ageAtStore
	if now.Before(storedAt) {
		return apparentAge
	}
	residentTime := now.Sub(storedAt)
	return apparentAge + residentTime
}

// formatAge renders a duration as an Age header value in whole seconds.
func formatAge(age time.Duration) string {
	seconds := int64(age.Seconds())
	if seconds < 0 {
		seconds = 0
	}
	return strconv.FormatInt(seconds, 10)
}
