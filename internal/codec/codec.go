// Package codec implements the shared wire format every reference CacheManager
// backend uses to persist a (response, policy) pair: gob encoding of a small envelope
// struct. Using one codec across ristretto, diskcache, rediscache and memcache keeps
// their on-disk/over-the-wire bytes interchangeable and their Get/Put implementations
// a few lines each.
package codec

import (
	"bytes"
	"encoding/gob"
	"fmt"

	"go.cachekit.dev/httpcache"
	"go.cachekit.dev/httpcache/policy"
)

// Entry is the serializable pair stored by every backend.
type Entry struct {
	Response httpcache.HttpResponse
	Policy   policy.CachePolicy
}

// Marshal gob-encodes an Entry.
func Marshal(res httpcache.HttpResponse, pol policy.CachePolicy) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(Entry{Response: res, Policy: pol}); err != nil {
		return nil, fmt.Errorf("codec: marshal entry: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal gob-decodes an Entry back into its response and policy.
func Unmarshal(data []byte) (httpcache.HttpResponse, policy.CachePolicy, error) {
	var e Entry
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&e); err != nil {
		return httpcache.HttpResponse{}, policy.CachePolicy{}, fmt.Errorf("codec: unmarshal entry: %w", err)
	}
	return e.Response, e.Policy, nil
}
