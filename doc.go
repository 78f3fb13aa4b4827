// Package httpcache implements a transport-agnostic HTTP cache decision engine that
// enforces RFC 7234/9111 caching semantics on behalf of HTTP client middlewares.
//
// The engine itself never opens a socket, parses wire bytes, or authenticates a
// request; it translates (request metadata, cache store contents, cache mode, policy
// evaluation) into a sequence of Action/Fetch/Stage values for a client-specific
// adapter to execute. See package transport for a reference net/http adapter, and
// packages ristretto, diskcache, rediscache and memcache for reference CacheManager
// backends.
package httpcache

import "go.cachekit.dev/httpcache/policy"

// RequestParts is the canonical request shape consumed by the engine and the policy
// adapter: method, absolute URL and headers. Aliased from package policy so adapter
// authors only need to import this package.
type RequestParts = policy.RequestParts

// ResponseParts is the canonical response shape consumed by the policy adapter.
type ResponseParts = policy.ResponseParts

// CachePolicy is the RFC 9111 freshness/validator record produced by the policy
// adapter and persisted alongside the response envelope.
type CachePolicy = policy.CachePolicy

// CacheOptions controls shared-cache behavior, heuristic freshness and cache-control
// strictness. Forwarded verbatim to the policy adapter.
type CacheOptions = policy.CacheOptions

// Header is the case-insensitive name -> value header map used throughout the engine.
type Header = policy.Header
