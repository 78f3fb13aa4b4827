// Package metrics provides a Prometheus-instrumented httpcache.CacheManager
// decorator built on github.com/prometheus/client_golang.
package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"go.cachekit.dev/httpcache"
	"go.cachekit.dev/httpcache/policy"
)

const (
	resultHit   = "hit"
	resultMiss  = "miss"
	resultOK    = "ok"
	resultError = "error"
)

// Config configures the metrics Prometheus registration.
type Config struct {
	// Registry is the Prometheus registry to register with. Defaults to
	// prometheus.DefaultRegisterer.
	Registry prometheus.Registerer
	// Namespace for the registered metrics. Defaults to "httpcache".
	Namespace string
	// Backend names the wrapped CacheManager for the "cache_backend" label, e.g.
	// "ristretto", "disk", "redis", "memcache".
	Backend string
}

// Cache wraps an httpcache.CacheManager, recording Prometheus metrics for every
// Get/Put/Delete call.
type Cache struct {
	underlying httpcache.CacheManager
	backend    string

	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

var _ httpcache.CacheManager = (*Cache)(nil)

// New wraps manager with Prometheus instrumentation per config.
func New(manager httpcache.CacheManager, config Config) *Cache {
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}
	if config.Namespace == "" {
		config.Namespace = "httpcache"
	}

	factory := promauto.With(config.Registry)

	return &Cache{
		underlying: manager,
		backend:    config.Backend,
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: config.Namespace,
			Name:      "cache_requests_total",
			Help:      "Total number of cache manager operations.",
		}, []string{"operation", "cache_backend", "result"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: config.Namespace,
			Name:      "cache_operation_duration_seconds",
			Help:      "Duration of cache manager operations in seconds.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1, 5},
		}, []string{"operation", "cache_backend"}),
	}
}

func (c *Cache) record(operation, result string, start time.Time) {
	c.requests.WithLabelValues(operation, c.backend, result).Inc()
	c.duration.WithLabelValues(operation, c.backend).Observe(time.Since(start).Seconds())
}

// Get implements httpcache.CacheManager.
func (c *Cache) Get(ctx context.Context, method, url string) (httpcache.HttpResponse, policy.CachePolicy, bool, error) {
	start := time.Now()
	res, pol, ok, err := c.underlying.Get(ctx, method, url)

	result := resultMiss
	switch {
	case err != nil:
		result = resultError
	case ok:
		result = resultHit
	}
	c.record("get", result, start)

	return res, pol, ok, err
}

// Put implements httpcache.CacheManager.
func (c *Cache) Put(ctx context.Context, method, url string, res httpcache.HttpResponse, pol policy.CachePolicy) error {
	start := time.Now()
	err := c.underlying.Put(ctx, method, url, res, pol)

	result := resultOK
	if err != nil {
		result = resultError
	}
	c.record("put", result, start)

	return err
}

// Delete implements httpcache.CacheManager.
func (c *Cache) Delete(ctx context.Context, method, url string) error {
	start := time.Now()
	err := c.underlying.Delete(ctx, method, url)

	result := resultOK
	if err != nil {
		result = resultError
	}
	c.record("delete", result, start)

	return err
}
