package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus metrics for the portal API.
type Collector struct {
	registry         *prometheus.Registry
	backendRequests  *prometheus.CounterVec
	backendDuration  *prometheus.HistogramVec
	backendRetries   *prometheus.CounterVec
	readFallbacks    *prometheus.CounterVec
	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	snapshotRuns     *prometheus.CounterVec
	snapshotDuration prometheus.Histogram
}

// New creates a collector backed by its own registry, so several instances can coexist in tests.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		backendRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_backend_requests_total",
				Help: "Requests sent to the content backend by collection, method and status code",
			},
			[]string{"collection", "method", "status"},
		),
		backendDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portal_backend_request_duration_seconds",
				Help:    "Latency of content backend requests in seconds",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12),
			},
			[]string{"collection", "method"},
		),
		backendRetries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_backend_retries_total",
				Help: "Retried content backend requests by collection",
			},
			[]string{"collection"},
		),
		readFallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_backend_fallbacks_total",
				Help: "Reads that degraded to an empty result by collection",
			},
			[]string{"collection"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_http_requests_total",
				Help: "Served HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "portal_http_request_duration_seconds",
				Help:    "Latency of served HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		snapshotRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_snapshot_runs_total",
				Help: "Dashboard snapshot job runs by outcome",
			},
			[]string{"outcome"},
		),
		snapshotDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "portal_snapshot_duration_seconds",
				Help:    "Duration of dashboard snapshot job runs in seconds",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
			},
		),
	}

	c.registry.MustRegister(
		c.backendRequests,
		c.backendDuration,
		c.backendRetries,
		c.readFallbacks,
		c.httpRequests,
		c.httpDuration,
		c.snapshotRuns,
		c.snapshotDuration,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return c
}

// Registry exposes the underlying registry for tests and custom exporters.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// BackendRequest records one completed backend call. status is 0 for transport errors.
func (c *Collector) BackendRequest(collection, method string, status int, d time.Duration) {
	c.backendRequests.WithLabelValues(collection, method, statusLabel(status)).Inc()
	c.backendDuration.WithLabelValues(collection, method).Observe(d.Seconds())
}

// BackendRetry counts a retry of a backend call.
func (c *Collector) BackendRetry(collection string) {
	c.backendRetries.WithLabelValues(collection).Inc()
}

// ReadFallback counts a read that returned an empty result instead of an error.
func (c *Collector) ReadFallback(collection string) {
	c.readFallbacks.WithLabelValues(collection).Inc()
}

// HTTPRequest records a served request.
func (c *Collector) HTTPRequest(method, route string, status int, d time.Duration) {
	c.httpRequests.WithLabelValues(method, route, statusLabel(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// SnapshotRun records a dashboard snapshot job run.
func (c *Collector) SnapshotRun(ok bool, d time.Duration) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	c.snapshotRuns.WithLabelValues(outcome).Inc()
	c.snapshotDuration.Observe(d.Seconds())
}

func statusLabel(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status)
}
