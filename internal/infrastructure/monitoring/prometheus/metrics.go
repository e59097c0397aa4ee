// Package prometheus registers and exposes the platform's Prometheus metrics.
// The NoteMetrics type satisfies the intelligence layer's metrics contract so
// extractors stay decoupled from the metrics backend.
package prometheus

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "carepath"

// NoteMetrics records analysis pipeline observations.
type NoteMetrics struct {
	analysisDuration *prometheus.HistogramVec
	gridSize         *prometheus.HistogramVec
	cacheHits        prometheus.Counter
	cacheMisses      prometheus.Counter
}

// NewNoteMetrics constructs and registers the pipeline metrics on reg.
// Passing nil registers on the default registerer.
func NewNoteMetrics(reg prometheus.Registerer) *NoteMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &NoteMetrics{
		analysisDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Wall time of one full note analysis.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"outcome"}),
		gridSize: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "grid_days",
			Help:      "Days covered by an extracted readiness or risk grid.",
			Buckets:   []float64{0, 1, 3, 7, 14, 30, 60, 180, 366},
		}, []string{"extractor"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "cache_hits_total",
			Help:      "Analysis results served from the fingerprint cache.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "cache_misses_total",
			Help:      "Analysis cache lookups that required recomputation.",
		}),
	}
	reg.MustRegister(m.analysisDuration, m.gridSize, m.cacheHits, m.cacheMisses)
	return m
}

// ObserveAnalysis records one pipeline run.
func (m *NoteMetrics) ObserveAnalysis(d time.Duration, succeeded bool) {
	outcome := "success"
	if !succeeded {
		outcome = "failure"
	}
	m.analysisDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// ObserveGridSize records the day span of one extracted grid.
func (m *NoteMetrics) ObserveGridSize(extractor string, days int) {
	m.gridSize.WithLabelValues(extractor).Observe(float64(days))
}

// IncCacheHit counts a fingerprint cache hit.
func (m *NoteMetrics) IncCacheHit() { m.cacheHits.Inc() }

// IncCacheMiss counts a fingerprint cache miss.
func (m *NoteMetrics) IncCacheMiss() { m.cacheMisses.Inc() }

// HTTPMetrics records HTTP server observations.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inflight prometheus.Gauge
}

// NewHTTPMetrics constructs and registers the HTTP metrics on reg.
func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route, and status class.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		inflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Requests currently being served.",
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.inflight)
	return m
}

// ObserveRequest records one completed request.
func (m *HTTPMetrics) ObserveRequest(method, route, status string, d time.Duration) {
	m.requests.WithLabelValues(method, route, status).Inc()
	m.duration.WithLabelValues(method, route).Observe(d.Seconds())
}

// IncInflight marks a request started; the returned func marks it finished.
func (m *HTTPMetrics) IncInflight() func() {
	m.inflight.Inc()
	return m.inflight.Dec
}

// Handler exposes the given registry over HTTP; a nil registry exposes the
// default one.
func Handler(reg *prometheus.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
