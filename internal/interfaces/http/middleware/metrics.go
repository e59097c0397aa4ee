package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/CarePath-Insight/internal/infrastructure/monitoring/prometheus"
)

// MetricsMiddleware instruments every request with the HTTP server metrics.
type MetricsMiddleware struct {
	metrics *prometheus.HTTPMetrics
}

// NewMetricsMiddleware constructs the middleware around m.
func NewMetricsMiddleware(m *prometheus.HTTPMetrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Handler wraps next with request counting, latency, and inflight tracking.
// The route label uses the chi route pattern so path parameters do not blow
// up the label cardinality.
func (m *MetricsMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dec := m.metrics.IncInflight()
		defer dec()

		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		m.metrics.ObserveRequest(r.Method, route, strconv.Itoa(ww.Status()), time.Since(start))
	})
}
