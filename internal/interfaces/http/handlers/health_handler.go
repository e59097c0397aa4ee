package handlers

import (
	"context"
	"net/http"
	"time"
)

// Pinger is anything with a health check: the database connection, the Redis
// client, and so on.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	dependencies map[string]Pinger
}

// NewHealthHandler constructs a HealthHandler over named dependencies.
// Dependencies may be nil-valued entries; those are skipped.
func NewHealthHandler(dependencies map[string]Pinger) *HealthHandler {
	return &HealthHandler{dependencies: dependencies}
}

// Liveness always reports OK while the process is able to serve.
func (h *HealthHandler) Liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Readiness pings every registered dependency and reports per-dependency
// status.  Any failure yields 503 so load balancers stop routing here.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := map[string]string{}
	for name, dep := range h.dependencies {
		if dep == nil {
			continue
		}
		if err := dep.HealthCheck(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			checks[name] = "ok"
		}
	}

	writeJSON(w, status, map[string]interface{}{
		"status": http.StatusText(status),
		"checks": checks,
	})
}
