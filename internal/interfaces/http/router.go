// Package http wires the HTTP surface: router, middleware stack, and server
// lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/turtacn/CarePath-Insight/internal/infrastructure/monitoring/logging"
	promx "github.com/turtacn/CarePath-Insight/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/CarePath-Insight/internal/interfaces/http/handlers"
	"github.com/turtacn/CarePath-Insight/internal/interfaces/http/middleware"
)

// RouterConfig collects everything the router needs.
type RouterConfig struct {
	NoteHandler     *handlers.NoteHandler
	AnalysisHandler *handlers.AnalysisHandler
	HealthHandler   *handlers.HealthHandler

	HTTPMetrics    *promx.HTTPMetrics
	MetricsHandler http.Handler
	AllowedOrigins []string

	Logger logging.Logger
}

// NewRouter builds the chi router with the full middleware stack and all
// API routes mounted under /api/v1.
func NewRouter(cfg *RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Handler)
	r.Use(middleware.NewCORSMiddleware(cfg.AllowedOrigins).Handler)
	if cfg.HTTPMetrics != nil {
		r.Use(middleware.NewMetricsMiddleware(cfg.HTTPMetrics).Handler)
	}

	// Probes and metrics sit outside the API prefix.
	r.Get("/healthz", cfg.HealthHandler.Liveness)
	r.Get("/readyz", cfg.HealthHandler.Readiness)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/analyze", cfg.AnalysisHandler.Analyze)

		api.Route("/notes", func(notes chi.Router) {
			notes.Post("/", cfg.NoteHandler.Submit)
			notes.Get("/", cfg.NoteHandler.List)

			notes.Route("/{noteID}", func(note chi.Router) {
				note.Get("/", cfg.NoteHandler.Get)
				note.Delete("/", cfg.NoteHandler.Delete)
				note.Get("/analysis", cfg.NoteHandler.Analysis)
				note.Get("/readiness", cfg.NoteHandler.Readiness)
				note.Get("/risk", cfg.NoteHandler.Risk)
				note.Get("/logistics", cfg.NoteHandler.Logistics)
				note.Post("/reanalyze", cfg.NoteHandler.Reanalyze)
				note.Get("/report", cfg.AnalysisHandler.Report)
			})
		})
	})

	return r
}
