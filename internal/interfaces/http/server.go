package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/turtacn/CarePath-Insight/internal/config"
	"github.com/turtacn/CarePath-Insight/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/CarePath-Insight/pkg/errors"
)

// Server wraps http.Server with configured timeouts and graceful shutdown.
type Server struct {
	httpServer *http.Server
	cfg        config.ServerConfig
	logger     logging.Logger
}

// NewServer constructs a Server around the given handler.
func NewServer(cfg config.ServerConfig, handler http.Handler, logger logging.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
		cfg:    cfg,
		logger: logger.Named("http.server"),
	}
}

// Start serves until the listener fails or Shutdown is called.  It returns
// nil on a clean shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server listening",
		logging.String("addr", s.httpServer.Addr),
		logging.String("mode", s.cfg.Mode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, errors.ErrCodeInternal, "http server failed")
	}
	return nil
}

// Shutdown drains in-flight requests within the configured grace period.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("http server shutting down")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "http server shutdown failed")
	}
	return nil
}
