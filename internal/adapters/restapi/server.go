package restapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sechelper/internal/config"
	"sechelper/internal/core/domain/repository"
	"sechelper/internal/logger"
)

// Server wraps the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	logger     logger.AppLogger
}

// NewServer creates a new instance of the status server.
func NewServer(
	registry repository.AddressRegistry,
	gatherer prometheus.Gatherer,
	detector string,
	appLogger logger.AppLogger,
	cfg *config.ServerConfig,
) (*Server, error) {
	if gatherer == nil {
		return nil, errors.New("gatherer cannot be nil for Server")
	}
	if appLogger == nil {
		return nil, errors.New("logger cannot be nil for Server")
	}
	if cfg == nil {
		return nil, errors.New("config cannot be nil for Server")
	}

	serverLogger := appLogger.With(logger.KeyComponent, "restapi")
	h, err := NewHTTPHandler(registry, detector, serverLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize handler: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.Port,
		Handler:           NewRouter(h, gatherer),
		ReadTimeout:       time.Duration(cfg.ReadTimeoutSeconds) * time.Second,
		WriteTimeout:      time.Duration(cfg.WriteTimeoutSeconds) * time.Second,
		IdleTimeout:       time.Duration(cfg.IdleTimeoutSeconds) * time.Second,
		ReadHeaderTimeout: time.Duration(cfg.ReadHeaderTimeoutSeconds) * time.Second,
	}

	return &Server{
		httpServer: server,
		logger:     serverLogger,
	}, nil
}

// Start runs the HTTP server until Shutdown.
func (s *Server) Start() error {
	s.logger.Info("Status server starting", "address", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.logger.Error("Status server ListenAndServe error", logger.KeyError, err)
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down status server...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("Status server shutdown error", logger.KeyError, err)
		return err
	}
	s.logger.Info("Status server stopped gracefully.")
	return nil
}

// NewRouter registers the status endpoints.
func NewRouter(h *HTTPHandler, gatherer prometheus.Gatherer) *http.ServeMux {
	smux := http.NewServeMux()

	smux.HandleFunc("/health", h.HandleHealth)
	smux.HandleFunc("/registry/{category}", h.HandleRegistry)
	smux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return smux
}
