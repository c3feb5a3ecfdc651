// Package webui serves the browser front end: a single-page prompt form
// plus the JSON API it talks to, the generated-image files and a health
// endpoint.
package webui

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"dreamforge/generation"
	"dreamforge/metrics"
	"dreamforge/store"
	"dreamforge/styles"
)

// Generator runs one generation request. Satisfied by *generation.Service.
type Generator interface {
	Generate(ctx context.Context, req generation.GenerationRequest) (*generation.Result, error)
}

// History reads the generation index. Satisfied by *db.Repository; nil
// disables the recent-generations endpoint.
type History interface {
	QueryRecent(ctx context.Context, limit int) ([]store.Record, error)
	Count(ctx context.Context) (int64, error)
}

// StylePreset is the catalog entry shape the UI consumes.
type StylePreset struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	// Host to bind to (default: "localhost")
	Host string
	// Port to listen on (default: 8080)
	Port int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	// ShutdownTimeout bounds graceful shutdown
	ShutdownTimeout time.Duration

	// OutputsDir is served read-only under /outputs/ so the gallery can
	// link to full-size images; empty disables it
	OutputsDir string
}

// DefaultServerConfig returns defaults tuned for a local single-user UI.
// WriteTimeout is generous because a generate request holds the
// connection open for the whole queue wait plus inference.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:            "localhost",
		Port:            8080,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    10 * time.Minute,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Server wires the API handlers, middleware and static serving into one
// http.Server.
type Server struct {
	httpServer *http.Server
	config     ServerConfig
	logger     *zap.Logger

	generator Generator
	catalog   *styles.Catalog
	history   History
	collector *metrics.Collector
}

// NewServer builds a Server. history and collector may be nil; the
// corresponding endpoints then report empty data.
func NewServer(config ServerConfig, generator Generator, catalog *styles.Catalog, history History, collector *metrics.Collector, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		config:    config,
		logger:    logger,
		generator: generator,
		catalog:   catalog,
		history:   history,
		collector: collector,
	}

	mux := http.NewServeMux()
	s.routes(mux)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      s.withRequestLogging(mux),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/generate", s.handleGenerate)
	mux.HandleFunc("/api/styles", s.handleStyles)
	mux.HandleFunc("/api/recent", s.handleRecent)
	mux.HandleFunc("/api/stats", s.handleStats)

	if s.config.OutputsDir != "" {
		fs := http.FileServer(http.Dir(s.config.OutputsDir))
		mux.Handle("/outputs/", http.StripPrefix("/outputs/", fs))
	}
}

// Handler exposes the full middleware-wrapped handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start listens and serves until Shutdown. http.ErrServerClosed is
// swallowed so a graceful stop reads as a clean return.
func (s *Server) Start() error {
	s.logger.Info("Web UI listening", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("webui: server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := s.config.ShutdownTimeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.logger.Info("Shutting down web UI")
	return s.httpServer.Shutdown(ctx)
}
