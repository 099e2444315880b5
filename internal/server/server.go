// Package server is the viewer-facing HTTP gateway. It serves the
// dashboard page, the snapshot endpoint, and the SSE event stream that
// relays broadcaster events to browsers and the watch TUI.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mirqab/mirqab/internal/config"
	"github.com/mirqab/mirqab/internal/errors"
	"github.com/mirqab/mirqab/internal/logger"
	"github.com/mirqab/mirqab/internal/monitor"
)

// shutdownTimeout bounds how long Run waits for in-flight requests once
// the context is cancelled.
const shutdownTimeout = 5 * time.Second

// Server is the viewer gateway. It never mutates training state; all
// writes go through the producer API on the monitor.
type Server struct {
	cfg     *config.Config
	mon     *monitor.Monitor
	log     logger.Logger
	engine  *gin.Engine
	started time.Time
}

// New builds the gateway around an existing monitor. The gin engine runs
// in release mode unless debug logging is on.
func New(cfg *config.Config, mon *monitor.Monitor, log logger.Logger) *Server {
	if log == nil {
		log = logger.Noop()
	}

	if cfg.Logging.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:     cfg,
		mon:     mon,
		log:     log,
		engine:  engine,
		started: time.Now(),
	}

	engine.GET("/", s.handleDashboard)
	api := engine.Group("/api")
	{
		api.GET("/status", s.handleStatus)
		api.GET("/events", s.handleEvents)
		api.GET("/health", s.handleHealth)
	}

	return s
}

// Engine exposes the router for httptest.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully. Viewers
// are detached first so their event streams end and in-flight SSE
// handlers can return within the shutdown window.
func (s *Server) Run(ctx context.Context) error {
	addr := s.cfg.Server.Addr()
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrTransport,
			fmt.Sprintf("Could not listen on %s", addr),
			"Is another mirqab running? Pick a different port with --port")
	}

	srv := &http.Server{Handler: s.engine}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			serveErr <- err
		}
	}()

	s.log.Info("Training monitor available at http://%s", addr)

	select {
	case err := <-serveErr:
		return errors.WrapWithCode(err, errors.ErrTransport,
			"Server stopped unexpectedly",
			"Check the log output above for the cause")
	case <-ctx.Done():
	}

	s.log.Info("Shutting down server...")
	s.mon.DetachAll()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.WrapWithCode(err, errors.ErrTransport,
			"Server did not shut down cleanly",
			"Viewers may have been disconnected abruptly")
	}
	return nil
}
