// -----------------------------------------------------------------------
// Last Modified: Wednesday, 8th October 2025 5:36:23 pm
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/wakeru/internal/common"
	"github.com/ternarybob/wakeru/internal/handlers"
	"github.com/ternarybob/wakeru/internal/wakeru"
)

// Server manages the HTTP server and routes exposing the tokenizer
// subsystem over POST /wakeru plus a liveness probe.
type Server struct {
	config        *common.Config
	logger        arbor.ILogger
	wakeruHandler *handlers.WakeruHandler
	router        *http.ServeMux
	server        *http.Server
	shutdownChan  chan struct{}
}

// New creates a new HTTP server bound to an initialized wakeru
// Service. service.JapaneseTokenizer() must be non-nil: the tokenize
// endpoint has nothing to serve otherwise, matching the original
// wakeru-api binary always initializing a Japanese dictionary.
func New(config *common.Config, logger arbor.ILogger, service *wakeru.Service) *Server {
	s := &Server{
		config:        config,
		logger:        logger,
		wakeruHandler: handlers.NewWakeruHandler(service.JapaneseTokenizer(), logger),
	}

	s.router = s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.withMiddleware(s.router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// SetShutdownChannel sets the channel that will be signaled when HTTP shutdown is requested.
func (s *Server) SetShutdownChannel(ch chan struct{}) {
	s.shutdownChan = ch
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.logger.Info().
		Str("address", addr).
		Msg("HTTP server starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server...")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// ShutdownHandler handles HTTP shutdown requests (dev mode only).
func (s *Server) ShutdownHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.logger.Info().Msg("Shutdown requested via HTTP endpoint")

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Shutting down gracefully...\n"))

	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}

	if s.shutdownChan != nil {
		common.SafeGo(s.logger, "httpShutdownSignal", func() {
			time.Sleep(100 * time.Millisecond)
			s.shutdownChan <- struct{}{}
		})
	}
}
