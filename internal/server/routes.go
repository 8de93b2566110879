// -----------------------------------------------------------------------
// Last Modified: Thursday, 9th October 2025 8:53:55 am
// Modified By: Bob McAllan
// -----------------------------------------------------------------------

package server

import (
	"net/http"

	"github.com/ternarybob/wakeru/internal/handlers"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/wakeru", s.wakeruHandler.Tokenize)
	mux.HandleFunc("/health", handlers.HealthHandler)
	mux.HandleFunc("/api/shutdown", s.ShutdownHandler)

	return mux
}
