package api

import (
	"context"
	"net/http"
	"time"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/session"
)

// Server is the HTTP front of the dashboard.
type Server struct {
	handler http.Handler
	server  *http.Server
}

// NewServer assembles the router around the wired handlers.
func NewServer(h *Handlers, sessions *session.Manager) *Server {
	return &Server{handler: SetupRoutes(h, sessions)}
}

// ListenAndServe starts the HTTP server on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		// Deploys and inference calls block the response; give them room.
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.handler
}
