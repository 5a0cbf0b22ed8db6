package api

import (
	"context"
	"net/http"

	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/pkg/httputil"
	"github.com/animesh7kgp-pixel/growifyx-mvp/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type contextKey string

const sessionKey contextKey = "growifyx.session"

// sessionFrom returns the request's session. Only valid inside handlers
// mounted under the session middleware.
func sessionFrom(ctx context.Context) *session.Session {
	return ctx.Value(sessionKey).(*session.Session)
}

// requireSession resolves the session cookie and rejects requests without a
// live session.
func requireSession(sessions *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := sessions.FromRequest(r)
			if !ok {
				httputil.Unauthorized(w, "login required")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
		})
	}
}

// SetupRoutes configures the router: health and auth are open, everything
// under /api requires a session.
func SetupRoutes(h *Handlers, sessions *session.Manager) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	// CORS allows credentials so the session cookie travels with UI requests
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://app.growifyx.io", "http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", h.HealthCheck)

	r.Post("/auth/register", h.Register)
	r.Post("/auth/login", h.Login)
	r.Post("/auth/logout", h.Logout)

	r.Route("/api", func(r chi.Router) {
		r.Use(requireSession(sessions))

		r.Get("/dashboard", h.Dashboard)
		r.Post("/ingest", h.Ingest)

		r.Post("/insights", h.Analyze)
		r.Get("/insights", h.Insights)
		r.Post("/insights/draft", h.Draft)

		r.Post("/campaigns/deploy", h.Deploy)
	})

	return r
}
