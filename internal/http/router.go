package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"dashscribe/internal/handlers"
	"dashscribe/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Store     storage.QueryStore
	IndexHTML string // Served at "/" when set
}

// NewRouter creates a new HTTP router with the provided dependencies.
// Every route is read-only.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/search", handlers.NewSearchHandler(deps.Store))
		r.Method(http.MethodGet, "/videos/{id}", handlers.NewVideoHandler(deps.Store))
		r.Method(http.MethodGet, "/videos/{id}/gps", handlers.NewGPSHandler(deps.Store))
		r.Method(http.MethodGet, "/segments/{id}/thumbnail", handlers.NewThumbnailHandler(deps.Store))
		r.Method(http.MethodGet, "/stats", handlers.NewStatsHandler(deps.Store))
		r.Handle("/health", handlers.NewHealthHandler(deps.Store))
	})

	r.Method(http.MethodGet, "/videos/{id}/transcript", handlers.NewTranscriptHandler(deps.Store))

	if deps.IndexHTML != "" {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(deps.IndexHTML))
		})
	}

	return r
}
