package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// Options configures the router.
type Options struct {
	// AllowedOrigins are the form UI origins permitted by CORS.
	AllowedOrigins []string
	// RateLimit is requests per RateWindow per client IP; 0 disables limiting.
	RateLimit  int
	RateWindow time.Duration
	// RequestLog enables chi's request logger.
	RequestLog bool
}

// DefaultOptions suits a local form UI.
func DefaultOptions() Options {
	return Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		RateLimit:      120,
		RateWindow:     time.Minute,
		RequestLog:     true,
	}
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts Options) *chi.Mux {
	r := chi.NewRouter()

	if opts.RequestLog {
		r.Use(middleware.Logger)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", h.Health)

	r.Route("/api", func(r chi.Router) {
		if opts.RateLimit > 0 {
			r.Use(httprate.Limit(opts.RateLimit, opts.RateWindow, httprate.WithKeyFuncs(httprate.KeyByIP)))
		}
		r.Post("/progression", h.Progression)
		r.Post("/settlement", h.Settlement)
		r.Post("/pension-at", h.PensionAt)

		r.Route("/tables", func(r chi.Router) {
			r.Get("/", h.ListTables)
			r.Get("/resolve", h.ResolveTables)
		})
	})

	return r
}

// NewServer wraps the router in an http.Server with conservative timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
