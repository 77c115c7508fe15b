// Package api serves the sorter over HTTP.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/piwi3910/ShelfSort/internal/config"
	"github.com/piwi3910/ShelfSort/internal/model"
	"github.com/piwi3910/ShelfSort/pkg/logger"
)

// Server holds the state shared by the HTTP handlers.
type Server struct {
	log       *logger.Logger
	inventory model.Inventory
	version   string
	started   time.Time
}

// Option configures the router.
type Option func(*Server)

// WithInventory sets the shelf presets requests can refer to by name or ID.
func WithInventory(inv model.Inventory) Option {
	return func(s *Server) {
		s.inventory = inv
	}
}

// WithVersion sets the version reported by the health check.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// NewRouter builds the HTTP handler with its middleware stack. Middleware
// runs in the order it is added.
func NewRouter(cfg config.ServerConfig, log *logger.Logger, opts ...Option) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	s := &Server{
		log:       log.Named("api"),
		inventory: model.DefaultInventory(),
		version:   "dev",
		started:   time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()

	// Forwarding headers are only honoured behind a proxy that sets them,
	// otherwise clients could pick their own rate limit key.
	if cfg.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(RequestID)
	r.Use(Logger(s.log))
	r.Use(Recoverer(s.log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))
	if cfg.RequestsPerSecond > 0 {
		r.Use(RateLimiter(RateLimiterConfig{
			RequestsPerSecond: cfg.RequestsPerSecond,
			Burst:             cfg.Burst,
		}))
	}
	r.Use(SecureHeaders)
	r.Use(MaxBodySize(cfg.MaxRequestSize))
	r.Use(ContentTypeJSON)

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/presets", s.handlePresets)
		r.Post("/sort", s.handleSort)
		r.Post("/compare", s.handleCompare)
	})

	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(methodNotAllowedHandler)

	return r
}
