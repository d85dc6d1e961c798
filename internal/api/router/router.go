// Package router assembles the HTTP surface of the intake API.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/carebridge/intake-ai-platform/internal/http/handlers"
	httpmiddleware "github.com/carebridge/intake-ai-platform/internal/http/middleware"
	"github.com/carebridge/intake-ai-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	IntakeHandler      *handlers.IntakeHandler
	ToolsHandler       *handlers.ToolsHandler
	SpecialistsHandler *handlers.SpecialistsHandler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", handlers.HealthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.SpecialistsHandler != nil {
		r.Get("/specialists", cfg.SpecialistsHandler.List)
	}

	if cfg.IntakeHandler != nil {
		r.Route("/intake/sessions", func(r chi.Router) {
			r.With(httpmiddleware.RateLimit(5, 20)).Post("/", cfg.IntakeHandler.Start)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Post("/messages", cfg.IntakeHandler.Message)
				r.Post("/schedule", cfg.IntakeHandler.Schedule)
				r.Post("/confirm", cfg.IntakeHandler.Confirm)
			})
		})
	}

	if cfg.ToolsHandler != nil {
		r.Post("/tools/execute", cfg.ToolsHandler.Execute)
	}

	return r
}
