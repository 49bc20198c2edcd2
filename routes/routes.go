package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/moltbot-gateway/app"
	"github.com/upb/moltbot-gateway/config"
	"github.com/upb/moltbot-gateway/handlers"
	"github.com/upb/moltbot-gateway/middleware"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))

	origins := deps.Config.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = config.DefaultAllowedOrigins
	}
	// The admin routes accept the Access cookie, so no origin may send
	// credentials cross-origin.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health check endpoints
	r.Get("/healthz", handlers.HealthCheck(deps))
	r.Get("/readyz", handlers.ReadinessCheck(deps))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/status", handlers.StatusHandler(deps))
	})

	// Admin routes behind Cloudflare Access
	r.Route("/debug", func(r chi.Router) {
		r.Use(deps.AccessMiddleware.RequireAccess)
		r.Get("/env", handlers.DebugEnvHandler(deps))
		r.Get("/env/keys", handlers.DebugKeysHandler(deps))
		r.Get("/env/dotenv", handlers.DebugDotenvHandler(deps))
	})

	// 404 handler
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"endpoint not found"}`))
	})

	return r
}
