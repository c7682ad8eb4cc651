package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/libaas-tailors/api/internal/config"
	"github.com/libaas-tailors/api/internal/handler"
	"github.com/libaas-tailors/api/internal/notify"
	"github.com/libaas-tailors/api/internal/upstream"
)

// New creates a Chi router with all application routes wired up.
func New(cfg *config.Config, client *upstream.Client, hub *notify.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// WebSocket subscription to per-order update notifications
	r.Get("/ws/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		notify.ServeWS(hub, w, r)
	})

	orderHandler := handler.NewOrderViewHandler(client, client, hub)
	r.Route("/orders", orderHandler.RegisterRoutes)

	return r
}
