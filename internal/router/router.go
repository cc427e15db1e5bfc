package router

import (
	"net/http"

	"github.com/ai-kiosk/api/internal/catalog"
	"github.com/ai-kiosk/api/internal/config"
	"github.com/ai-kiosk/api/internal/handler"
	mw "github.com/ai-kiosk/api/internal/middleware"
	"github.com/ai-kiosk/api/internal/session"
	"github.com/ai-kiosk/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// New creates a Chi router with all kiosk routes wired up.
func New(cfg *config.Config, cat *catalog.Catalog, proc handler.Processor, sessions session.Store, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/sessions/{sid}/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	commandHandler := handler.NewCommandHandler(proc)
	storeHandler := handler.NewStoreHandler(cat)
	sessionHandler := handler.NewSessionHandler(proc, sessions, hub, cfg.JWTSecret)

	r.Route("/api", func(r chi.Router) {
		// Stateless turn endpoint: the client carries the snapshot.
		r.Route("/process-command", commandHandler.RegisterRoutes)

		// Catalog browsing for the kiosk UI.
		r.Route("/stores", storeHandler.RegisterRoutes)

		// Server-held sessions.
		r.Post("/sessions", sessionHandler.Create)
		r.Route("/sessions/{sid}", func(r chi.Router) {
			r.Use(mw.Authenticate(cfg.JWTSecret))
			r.Use(mw.RequireSession)
			sessionHandler.RegisterRoutes(r)
		})
	})

	return r
}
