package router

import (
	"net/http"

	"github.com/dukapos/api/internal/cart"
	"github.com/dukapos/api/internal/catalog"
	"github.com/dukapos/api/internal/config"
	"github.com/dukapos/api/internal/engine"
	"github.com/dukapos/api/internal/enum"
	"github.com/dukapos/api/internal/handler"
	mw "github.com/dukapos/api/internal/middleware"
	"github.com/dukapos/api/internal/payment"
	"github.com/dukapos/api/internal/repository"
	"github.com/dukapos/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// New creates a Chi router with all application routes wired up.
// Applies authentication and role-based middleware as needed.
func New(cfg *config.Config, eng *engine.Engine, users *repository.Users, cat *catalog.Store, gw payment.Gateway, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:3000", // Next.js dev server
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(users, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Business configuration (admins only)
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.UserRoleOwner, enum.UserRoleManager))
			businessHandler := handler.NewBusinessHandler(eng, hub)
			r.Route("/business", businessHandler.RegisterRoutes)
		})

		// Catalog
		catalogHandler := handler.NewCatalogHandler(cat)
		r.Route("/catalog", catalogHandler.RegisterRoutes)

		// Cart sessions
		cartHandler := handler.NewCartHandler(cart.NewRegistry(), cat, eng)
		r.Route("/carts", cartHandler.RegisterRoutes)

		// Orders
		orderHandler := handler.NewOrderHandler(eng, hub)
		r.Route("/orders", func(r chi.Router) {
			orderHandler.RegisterRoutes(r)

			// Payments (nested under orders)
			paymentHandler := handler.NewPaymentHandler(eng, gw, hub)
			r.Route("/{id}/payments", paymentHandler.RegisterRoutes)
		})

		// Reports (admins only)
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.UserRoleOwner, enum.UserRoleManager))
			reportsHandler := handler.NewReportsHandler(eng)
			r.Route("/reports", reportsHandler.RegisterRoutes)
		})
	})

	return r
}
