// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/stockroom/internal/auth"
	"github.com/tomtom215/stockroom/internal/config"
	"github.com/tomtom215/stockroom/internal/middleware"
	"github.com/tomtom215/stockroom/internal/models"
)

// Router assembles the HTTP surface from its middleware and handlers.
type Router struct {
	cfg          *config.Config
	handlers     *Handlers
	authMW       *auth.Middleware
	loginLimiter *auth.LoginLimiter
	chiMW        *ChiMiddleware
}

// NewRouter wires the router.
func NewRouter(cfg *config.Config, handlers *Handlers, authMW *auth.Middleware, loginLimiter *auth.LoginLimiter) *Router {
	return &Router{
		cfg:          cfg,
		handlers:     handlers,
		authMW:       authMW,
		loginLimiter: loginLimiter,
		chiMW:        NewChiMiddleware(&cfg.Security),
	}
}

// Setup builds the route tree.
//
// Ordering constraints: CORS is global so OPTIONS preflights are answered
// before anything else; the login limiter runs before credential
// verification; the auth gate runs before the role gate.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware stack.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMW.CORS())

	// Health and metrics, outside the auth gate.
	r.Group(func(r chi.Router) {
		r.Use(router.chiMW.RateLimitHealth())
		r.Get("/api/health", router.handlers.Health)
		r.Handle("/metrics", promhttp.Handler())
	})

	// Authentication endpoints.
	r.Route("/api/auth", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)

		// Login: fixed-window limiter first, then credential verification.
		r.With(router.loginLimiter.Middleware(rejectRateLimited)).
			Post("/login", router.handlers.Login)

		// Register: valid token plus exact admin role.
		r.With(router.authMW.Authenticate, router.authMW.RequireRole(models.RoleAdmin)).
			Post("/register", router.handlers.Register)
	})

	// Everything else requires a valid token.
	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMW.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(bearerFromQuery)
		r.Use(router.authMW.Authenticate)

		r.Put("/change-password", router.handlers.ChangePassword)

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", router.handlers.ListInventory)
			r.Post("/", router.handlers.CreateInventory)
			r.Put("/{id}", router.handlers.UpdateInventory)
			r.Delete("/{id}", router.handlers.DeleteInventory)
			r.Put("/{id}/quantity", router.handlers.UpdateInventoryQuantity)
			r.Put("/{id}/out-of-stock", router.handlers.UpdateInventoryOutOfStock)
		})

		r.Route("/locations", func(r chi.Router) {
			r.Get("/", router.handlers.ListLocations)
			r.Post("/", router.handlers.CreateLocation)
			r.Put("/{id}", router.handlers.UpdateLocation)
			r.Delete("/{id}", router.handlers.DeleteLocation)
		})

		r.Get("/rooms", router.handlers.ListRooms)

		r.Route("/reports", func(r chi.Router) {
			r.Get("/items", router.handlers.ReportItems)
			r.Get("/transactions", router.handlers.ReportTransactions)
		})

		r.Get("/ws", router.handlers.WebSocket)
	})

	return r
}

// rejectRateLimited writes the 429 envelope with the fixed advisory message.
func rejectRateLimited(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED", auth.RateLimitMessage, nil)
}

// bearerFromQuery copies a ?token= query parameter into the Authorization
// header when none is present. Browser WebSocket clients cannot set custom
// headers, so the hub endpoint authenticates this way.
func bearerFromQuery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			if token := r.URL.Query().Get("token"); token != "" {
				r.Header.Set("Authorization", "Bearer "+token)
			}
		}
		next.ServeHTTP(w, r)
	})
}
