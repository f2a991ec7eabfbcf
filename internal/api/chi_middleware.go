// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/stockroom/internal/config"
)

// ChiMiddleware provides CORS and general-purpose rate limiting factories
// built on the chi ecosystem. The login endpoint has its own fixed-window
// limiter in internal/auth; these limits cover everything else.
type ChiMiddleware struct {
	cors     func(http.Handler) http.Handler
	requests int
	window   time.Duration
	disabled bool
}

// NewChiMiddleware builds the middleware factory from security config.
func NewChiMiddleware(cfg *config.SecurityConfig) *ChiMiddleware {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: false,
		MaxAge:           86400,
	})

	return &ChiMiddleware{
		cors:     corsHandler,
		requests: cfg.APIRateLimit,
		window:   cfg.APIRateWindow,
		disabled: cfg.RateLimitDisabled,
	}
}

// CORS returns the CORS middleware. Must be global so OPTIONS preflight
// requests are answered before auth.
func (m *ChiMiddleware) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit returns the per-IP limiter for general API endpoints.
func (m *ChiMiddleware) RateLimit() func(http.Handler) http.Handler {
	if m.disabled {
		return passthrough
	}
	return httprate.Limit(
		m.requests,
		m.window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, http.StatusTooManyRequests, "RATE_LIMIT_EXCEEDED",
				"Too many requests, please slow down", nil)
		}),
	)
}

// RateLimitHealth returns a permissive limiter for monitoring endpoints.
func (m *ChiMiddleware) RateLimitHealth() func(http.Handler) http.Handler {
	if m.disabled {
		return passthrough
	}
	return httprate.LimitByIP(1000, time.Minute)
}

func passthrough(next http.Handler) http.Handler { return next }
