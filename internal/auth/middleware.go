// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/stockroom/internal/logging"
	"github.com/tomtom215/stockroom/internal/models"
)

type contextKey string

// claimsContextKey carries the validated Claims through the request context.
const claimsContextKey contextKey = "claims"

// ClaimsFromContext returns the claims injected by Authenticate, or nil if
// the request did not pass through the middleware.
func ClaimsFromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsContextKey).(*Claims)
	return claims
}

// ContextWithClaims injects claims into a context. Exported for handler
// tests that bypass the middleware.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// Middleware provides the bearer-token gate and the role gate for protected
// routes.
type Middleware struct {
	jwtManager *JWTManager
}

// NewMiddleware creates the auth middleware.
func NewMiddleware(jwtManager *JWTManager) *Middleware {
	return &Middleware{jwtManager: jwtManager}
}

// Authenticate enforces a valid bearer token.
//
// A missing or blank Authorization header is 401 Unauthenticated. A header
// that is present but malformed, carries a bad signature, or is expired is
// 403 Forbidden. On success the claims are injected into the request
// context for downstream handlers and RequireRole.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			recordTokenRejected()
			writeAuthError(w, http.StatusForbidden, "FORBIDDEN", "Invalid token")
			return
		}

		claims, err := m.jwtManager.ValidateToken(parts[1])
		if err != nil {
			logging.Debug().Err(err).Msg("Token validation failed")
			recordTokenRejected()
			writeAuthError(w, http.StatusForbidden, "FORBIDDEN", "Invalid token")
			return
		}

		ctx := ContextWithClaims(r.Context(), claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole gates a route on an exact role match. It must run after
// Authenticate. Roles are flat strings compared for equality; admin does
// not implicitly pass a "user" gate.
func (m *Middleware) RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil || claims.Role != role {
				writeAuthError(w, http.StatusForbidden, "FORBIDDEN", "Forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeAuthError writes the standard error envelope. Local to this package
// to avoid importing the api package from middleware.
func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    &models.APIError{Code: code, Message: message},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("Failed to encode error response")
	}
}
