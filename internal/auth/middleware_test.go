// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/stockroom/internal/models"
)

func authTestServer(t *testing.T) (*Middleware, *JWTManager) {
	t.Helper()
	m := newTestJWTManager(t, time.Hour)
	return NewMiddleware(m), m
}

func TestAuthenticateMiddleware(t *testing.T) {
	mw, jwtManager := authTestServer(t)

	valid, err := jwtManager.GenerateToken("alice", models.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	expiredManager := newTestJWTManager(t, -time.Minute)
	expired, err := expiredManager.GenerateToken("alice", models.RoleUser)
	if err != nil {
		t.Fatalf("GenerateToken(expired) error = %v", err)
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   string
	}{
		{name: "missing header", header: "", wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHENTICATED"},
		{name: "blank header", header: "   ", wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHENTICATED"},
		{name: "not bearer", header: "Basic dXNlcjpwdw==", wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "bearer without token", header: "Bearer", wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "garbage token", header: "Bearer not.a.jwt", wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "expired token", header: "Bearer " + expired, wantStatus: http.StatusForbidden, wantCode: "FORBIDDEN"},
		{name: "valid token", header: "Bearer " + valid, wantStatus: http.StatusOK},
		{name: "lowercase bearer", header: "bearer " + valid, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotClaims *Claims
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotClaims = ClaimsFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/inventory", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			mw.Authenticate(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusOK {
				if gotClaims == nil || gotClaims.Username != "alice" {
					t.Errorf("claims = %+v, want alice in context", gotClaims)
				}
				return
			}

			var resp models.APIResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("response is not the standard envelope: %v", err)
			}
			if resp.Error == nil || resp.Error.Code != tt.wantCode {
				t.Errorf("error = %+v, want code %s", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	mw, _ := authTestServer(t)

	tests := []struct {
		name       string
		claims     *Claims
		required   string
		wantStatus int
	}{
		{name: "exact match", claims: &Claims{Username: "root", Role: "admin"}, required: "admin", wantStatus: http.StatusOK},
		{name: "role mismatch", claims: &Claims{Username: "alice", Role: "user"}, required: "admin", wantStatus: http.StatusForbidden},
		{name: "admin does not pass user gate", claims: &Claims{Username: "root", Role: "admin"}, required: "user", wantStatus: http.StatusForbidden},
		{name: "case sensitive", claims: &Claims{Username: "root", Role: "Admin"}, required: "admin", wantStatus: http.StatusForbidden},
		{name: "no claims in context", claims: nil, required: "admin", wantStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", nil)
			if tt.claims != nil {
				req = req.WithContext(ContextWithClaims(req.Context(), tt.claims))
			}
			rec := httptest.NewRecorder()
			mw.RequireRole(tt.required)(next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
