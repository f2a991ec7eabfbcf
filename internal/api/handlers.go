// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

// Package api provides the HTTP surface of Stockroom: authentication,
// inventory and location management, reports, health and the WebSocket
// notification endpoint. Routing uses chi; responses share the
// APIResponse envelope.
package api

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/stockroom/internal/auth"
	"github.com/tomtom215/stockroom/internal/config"
	"github.com/tomtom215/stockroom/internal/database"
	"github.com/tomtom215/stockroom/internal/logging"
	"github.com/tomtom215/stockroom/internal/models"
	"github.com/tomtom215/stockroom/internal/websocket"
)

// Handlers carries the dependencies shared by all HTTP handlers.
type Handlers struct {
	cfg           *config.Config
	db            *database.DB
	authenticator *auth.Authenticator
	jwtManager    *auth.JWTManager
	hub           *websocket.Hub
	startedAt     time.Time
}

// NewHandlers wires the handler set.
func NewHandlers(cfg *config.Config, db *database.DB, authenticator *auth.Authenticator, jwtManager *auth.JWTManager, hub *websocket.Hub) *Handlers {
	return &Handlers{
		cfg:           cfg,
		db:            db,
		authenticator: authenticator,
		jwtManager:    jwtManager,
		hub:           hub,
		startedAt:     time.Now(),
	}
}

// Health reports liveness and store reachability.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	dbStatus := "ok"
	code := http.StatusOK

	if err := h.db.Ping(r.Context()); err != nil {
		logging.Error().Err(err).Msg("Health check: database unreachable")
		status = "degraded"
		dbStatus = "unreachable"
		code = http.StatusServiceUnavailable
	}

	respondSuccess(w, code, map[string]interface{}{
		"status":         status,
		"database":       dbStatus,
		"backend":        h.db.Backend(),
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
	})
}

// logTransaction appends an audit record for a mutating or report request.
// Failures are logged and swallowed; the audit log never fails a request.
func (h *Handlers) logTransaction(r *http.Request, payload interface{}) {
	username := ""
	if claims := auth.ClaimsFromContext(r.Context()); claims != nil {
		username = claims.Username
	}

	body := ""
	if payload != nil {
		if b, err := json.Marshal(payload); err == nil {
			body = string(b)
		}
	}

	txn := &models.Transaction{
		Route:    r.Method + " " + r.URL.Path,
		Payload:  body,
		Username: username,
	}
	if err := h.db.AppendTransaction(r.Context(), txn); err != nil {
		logging.Error().Err(err).Str("route", txn.Route).Msg("Failed to record transaction")
	}
}
