// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/stockroom/internal/auth"
	"github.com/tomtom215/stockroom/internal/database"
	"github.com/tomtom215/stockroom/internal/logging"
	"github.com/tomtom215/stockroom/internal/models"
)

// Login handles POST /api/auth/login.
//
// Responses: 200 with a signed token, 400 for missing fields, 401 for any
// credential rejection (uniform message), 429 from the login limiter before
// this handler runs, 500 when the store fails.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	user, err := h.authenticator.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}

	token, err := h.jwtManager.GenerateToken(user.Username, user.Role)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}

	logging.Info().Str("username", user.Username).Str("role", user.Role).Msg("User logged in")

	respondSuccess(w, http.StatusOK, models.LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.jwtManager.Expiry()).UTC(),
		Username:  user.Username,
		Role:      user.Role,
	})
}

// Register handles POST /api/auth/register. Reached only through the admin
// role gate. New accounts are local and stored with a bcrypt hash; the
// username and role are normalized to lowercase.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	req.Role = strings.ToLower(req.Role)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.Security.BcryptCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}

	user := &models.User{
		Username:     strings.ToLower(req.Username),
		PasswordHash: hash,
		Role:         req.Role,
		IsLocal:      true,
	}
	if err := h.db.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			respondError(w, http.StatusConflict, "CONFLICT", "Username already exists", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}

	logging.Info().Str("username", user.Username).Str("role", user.Role).Msg("User registered")

	respondSuccess(w, http.StatusCreated, map[string]string{
		"id":       user.ID,
		"username": user.Username,
		"role":     user.Role,
	})
}

// ChangePassword handles PUT /api/change-password for the authenticated
// user. Directory-backed accounts cannot change their password here; their
// credentials live in the directory.
func (h *Handlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := auth.ClaimsFromContext(r.Context())
	if claims == nil {
		respondError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "Authentication required", nil)
		return
	}

	var req models.ChangePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	user, err := h.db.GetUserByUsername(r.Context(), claims.Username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}
	if !user.IsLocal {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
			"Password for directory accounts is managed externally", nil)
		return
	}
	if !auth.VerifyPassword(user.PasswordHash, req.CurrentPassword) {
		respondError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid credentials", nil)
		return
	}

	hash, err := auth.HashPassword(req.NewPassword, h.cfg.Security.BcryptCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}
	if err := h.db.UpdateUserPassword(r.Context(), user.Username, hash); err != nil {
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}

	logging.Info().Str("username", user.Username).Msg("Password changed")

	respondSuccess(w, http.StatusOK, map[string]string{"message": "Password updated"})
}
