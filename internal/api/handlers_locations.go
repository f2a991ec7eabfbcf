// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/stockroom/internal/database"
	"github.com/tomtom215/stockroom/internal/models"
)

// ListLocations handles GET /api/locations.
func (h *Handlers) ListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.db.ListLocations(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}
	respondSuccess(w, http.StatusOK, locations)
}

// ListRooms handles GET /api/rooms.
func (h *Handlers) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.db.ListRooms(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}
	respondSuccess(w, http.StatusOK, rooms)
}

// CreateLocation handles POST /api/locations.
func (h *Handlers) CreateLocation(w http.ResponseWriter, r *http.Request) {
	var loc models.Location
	if err := decodeJSON(r, &loc); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&loc); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	if err := h.db.CreateLocation(r.Context(), &loc); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			respondError(w, http.StatusConflict, "CONFLICT", "Location already exists in this room", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}

	h.logTransaction(r, loc)
	respondSuccess(w, http.StatusCreated, loc)
}

// UpdateLocation handles PUT /api/locations/{id}.
func (h *Handlers) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	var loc models.Location
	if err := decodeJSON(r, &loc); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	loc.ID = chi.URLParam(r, "id")
	if apiErr := validateRequest(&loc); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	if err := h.db.UpdateLocation(r.Context(), &loc); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Location not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}

	h.logTransaction(r, loc)
	respondSuccess(w, http.StatusOK, loc)
}

// DeleteLocation handles DELETE /api/locations/{id}.
func (h *Handlers) DeleteLocation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.db.DeleteLocation(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Location not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}

	h.logTransaction(r, map[string]string{"id": id})
	respondSuccess(w, http.StatusOK, map[string]string{"id": id})
}
