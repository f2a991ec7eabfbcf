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

// ListInventory handles GET /api/inventory. Supports ?column=&value=&exact=
// filtering over a whitelisted set of columns.
func (h *Handlers) ListInventory(w http.ResponseWriter, r *http.Request) {
	var filter *models.ItemFilter
	if column := r.URL.Query().Get("column"); column != "" {
		filter = &models.ItemFilter{
			Column: column,
			Value:  r.URL.Query().Get("value"),
			Exact:  r.URL.Query().Get("exact") == "true",
		}
	}

	items, err := h.db.ListItems(r.Context(), filter)
	if err != nil {
		if errors.Is(err, database.ErrInvalidFilter) {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Unsupported filter column", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}
	respondSuccess(w, http.StatusOK, items)
}

// CreateInventory handles POST /api/inventory.
func (h *Handlers) CreateInventory(w http.ResponseWriter, r *http.Request) {
	var item models.Item
	if err := decodeJSON(r, &item); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&item); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	if err := h.db.CreateItem(r.Context(), &item); err != nil {
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}

	h.logTransaction(r, item)
	respondSuccess(w, http.StatusCreated, item)
}

// UpdateInventory handles PUT /api/inventory/{id}.
func (h *Handlers) UpdateInventory(w http.ResponseWriter, r *http.Request) {
	var item models.Item
	if err := decodeJSON(r, &item); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	item.ID = chi.URLParam(r, "id")
	if apiErr := validateRequest(&item); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	if err := h.db.UpdateItem(r.Context(), &item); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}

	h.logTransaction(r, item)
	respondSuccess(w, http.StatusOK, item)
}

// DeleteInventory handles DELETE /api/inventory/{id}.
func (h *Handlers) DeleteInventory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.db.DeleteItem(r.Context(), id); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}

	h.logTransaction(r, map[string]string{"id": id})
	respondSuccess(w, http.StatusOK, map[string]string{"id": id})
}

// quantityRequest is the body of PUT /api/inventory/{id}/quantity.
type quantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// UpdateInventoryQuantity handles PUT /api/inventory/{id}/quantity and
// broadcasts the change to WebSocket clients.
func (h *Handlers) UpdateInventoryQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.db.UpdateItemQuantity(r.Context(), id, req.Quantity); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}

	h.logTransaction(r, map[string]interface{}{"id": id, "quantity": req.Quantity})
	if h.hub != nil {
		h.hub.BroadcastInventoryUpdate(id, "quantity", req.Quantity)
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{"id": id, "quantity": req.Quantity})
}

// outOfStockRequest is the body of PUT /api/inventory/{id}/out-of-stock.
type outOfStockRequest struct {
	OutOfStock bool `json:"out_of_stock"`
}

// UpdateInventoryOutOfStock handles PUT /api/inventory/{id}/out-of-stock
// and broadcasts the change to WebSocket clients.
func (h *Handlers) UpdateInventoryOutOfStock(w http.ResponseWriter, r *http.Request) {
	var req outOfStockRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", err)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.db.UpdateItemOutOfStock(r.Context(), id, req.OutOfStock); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Item not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}

	h.logTransaction(r, map[string]interface{}{"id": id, "out_of_stock": req.OutOfStock})
	if h.hub != nil {
		h.hub.BroadcastInventoryUpdate(id, "out_of_stock", req.OutOfStock)
	}
	respondSuccess(w, http.StatusOK, map[string]interface{}{"id": id, "out_of_stock": req.OutOfStock})
}
