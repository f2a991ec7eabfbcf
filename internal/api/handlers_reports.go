// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/stockroom/internal/models"
)

// ReportItems handles GET /api/reports/items: the full item list, recorded
// in the audit log.
func (h *Handlers) ReportItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.db.ListItems(r.Context(), nil)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}

	h.logTransaction(r, map[string]int{"items": len(items)})
	respondSuccess(w, http.StatusOK, items)
}

// ReportTransactions handles GET /api/reports/transactions with optional
// ?username=&route=&since=&limit= filters.
func (h *Handlers) ReportTransactions(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := &models.TransactionFilter{
		Username: q.Get("username"),
		Route:    q.Get("route"),
	}

	if since := q.Get("since"); since != "" {
		ts, err := time.Parse(time.RFC3339, since)
		if err != nil {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
				"since must be an RFC3339 timestamp", nil)
			return
		}
		filter.Since = ts
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR",
				"limit must be a positive integer", nil)
			return
		}
		filter.Limit = n
	}

	txns, err := h.db.ListTransactions(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "BACKEND_ERROR", "Internal server error", err)
		return
	}

	respondSuccess(w, http.StatusOK, txns)
}
