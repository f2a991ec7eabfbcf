// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// chiRouteContext returns the matched chi route pattern, e.g.
// "/api/inventory/{id}", or "" outside a chi router.
func chiRouteContext(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return ""
	}
	return rctx.RoutePattern()
}
