// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/tomtom215/stockroom/internal/models"
)

func TestInventoryCRUD(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.login(t, "alice", "alice-password")

	t.Run("requires auth", func(t *testing.T) {
		if rec := ts.do(t, http.MethodGet, "/api/inventory/", "", nil); rec.Code != http.StatusUnauthorized {
			t.Errorf("no token status = %d, want 401", rec.Code)
		}
		if rec := ts.do(t, http.MethodGet, "/api/inventory/", "garbage.token.here", nil); rec.Code != http.StatusForbidden {
			t.Errorf("bad token status = %d, want 403", rec.Code)
		}
	})

	var itemID string
	t.Run("create", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/inventory/", token, models.Item{
			Name:     "Soldering Iron",
			Quantity: 2,
			Room:     "Workshop",
			Location: "Bench Drawer",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		data := decodeEnvelope(t, rec).Data.(map[string]interface{})
		itemID, _ = data["id"].(string)
		if itemID == "" {
			t.Fatal("created item has no id")
		}
	})

	t.Run("list with filter", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/inventory/?column=name&value=Soldering", token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		items := decodeEnvelope(t, rec).Data.([]interface{})
		if len(items) != 1 {
			t.Errorf("len = %d, want 1", len(items))
		}

		rec = ts.do(t, http.MethodGet, "/api/inventory/?column=quantity&value=2", token, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("whitelisted column status = %d, want 400", rec.Code)
		}
	})

	t.Run("quantity update", func(t *testing.T) {
		rec := ts.do(t, http.MethodPut, "/api/inventory/"+itemID+"/quantity", token,
			map[string]int{"quantity": 7})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}

		rec = ts.do(t, http.MethodPut, "/api/inventory/"+itemID+"/quantity", token,
			map[string]int{"quantity": -1})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("negative quantity status = %d, want 400", rec.Code)
		}
	})

	t.Run("out of stock update", func(t *testing.T) {
		rec := ts.do(t, http.MethodPut, "/api/inventory/"+itemID+"/out-of-stock", token,
			map[string]bool{"out_of_stock": true})
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
	})

	t.Run("update missing item", func(t *testing.T) {
		rec := ts.do(t, http.MethodPut, "/api/inventory/no-such-id/quantity", token,
			map[string]int{"quantity": 1})
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("delete", func(t *testing.T) {
		rec := ts.do(t, http.MethodDelete, "/api/inventory/"+itemID, token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		rec = ts.do(t, http.MethodDelete, "/api/inventory/"+itemID, token, nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("second delete status = %d, want 404", rec.Code)
		}
	})
}

func TestLocationsAndRooms(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.login(t, "root", "root-password")

	rec := ts.do(t, http.MethodPost, "/api/locations/", token,
		models.Location{Name: "Shelf A", Room: "Garage"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = ts.do(t, http.MethodPost, "/api/locations/", token,
		models.Location{Name: "Shelf A", Room: "Garage"})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate status = %d, want 409", rec.Code)
	}

	rec = ts.do(t, http.MethodPost, "/api/locations/", token,
		models.Location{Name: "Shelf B", Room: "Attic"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("second create status = %d", rec.Code)
	}

	rec = ts.do(t, http.MethodGet, "/api/rooms", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("rooms status = %d", rec.Code)
	}
	rooms := decodeEnvelope(t, rec).Data.([]interface{})
	if len(rooms) != 2 {
		t.Errorf("rooms = %v, want 2 entries", rooms)
	}
}

func TestReports(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.login(t, "alice", "alice-password")

	for i := 0; i < 3; i++ {
		rec := ts.do(t, http.MethodPost, "/api/inventory/", token, models.Item{
			Name: fmt.Sprintf("Item %d", i),
			Room: "Garage",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("create %d status = %d", i, rec.Code)
		}
	}

	rec := ts.do(t, http.MethodGet, "/api/reports/items", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("items report status = %d", rec.Code)
	}
	if items := decodeEnvelope(t, rec).Data.([]interface{}); len(items) != 3 {
		t.Errorf("items = %d, want 3", len(items))
	}

	// Mutations above were audited; the transactions report shows them,
	// attributed to the logged-in user.
	rec = ts.do(t, http.MethodGet, "/api/reports/transactions?username=alice", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("transactions report status = %d", rec.Code)
	}
	txns := decodeEnvelope(t, rec).Data.([]interface{})
	if len(txns) < 3 {
		t.Errorf("transactions = %d, want at least 3", len(txns))
	}

	rec = ts.do(t, http.MethodGet, "/api/reports/transactions?since=yesterday", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad since status = %d, want 400", rec.Code)
	}
}
