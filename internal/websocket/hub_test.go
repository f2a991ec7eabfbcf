// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package websocket

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/stockroom/internal/metrics"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- hub.RunWithContext(ctx) }()

	client := &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message, 4)}
	hub.Register <- client

	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.BroadcastInventoryUpdate("item-1", "quantity", 3)

	select {
	case msg := <-client.send:
		if msg.Type != MessageTypeInventoryUpdate {
			t.Errorf("type = %q, want inventory_update", msg.Type)
		}
		data, ok := msg.Data.(InventoryUpdateData)
		if !ok || data.ID != "item-1" || data.Field != "quantity" {
			t.Errorf("data = %+v, want item-1/quantity", msg.Data)
		}
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
	}

	hub.Unregister <- client
	waitFor(t, func() bool { return hub.ClientCount() == 0 })

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("RunWithContext() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("hub did not stop on cancel")
	}
}

func TestHubDropsSlowClient(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = hub.RunWithContext(ctx) }()

	// Zero-capacity send channel simulates a reader that never drains.
	slow := &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message)}
	hub.Register <- slow
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	hub.BroadcastInventoryUpdate("item-1", "out_of_stock", true)

	waitFor(t, func() bool { return hub.ClientCount() == 0 })
}

func TestHubConnectionMetrics(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = hub.RunWithContext(ctx) }()

	connsBefore := testutil.ToFloat64(metrics.WebSocketConnections)
	sentBefore := testutil.ToFloat64(metrics.WebSocketMessagesSent)

	client := &Client{id: clientIDCounter.Add(1), hub: hub, send: make(chan Message, 4)}
	hub.Register <- client
	waitFor(t, func() bool { return hub.ClientCount() == 1 })

	if got := testutil.ToFloat64(metrics.WebSocketConnections); got != connsBefore+1 {
		t.Errorf("websocket_connections = %v, want %v", got, connsBefore+1)
	}

	hub.BroadcastInventoryUpdate("item-1", "quantity", 7)
	select {
	case <-client.send:
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
	}
	waitFor(t, func() bool {
		return testutil.ToFloat64(metrics.WebSocketMessagesSent) == sentBefore+1
	})

	hub.Unregister <- client
	waitFor(t, func() bool { return hub.ClientCount() == 0 })
	if got := testutil.ToFloat64(metrics.WebSocketConnections); got != connsBefore {
		t.Errorf("websocket_connections after unregister = %v, want %v", got, connsBefore)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}
