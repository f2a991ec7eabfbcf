// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

// Package websocket implements the change-notification hub. Connected
// clients receive a message whenever inventory data changes so open
// views can refresh without polling.
package websocket

import (
	"context"
	"sort"
	"sync"

	"github.com/tomtom215/stockroom/internal/logging"
	"github.com/tomtom215/stockroom/internal/metrics"
)

// Message types pushed to clients.
const (
	MessageTypeInventoryUpdate = "inventory_update"
	MessageTypePing            = "ping"
	MessageTypePong            = "pong"
)

// Message is the envelope for every WebSocket frame.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// InventoryUpdateData describes a single changed field on an item.
type InventoryUpdateData struct {
	ID    string      `json:"id"`
	Field string      `json:"field"`
	Value interface{} `json:"value"`
}

// Hub maintains the set of active clients and fans broadcast messages out
// to them.
type Hub struct {
	mu         sync.RWMutex
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 256),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// RunWithContext runs the hub event loop until the context is canceled,
// then closes all clients. Shutdown has priority over pending events so a
// busy broadcast channel cannot delay it.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case <-ctx.Done():
			h.shutdown(ctx)
			return ctx.Err()

		case client := <-h.Register:
			h.mu.Lock()
			h.clients[client] = true
			total := len(h.clients)
			metrics.WebSocketConnections.Inc()
			h.mu.Unlock()
			logging.Info().Int("total_clients", total).Msg("WebSocket client connected")

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				metrics.WebSocketConnections.Dec()
			}
			total := len(h.clients)
			h.mu.Unlock()
			logging.Info().Int("total_clients", total).Msg("WebSocket client disconnected")

		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

// BroadcastInventoryUpdate notifies all clients that one field of an item
// changed. Drops the message if the broadcast channel is full rather than
// blocking the request path.
func (h *Hub) BroadcastInventoryUpdate(id, field string, value interface{}) {
	message := Message{
		Type: MessageTypeInventoryUpdate,
		Data: InventoryUpdateData{ID: id, Field: field, Value: value},
	}
	select {
	case h.broadcast <- message:
	default:
		logging.Warn().Str("item_id", id).Msg("Broadcast channel full, dropping inventory update")
	}
}

// broadcastToClients delivers a message to every client in a stable order.
// Clients whose send buffer is full are dropped; a slow reader must not
// stall the hub.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].id < clients[j].id })

	for _, client := range clients {
		select {
		case client.send <- message:
			metrics.WebSocketMessagesSent.Inc()
		default:
			delete(h.clients, client)
			close(client.send)
			metrics.WebSocketConnections.Dec()
			logging.Warn().Uint64("client_id", client.id).Msg("Dropping slow WebSocket client")
		}
	}
}

// shutdown closes every client and logs the reason.
func (h *Hub) shutdown(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool { return clients[i].id < clients[j].id })

	for _, client := range clients {
		delete(h.clients, client)
		close(client.send)
	}
	metrics.WebSocketConnections.Sub(float64(len(clients)))

	logging.Info().
		Str("component", "websocket-hub").
		Int("clients_closed", len(clients)).
		AnErr("cause", ctx.Err()).
		Msg("WebSocket hub stopped")
}
