// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package models

import "time"

// Item represents a tracked inventory item and where it lives.
type Item struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name" validate:"required,min=1,max=256"`
	Description string    `db:"description" json:"description" validate:"max=2048"`
	Quantity    int       `db:"quantity" json:"quantity" validate:"gte=0"`
	Room        string    `db:"room" json:"room" validate:"max=128"`
	Location    string    `db:"location" json:"location" validate:"max=128"`
	OutOfStock  bool      `db:"out_of_stock" json:"out_of_stock"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Location represents a named storage location within a room.
type Location struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name" validate:"required,min=1,max=128"`
	Room      string    `db:"room" json:"room" validate:"required,min=1,max=128"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Transaction is an append-only audit record of a mutating or report request.
// Payload holds the request body (or query) as serialized JSON.
type Transaction struct {
	ID        string    `db:"id" json:"id"`
	Route     string    `db:"route" json:"route"`
	Payload   string    `db:"payload" json:"payload"`
	Username  string    `db:"username" json:"username"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ItemFilter narrows an item listing to a single whitelisted column.
// Exact toggles equality vs substring matching.
type ItemFilter struct {
	Column string
	Value  string
	Exact  bool
}

// TransactionFilter narrows the transaction report.
type TransactionFilter struct {
	Username string
	Route    string
	Since    time.Time
	Limit    int
}
