// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/stockroom/internal/models"
)

// itemFilterColumns whitelists the columns a listing may filter on.
// Filter column names are interpolated into SQL, so anything outside this
// map is rejected before query construction.
var itemFilterColumns = map[string]bool{
	"name":        true,
	"description": true,
	"room":        true,
	"location":    true,
}

const itemColumns = `id, name, description, quantity, room, location, out_of_stock, created_at, updated_at`

// ListItems returns items, optionally narrowed by a whitelisted filter
// column. Non-exact filters match substrings.
func (db *DB) ListItems(ctx context.Context, filter *models.ItemFilter) ([]models.Item, error) {
	defer observe("list_items", time.Now())

	query := `SELECT ` + itemColumns + ` FROM items`
	var args []interface{}

	if filter != nil && filter.Column != "" {
		if !itemFilterColumns[filter.Column] {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFilter, filter.Column)
		}
		if filter.Exact {
			query += ` WHERE ` + filter.Column + ` = ?`
			args = append(args, filter.Value)
		} else {
			query += ` WHERE ` + filter.Column + ` LIKE ?`
			args = append(args, "%"+filter.Value+"%")
		}
	}
	query += ` ORDER BY name`

	items := []models.Item{}
	if err := db.conn.SelectContext(ctx, &items, db.rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// GetItem returns a single item by ID.
func (db *DB) GetItem(ctx context.Context, id string) (*models.Item, error) {
	defer observe("get_item", time.Now())

	var item models.Item
	err := db.get(ctx, &item, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// CreateItem inserts a new item and assigns it an ID.
func (db *DB) CreateItem(ctx context.Context, item *models.Item) error {
	defer observe("create_item", time.Now())

	now := time.Now().UTC()
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	item.CreatedAt = now
	item.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx, db.rebind(
		`INSERT INTO items (id, name, description, quantity, room, location, out_of_stock, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		item.ID, item.Name, item.Description, item.Quantity, item.Room,
		item.Location, item.OutOfStock, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// UpdateItem replaces the mutable fields of an item.
func (db *DB) UpdateItem(ctx context.Context, item *models.Item) error {
	defer observe("update_item", time.Now())

	item.UpdatedAt = time.Now().UTC()
	res, err := db.conn.ExecContext(ctx, db.rebind(
		`UPDATE items SET name = ?, description = ?, quantity = ?, room = ?,
		 location = ?, out_of_stock = ?, updated_at = ? WHERE id = ?`),
		item.Name, item.Description, item.Quantity, item.Room,
		item.Location, item.OutOfStock, item.UpdatedAt, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateItemQuantity sets just the quantity column.
func (db *DB) UpdateItemQuantity(ctx context.Context, id string, quantity int) error {
	return db.updateItemField(ctx, id, "quantity", quantity)
}

// UpdateItemOutOfStock sets just the out_of_stock flag.
func (db *DB) UpdateItemOutOfStock(ctx context.Context, id string, outOfStock bool) error {
	return db.updateItemField(ctx, id, "out_of_stock", outOfStock)
}

func (db *DB) updateItemField(ctx context.Context, id, column string, value interface{}) error {
	defer observe("update_item_"+column, time.Now())

	res, err := db.conn.ExecContext(ctx, db.rebind(
		`UPDATE items SET `+column+` = ?, updated_at = ? WHERE id = ?`),
		value, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update item %s: %w", column, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteItem removes an item by ID.
func (db *DB) DeleteItem(ctx context.Context, id string) error {
	defer observe("delete_item", time.Now())

	res, err := db.conn.ExecContext(ctx, db.rebind(`DELETE FROM items WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
