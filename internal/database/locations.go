// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/stockroom/internal/models"
)

const locationColumns = `id, name, room, created_at, updated_at`

// ListLocations returns all storage locations ordered by room then name.
func (db *DB) ListLocations(ctx context.Context) ([]models.Location, error) {
	defer observe("list_locations", time.Now())

	locations := []models.Location{}
	err := db.conn.SelectContext(ctx, &locations, db.rebind(
		`SELECT `+locationColumns+` FROM locations ORDER BY room, name`))
	if err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}
	return locations, nil
}

// ListRooms returns the distinct room names across locations.
func (db *DB) ListRooms(ctx context.Context) ([]string, error) {
	defer observe("list_rooms", time.Now())

	rooms := []string{}
	err := db.conn.SelectContext(ctx, &rooms, db.rebind(
		`SELECT DISTINCT room FROM locations ORDER BY room`))
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

// CreateLocation inserts a new location. (name, room) pairs are unique;
// returns ErrDuplicate when the pair already exists.
func (db *DB) CreateLocation(ctx context.Context, loc *models.Location) error {
	defer observe("create_location", time.Now())

	var existing models.Location
	err := db.get(ctx, &existing,
		`SELECT `+locationColumns+` FROM locations WHERE name = ? AND room = ?`,
		loc.Name, loc.Room)
	if err == nil {
		return ErrDuplicate
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to check location: %w", err)
	}

	now := time.Now().UTC()
	if loc.ID == "" {
		loc.ID = uuid.NewString()
	}
	loc.CreatedAt = now
	loc.UpdatedAt = now

	_, err = db.conn.ExecContext(ctx, db.rebind(
		`INSERT INTO locations (id, name, room, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`),
		loc.ID, loc.Name, loc.Room, loc.CreatedAt, loc.UpdatedAt)
	if err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert location: %w", err)
	}
	return nil
}

// UpdateLocation renames a location or moves it to another room.
func (db *DB) UpdateLocation(ctx context.Context, loc *models.Location) error {
	defer observe("update_location", time.Now())

	loc.UpdatedAt = time.Now().UTC()
	res, err := db.conn.ExecContext(ctx, db.rebind(
		`UPDATE locations SET name = ?, room = ?, updated_at = ? WHERE id = ?`),
		loc.Name, loc.Room, loc.UpdatedAt, loc.ID)
	if err != nil {
		return fmt.Errorf("failed to update location: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteLocation removes a location by ID.
func (db *DB) DeleteLocation(ctx context.Context, id string) error {
	defer observe("delete_location", time.Now())

	res, err := db.conn.ExecContext(ctx, db.rebind(`DELETE FROM locations WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("failed to delete location: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
