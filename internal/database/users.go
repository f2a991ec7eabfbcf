// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/stockroom/internal/models"
)

// GetUserByUsername looks up a user by username. The lookup is
// case-insensitive: usernames are stored lowercase and the argument is
// normalized before the query. Returns ErrNotFound when absent.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	defer observe("get_user", time.Now())

	var user models.User
	err := db.get(ctx, &user,
		`SELECT id, username, password_hash, role, is_local, created_at, updated_at
		 FROM users WHERE username = ?`,
		strings.ToLower(username))
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts a new user. The username is normalized to lowercase
// before the existence check and the insert, so uniqueness is
// case-insensitive. Returns ErrDuplicate when the username is taken.
func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	defer observe("create_user", time.Now())

	user.Username = strings.ToLower(user.Username)

	if _, err := db.GetUserByUsername(ctx, user.Username); err == nil {
		return ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("failed to check username: %w", err)
	}

	now := time.Now().UTC()
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx, db.rebind(
		`INSERT INTO users (id, username, password_hash, role, is_local, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`),
		user.ID, user.Username, user.PasswordHash, user.Role, user.IsLocal,
		user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isDuplicateErr(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// UpdateUserPassword replaces the stored password hash for a user.
func (db *DB) UpdateUserPassword(ctx context.Context, username, passwordHash string) error {
	defer observe("update_user_password", time.Now())

	res, err := db.conn.ExecContext(ctx, db.rebind(
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE username = ?`),
		passwordHash, time.Now().UTC(), strings.ToLower(username))
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountUsers returns the total number of accounts. Used at startup to
// decide whether the bootstrap admin must be created.
func (db *DB) CountUsers(ctx context.Context) (int, error) {
	defer observe("count_users", time.Now())

	var count int
	if err := db.get(ctx, &count, `SELECT COUNT(*) FROM users`); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
