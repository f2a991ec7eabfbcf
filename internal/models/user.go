// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package models

import "time"

// Role constants define the standard roles in the system. Roles are flat
// strings compared for exact equality; admin does not implicitly include user.
const (
	// RoleUser is the default role for regular accounts.
	RoleUser = "user"

	// RoleAdmin can register accounts and manage locations.
	RoleAdmin = "admin"
)

// ValidRoles contains all valid role names for validation.
var ValidRoles = []string{RoleUser, RoleAdmin}

// IsValidRole checks if a role name is valid.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User represents an account row. Usernames are stored lowercase and are
// unique case-insensitively.
//
// IsLocalAccount selects the credential backend: local accounts carry a
// bcrypt hash in PasswordHash, directory accounts have an empty hash and
// are verified against the configured LDAP directory.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	IsLocal      bool      `db:"is_local" json:"is_local"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
