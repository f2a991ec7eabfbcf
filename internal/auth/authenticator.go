// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/stockroom/internal/database"
	"github.com/tomtom215/stockroom/internal/logging"
	"github.com/tomtom215/stockroom/internal/models"
)

// Sentinel errors returned by Authenticate. The HTTP boundary maps
// ErrInvalidCredentials to 401 with a uniform message and
// ErrBackendUnavailable to 500.
var (
	// ErrInvalidCredentials covers every credential rejection: unknown
	// username, wrong password, and directory bind failures of any kind.
	// The client-visible message never distinguishes these cases.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrBackendUnavailable indicates the user store itself failed.
	ErrBackendUnavailable = errors.New("auth: backend unavailable")
)

// UserStore is the slice of the database layer the authenticator needs.
type UserStore interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Authenticator verifies username/password credentials against the user
// store, delegating to the directory for non-local accounts.
type Authenticator struct {
	store     UserStore
	directory Directory
}

// NewAuthenticator creates an authenticator. directory may be nil when no
// directory is configured; non-local accounts then always fail verification.
func NewAuthenticator(store UserStore, directory Directory) *Authenticator {
	return &Authenticator{store: store, directory: directory}
}

// Authenticate verifies a username/password pair and returns the matching
// user on success.
//
// The username is normalized to lowercase before lookup. Local accounts are
// checked against their stored bcrypt hash; directory accounts are verified
// with an LDAP bind. Every rejection path returns ErrInvalidCredentials so
// the client cannot distinguish unknown users from wrong passwords or
// directory outages. The server log carries the distinction.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := a.store.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			logging.Debug().Str("username", username).Msg("Login failed: user not found")
			recordLoginFailure("unknown_user")
			return nil, ErrInvalidCredentials
		}
		logging.Error().Err(err).Msg("User lookup failed")
		recordLoginFailure("store_error")
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	if user.IsLocal {
		if !VerifyPassword(user.PasswordHash, password) {
			logging.Debug().Str("username", username).Msg("Login failed: password mismatch")
			recordLoginFailure("bad_password")
			return nil, ErrInvalidCredentials
		}
		recordLoginSuccess("local")
		return user, nil
	}

	// Directory-backed account. A directory outage or timeout is logged but
	// surfaces to the client exactly like a wrong password.
	if a.directory == nil {
		logging.Warn().Str("username", username).Msg("Directory account but no directory configured")
		recordLoginFailure("no_directory")
		return nil, ErrInvalidCredentials
	}

	if err := a.directory.Bind(ctx, username, password); err != nil {
		logging.Debug().Str("username", username).Err(err).Msg("Login failed: directory bind")
		recordLoginFailure("directory_reject")
		return nil, ErrInvalidCredentials
	}

	recordLoginSuccess("directory")
	return user, nil
}
