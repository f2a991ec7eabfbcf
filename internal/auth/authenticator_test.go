// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/stockroom/internal/database"
	"github.com/tomtom215/stockroom/internal/models"
)

type fakeUserStore struct {
	users map[string]*models.User
	err   error
}

func (f *fakeUserStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[username]
	if !ok {
		return nil, database.ErrNotFound
	}
	return user, nil
}

type fakeDirectory struct {
	acceptPassword string
	err            error
	bindCalls      int
}

func (f *fakeDirectory) Bind(_ context.Context, _, password string) error {
	f.bindCalls++
	if f.err != nil {
		return f.err
	}
	if password != f.acceptPassword {
		return errors.New("bind rejected")
	}
	return nil
}

func newTestUsers(t *testing.T) map[string]*models.User {
	t.Helper()
	hash, err := HashPassword("local-secret", 4)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	return map[string]*models.User{
		"alice": {Username: "alice", PasswordHash: hash, Role: models.RoleAdmin, IsLocal: true},
		"bob":   {Username: "bob", Role: models.RoleUser, IsLocal: false},
	}
}

func TestAuthenticate(t *testing.T) {
	tests := []struct {
		name      string
		username  string
		password  string
		storeErr  error
		dir       *fakeDirectory
		wantUser  string
		wantErr   error
		wantBinds int
	}{
		{
			name:     "local success",
			username: "alice",
			password: "local-secret",
			dir:      &fakeDirectory{},
			wantUser: "alice",
		},
		{
			name:     "local success with mixed case and whitespace",
			username: "  ALICE ",
			password: "local-secret",
			dir:      &fakeDirectory{},
			wantUser: "alice",
		},
		{
			name:     "local wrong password",
			username: "alice",
			password: "nope",
			dir:      &fakeDirectory{},
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "mallory",
			password: "anything",
			dir:      &fakeDirectory{},
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "store failure",
			username: "alice",
			password: "local-secret",
			storeErr: errors.New("connection refused"),
			dir:      &fakeDirectory{},
			wantErr:  ErrBackendUnavailable,
		},
		{
			name:      "directory success",
			username:  "bob",
			password:  "ldap-secret",
			dir:       &fakeDirectory{acceptPassword: "ldap-secret"},
			wantUser:  "bob",
			wantBinds: 1,
		},
		{
			name:      "directory reject",
			username:  "bob",
			password:  "wrong",
			dir:       &fakeDirectory{acceptPassword: "ldap-secret"},
			wantErr:   ErrInvalidCredentials,
			wantBinds: 1,
		},
		{
			name:      "directory outage is invalid credentials not 500",
			username:  "bob",
			password:  "ldap-secret",
			dir:       &fakeDirectory{err: errors.New("dial tcp: i/o timeout")},
			wantErr:   ErrInvalidCredentials,
			wantBinds: 1,
		},
		{
			name:     "directory account without directory configured",
			username: "bob",
			password: "ldap-secret",
			dir:      nil,
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeUserStore{users: newTestUsers(t), err: tt.storeErr}
			var dir Directory
			if tt.dir != nil {
				dir = tt.dir
			}
			a := NewAuthenticator(store, dir)

			user, err := a.Authenticate(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Authenticate() error = %v", err)
			}
			if user.Username != tt.wantUser {
				t.Errorf("user = %q, want %q", user.Username, tt.wantUser)
			}
			if tt.dir != nil && tt.dir.bindCalls != tt.wantBinds {
				t.Errorf("bind calls = %d, want %d", tt.dir.bindCalls, tt.wantBinds)
			}
		})
	}
}

func TestAuthenticateLocalNeverTouchesDirectory(t *testing.T) {
	store := &fakeUserStore{users: newTestUsers(t)}
	dir := &fakeDirectory{acceptPassword: "irrelevant"}
	a := NewAuthenticator(store, dir)

	_, _ = a.Authenticate(context.Background(), "alice", "wrong")
	_, _ = a.Authenticate(context.Background(), "alice", "local-secret")

	if dir.bindCalls != 0 {
		t.Errorf("directory bound %d times for a local account, want 0", dir.bindCalls)
	}
}
