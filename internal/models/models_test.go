// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestIsValidRole(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{"user", true},
		{"admin", true},
		{"Admin", false},
		{"editor", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			if got := IsValidRole(tt.role); got != tt.want {
				t.Errorf("IsValidRole(%q) = %v, want %v", tt.role, got, tt.want)
			}
		})
	}
}

func TestUserPasswordHashNotSerialized(t *testing.T) {
	u := User{Username: "alice", PasswordHash: "$2a$12$secret", Role: RoleUser}
	b, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(b) == "" {
		t.Fatal("empty JSON")
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if _, ok := m["password_hash"]; ok {
		t.Error("password_hash leaked into JSON output")
	}
}

func TestLoginRequestFieldNames(t *testing.T) {
	// The browser client sends the username key capitalized.
	var req LoginRequest
	if err := json.Unmarshal([]byte(`{"Username":"Alice","password":"pw"}`), &req); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if req.Username != "Alice" || req.Password != "pw" {
		t.Errorf("got %+v, want Username=Alice password=pw", req)
	}
}
