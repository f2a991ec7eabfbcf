// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package validation

import (
	"strings"
	"testing"

	"github.com/tomtom215/stockroom/internal/models"
)

func TestValidateLoginRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.LoginRequest
		wantErr bool
		wantMsg string
	}{
		{name: "valid", req: models.LoginRequest{Username: "alice", Password: "pw"}},
		{name: "missing username", req: models.LoginRequest{Password: "pw"}, wantErr: true, wantMsg: "Username is required"},
		{name: "missing password", req: models.LoginRequest{Username: "alice"}, wantErr: true, wantMsg: "Password is required"},
		{name: "missing both", req: models.LoginRequest{}, wantErr: true, wantMsg: "; "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if !tt.wantErr {
				if err != nil {
					t.Errorf("ValidateStruct() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error = %q, want substring %q", err.Error(), tt.wantMsg)
			}
			if apiErr := err.ToAPIError(); apiErr.Code != "VALIDATION_ERROR" {
				t.Errorf("code = %q, want VALIDATION_ERROR", apiErr.Code)
			}
		})
	}
}

func TestValidateRegisterRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.RegisterRequest
		wantErr bool
	}{
		{name: "valid user", req: models.RegisterRequest{Username: "bob", Password: "longenough", Role: "user"}},
		{name: "valid admin", req: models.RegisterRequest{Username: "root", Password: "longenough", Role: "admin"}},
		{name: "bad role", req: models.RegisterRequest{Username: "bob", Password: "longenough", Role: "superuser"}, wantErr: true},
		{name: "short password", req: models.RegisterRequest{Username: "bob", Password: "short", Role: "user"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStruct() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
