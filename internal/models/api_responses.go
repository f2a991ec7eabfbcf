// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package models

import (
	"time"
)

// APIResponse represents a standardized API response wrapper used by all HTTP endpoints.
// It provides consistent structure for both successful and error responses.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"token": "..."},
//	  "metadata": {"timestamp": "2026-08-28T12:00:00Z"}
//	}
//
// Example error response:
//
//	{
//	  "status": "error",
//	  "error": {
//	    "code": "VALIDATION_ERROR",
//	    "message": "Username and password are required"
//	  },
//	  "metadata": {"timestamp": "2026-08-28T12:00:00Z"}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
// QueryTimeMS is the database execution time in milliseconds and is omitted
// for endpoints that do not touch the store.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError represents an error response with structured error details.
//
// Common error codes:
//   - VALIDATION_ERROR: Invalid input parameters (400)
//   - INVALID_CREDENTIALS: Username/password rejected (401)
//   - UNAUTHENTICATED: Missing bearer token (401)
//   - FORBIDDEN: Invalid/expired token or insufficient role (403)
//   - CONFLICT: Resource already exists (409)
//   - RATE_LIMIT_EXCEEDED: Too many requests (429)
//   - BACKEND_ERROR: Store or internal failure (500)
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// LoginRequest is the payload for POST /api/auth/login.
// The original client sends the username field capitalized.
type LoginRequest struct {
	Username string `json:"Username" validate:"required,min=1,max=128"`
	Password string `json:"password" validate:"required,min=1,max=512"`
}

// LoginResponse is the success payload for POST /api/auth/login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
}

// RegisterRequest is the payload for POST /api/auth/register (admin only).
type RegisterRequest struct {
	Username string `json:"Username" validate:"required,min=1,max=128"`
	Password string `json:"Password" validate:"required,min=8,max=512"`
	Role     string `json:"Role" validate:"required,oneof=user admin"`
}

// ChangePasswordRequest is the payload for PUT /api/change-password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required,min=1,max=512"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=512"`
}
