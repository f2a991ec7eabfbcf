// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLoginLimiterFixedWindow(t *testing.T) {
	limiter := NewLoginLimiter(NewMemoryCounterStore(), 10, time.Minute)

	// Pin the clock mid-window so the test cannot straddle a boundary.
	base := time.Date(2026, 8, 28, 12, 0, 30, 0, time.UTC)
	limiter.now = func() time.Time { return base }

	for i := 1; i <= 10; i++ {
		if !limiter.Allow("10.0.0.1") {
			t.Fatalf("request %d denied, want first 10 allowed", i)
		}
	}
	if limiter.Allow("10.0.0.1") {
		t.Error("request 11 allowed, want denied")
	}

	// Another client is counted independently.
	if !limiter.Allow("10.0.0.2") {
		t.Error("independent client denied")
	}

	// The window resets entirely at the boundary.
	limiter.now = func() time.Time { return base.Add(time.Minute) }
	if !limiter.Allow("10.0.0.1") {
		t.Error("request denied after window reset")
	}
}

type failingCounterStore struct{}

func (failingCounterStore) Increment(string, time.Time) (int, error) {
	return 0, errors.New("store down")
}

func TestLoginLimiterFailsOpen(t *testing.T) {
	limiter := NewLoginLimiter(failingCounterStore{}, 1, time.Minute)
	if !limiter.Allow("10.0.0.1") {
		t.Error("limiter denied when counter store failed, want fail-open")
	}
}

func TestLoginLimiterMiddleware(t *testing.T) {
	limiter := NewLoginLimiter(NewMemoryCounterStore(), 2, time.Minute)
	base := time.Date(2026, 8, 28, 12, 0, 30, 0, time.UTC)
	limiter.now = func() time.Time { return base }

	var handlerCalls int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalls++
		w.WriteHeader(http.StatusOK)
	})
	reject := func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, RateLimitMessage, http.StatusTooManyRequests)
	}
	wrapped := limiter.Middleware(reject)(next)

	do := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
		req.RemoteAddr = "192.168.1.50:54321"
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)
		return rec.Code
	}

	if code := do(); code != http.StatusOK {
		t.Fatalf("request 1 status = %d, want 200", code)
	}
	if code := do(); code != http.StatusOK {
		t.Fatalf("request 2 status = %d, want 200", code)
	}
	if code := do(); code != http.StatusTooManyRequests {
		t.Fatalf("request 3 status = %d, want 429", code)
	}
	if handlerCalls != 2 {
		t.Errorf("handler reached %d times, want 2 (limited request must not reach it)", handlerCalls)
	}
}
