// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package auth

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// RateLimitMessage is the fixed advisory returned with every 429 from the
// login limiter.
const RateLimitMessage = "Too many login attempts from this IP, please try again after a 60 second pause"

// CounterStore counts requests per key within a fixed window. The default
// implementation is an in-process map; the interface exists so a shared
// store can be swapped in without touching the limiter.
type CounterStore interface {
	// Increment adds one request for key in the window starting at
	// windowStart and returns the new count for that window.
	Increment(key string, windowStart time.Time) (int, error)
}

// MemoryCounterStore is a mutex-guarded in-process CounterStore.
// Counts for past windows are pruned on the fly: whenever a key rolls into
// a new window its previous count is discarded, so memory stays bounded by
// the number of distinct active keys.
type MemoryCounterStore struct {
	mu      sync.Mutex
	windows map[string]*windowCount
}

type windowCount struct {
	start time.Time
	count int
}

// NewMemoryCounterStore creates an empty in-process counter store.
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{windows: make(map[string]*windowCount)}
}

// Increment implements CounterStore.
func (s *MemoryCounterStore) Increment(key string, windowStart time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || !w.start.Equal(windowStart) {
		w = &windowCount{start: windowStart}
		s.windows[key] = w
	}
	w.count++
	return w.count, nil
}

// LoginLimiter enforces a fixed-window request limit per client IP on the
// login endpoint. The window resets entirely at each boundary, so a burst
// spanning the boundary can briefly exceed the average rate; that is the
// accepted fixed-window trade-off.
type LoginLimiter struct {
	store  CounterStore
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewLoginLimiter creates a limiter allowing limit requests per window per
// key, backed by the given counter store.
func NewLoginLimiter(store CounterStore, limit int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

// Allow records one request for key and reports whether it is within the
// limit for the current window. Counter store failures fail open: login
// availability is preferred over strict limiting.
func (l *LoginLimiter) Allow(key string) bool {
	windowStart := l.now().Truncate(l.window)
	count, err := l.store.Increment(key, windowStart)
	if err != nil {
		return true
	}
	return count <= l.limit
}

// Middleware wraps a handler with the login rate limit, keyed by client IP.
// Runs before credential verification; rejected requests never reach the
// authenticator. The 429 body is written by the provided responder so the
// response envelope stays consistent with the rest of the API.
func (l *LoginLimiter) Middleware(reject func(w http.ResponseWriter, r *http.Request)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow(clientIP(r)) {
				recordLoginRateLimited()
				reject(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP extracts the client address, relying on upstream middleware
// (chi middleware.RealIP) to have resolved proxy headers into RemoteAddr.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
