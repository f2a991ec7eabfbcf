// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	loginSuccessTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stockroom",
		Subsystem: "auth",
		Name:      "login_success_total",
		Help:      "Successful logins by credential backend.",
	}, []string{"backend"})

	loginFailureTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stockroom",
		Subsystem: "auth",
		Name:      "login_failure_total",
		Help:      "Failed login attempts by server-side reason.",
	}, []string{"reason"})

	loginRateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stockroom",
		Subsystem: "auth",
		Name:      "login_rate_limited_total",
		Help:      "Login requests rejected by the fixed-window limiter.",
	})

	tokenRejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stockroom",
		Subsystem: "auth",
		Name:      "token_rejected_total",
		Help:      "Bearer tokens rejected by the auth middleware.",
	})
)

func recordLoginSuccess(backend string) { loginSuccessTotal.WithLabelValues(backend).Inc() }
func recordLoginFailure(reason string)  { loginFailureTotal.WithLabelValues(reason).Inc() }
func recordLoginRateLimited()           { loginRateLimitedTotal.Inc() }
func recordTokenRejected()              { tokenRejectedTotal.Inc() }
