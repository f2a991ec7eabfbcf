// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package auth

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strings"

	"github.com/go-ldap/ldap/v3"

	"github.com/tomtom215/stockroom/internal/config"
	"github.com/tomtom215/stockroom/internal/logging"
)

// Directory verifies credentials against an external user directory.
// Implementations must treat any failure (bad credentials, unreachable
// server, timeout) as a bind rejection; the login path never distinguishes
// directory outages from wrong passwords in client-visible behavior.
type Directory interface {
	// Bind attempts a simple bind as the given user. A nil return means the
	// directory accepted the credentials.
	Bind(ctx context.Context, username, password string) error
}

// LDAPDirectory binds against an LDAP server using a DN template.
// The template contains a single %s placeholder replaced with the
// (escaped) username, e.g. "uid=%s,ou=people,dc=example,dc=org".
type LDAPDirectory struct {
	cfg *config.DirectoryConfig
}

// NewLDAPDirectory creates a directory authenticator from configuration.
func NewLDAPDirectory(cfg *config.DirectoryConfig) *LDAPDirectory {
	return &LDAPDirectory{cfg: cfg}
}

// Bind dials the configured LDAP URL, optionally upgrades to TLS via
// STARTTLS, and attempts a simple bind with the templated DN. The whole
// operation is bounded by the configured timeout (default 5s).
func (d *LDAPDirectory) Bind(ctx context.Context, username, password string) error {
	// LDAP forbids the empty simple bind (it would be an anonymous bind
	// and succeed vacuously).
	if strings.TrimSpace(password) == "" {
		return fmt.Errorf("empty password")
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("directory bind aborted: %w", err)
	}

	// The ldap client has no context-aware dial, so the dial and bind run
	// on their own goroutine, bounded by the configured timeout. A canceled
	// request returns immediately; the goroutine finishes on its own and
	// closes the connection it opened.
	done := make(chan error, 1)
	go func() { done <- d.bind(username, password) }()

	select {
	case <-ctx.Done():
		return fmt.Errorf("directory bind aborted: %w", ctx.Err())
	case err := <-done:
		return err
	}
}

func (d *LDAPDirectory) bind(username, password string) error {
	timeout := d.cfg.Timeout
	dialer := &net.Dialer{Timeout: timeout}

	conn, err := ldap.DialURL(d.cfg.URL, ldap.DialWithDialer(dialer))
	if err != nil {
		return fmt.Errorf("failed to dial directory: %w", err)
	}
	defer conn.Close()

	conn.SetTimeout(timeout)

	if d.cfg.StartTLS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: d.cfg.InsecureSkipVerify, //nolint:gosec // explicit opt-in for lab setups
			MinVersion:         tls.VersionTLS12,
		}
		if err := conn.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("starttls failed: %w", err)
		}
	}

	dn := fmt.Sprintf(d.cfg.UserDNTemplate, ldap.EscapeDN(strings.ToLower(username)))

	if err := conn.Bind(dn, password); err != nil {
		logging.Debug().Str("dn", dn).Err(err).Msg("Directory bind rejected")
		return fmt.Errorf("bind failed: %w", err)
	}

	return nil
}
