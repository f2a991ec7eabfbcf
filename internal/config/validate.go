// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package config

import (
	"fmt"
	"strings"
)

// supportedDrivers are the SQL backends the store layer can open.
var supportedDrivers = map[string]bool{
	"postgres":  true,
	"mysql":     true,
	"sqlite":    true,
	"sqlserver": true,
}

// Validate checks the configuration for values that would make the server
// unable to start or unsafe to run. Called once from Load.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	driver := strings.ToLower(c.Database.Driver)
	if !supportedDrivers[driver] {
		return fmt.Errorf("database.driver must be one of postgres, mysql, sqlite, sqlserver; got %q", c.Database.Driver)
	}
	c.Database.Driver = driver
	if c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required")
	}

	if c.Security.JWTSecret == "" {
		return fmt.Errorf("security.jwt_secret is required")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters")
	}
	if c.Security.TokenExpiry <= 0 {
		return fmt.Errorf("security.token_expiry must be positive")
	}
	if c.Security.LoginRateLimit < 1 {
		return fmt.Errorf("security.login_rate_limit must be at least 1")
	}
	if c.Security.LoginRateWindow <= 0 {
		return fmt.Errorf("security.login_rate_window must be positive")
	}

	if c.Directory.Enabled {
		if c.Directory.URL == "" {
			return fmt.Errorf("directory.url is required when directory auth is enabled")
		}
		if !strings.Contains(c.Directory.UserDNTemplate, "%s") {
			return fmt.Errorf("directory.user_dn_template must contain a %%s placeholder for the username")
		}
		if c.Directory.Timeout <= 0 {
			return fmt.Errorf("directory.timeout must be positive")
		}
	}

	return nil
}
