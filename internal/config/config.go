// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

// Package config loads and validates the Stockroom configuration.
//
// Configuration is loaded via Koanf v2 with layered sources, highest
// priority last:
//
//  1. Built-in defaults
//  2. Config file (config.yaml, or STOCKROOM_CONFIG_PATH)
//  3. Environment variables (STOCKROOM_ prefix, e.g.
//     STOCKROOM_SECURITY_JWT_SECRET maps to security.jwt_secret)
//
// The resulting Config object is constructed once at startup and injected
// into the components that need it; nothing reads ambient process state
// after boot.
package config

import "time"

// Config is the root configuration object.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Security  SecurityConfig  `koanf:"security"`
	Directory DirectoryConfig `koanf:"directory"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// DatabaseConfig selects the SQL backend. Driver is one of
// postgres, mysql, sqlite, sqlserver; chosen once at startup.
type DatabaseConfig struct {
	Driver          string        `koanf:"driver"`
	DSN             string        `koanf:"dsn"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	Migrate         bool          `koanf:"migrate"`
}

// SecurityConfig holds authentication and rate limiting settings.
type SecurityConfig struct {
	// JWTSecret signs session tokens. Required, 32+ characters.
	JWTSecret string `koanf:"jwt_secret"`

	// TokenExpiry is the fixed lifetime of issued tokens.
	TokenExpiry time.Duration `koanf:"token_expiry"`

	// BcryptCost is the bcrypt work factor for locally stored passwords.
	BcryptCost int `koanf:"bcrypt_cost"`

	// LoginRateLimit / LoginRateWindow bound login attempts per client
	// address with a fixed-window counter.
	LoginRateLimit  int           `koanf:"login_rate_limit"`
	LoginRateWindow time.Duration `koanf:"login_rate_window"`

	// APIRateLimit / APIRateWindow bound all other API endpoints.
	APIRateLimit  int           `koanf:"api_rate_limit"`
	APIRateWindow time.Duration `koanf:"api_rate_window"`

	RateLimitDisabled bool     `koanf:"rate_limit_disabled"`
	CORSOrigins       []string `koanf:"cors_origins"`

	// BootstrapAdminUsername / BootstrapAdminPassword seed a local admin
	// account at startup when no such user exists. Registration of further
	// users goes through POST /api/auth/register.
	BootstrapAdminUsername string `koanf:"bootstrap_admin_username"`
	BootstrapAdminPassword string `koanf:"bootstrap_admin_password"`
}

// DirectoryConfig holds settings for delegated (LDAP) credential
// verification, used for accounts not flagged as local.
type DirectoryConfig struct {
	Enabled bool `koanf:"enabled"`

	// URL is the directory server URL, e.g. ldap://ldap.example.org:389
	// or ldaps://ldap.example.org:636.
	URL string `koanf:"url"`

	// UserDNTemplate builds the bind DN from the normalized username,
	// e.g. "uid=%s,ou=people,dc=example,dc=org".
	UserDNTemplate string `koanf:"user_dn_template"`

	// StartTLS upgrades plain ldap:// connections before binding.
	StartTLS bool `koanf:"start_tls"`

	// Timeout bounds the directory round trip; on expiry the login fails
	// as invalid credentials rather than a server error.
	Timeout time.Duration `koanf:"timeout"`

	// InsecureSkipVerify disables TLS certificate verification.
	// Intended for lab environments only.
	InsecureSkipVerify bool `koanf:"insecure_skip_verify"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values applied.
// Defaults are overridden by config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            3001,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "file:stockroom.db?_fk=1",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			Migrate:         true,
		},
		Security: SecurityConfig{
			TokenExpiry:     time.Hour,
			BcryptCost:      12,
			LoginRateLimit:  10,
			LoginRateWindow: time.Minute,
			APIRateLimit:    100,
			APIRateWindow:   time.Minute,
			CORSOrigins:     []string{},
		},
		Directory: DirectoryConfig{
			Enabled:  false,
			StartTLS: true,
			Timeout:  5 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
