// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

// Package database provides the relational store behind a switchable driver
// layer. The backend (postgres, mysql, sqlite or sqlserver) is selected once
// at startup from configuration; all queries are written with ? bindvars and
// rebound to the backend's placeholder style via sqlx.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/microsoft/go-mssqldb"

	"github.com/tomtom215/stockroom/internal/config"
	"github.com/tomtom215/stockroom/internal/logging"
	"github.com/tomtom215/stockroom/internal/metrics"
)

// Sentinel errors returned by store operations. Callers map these to the
// HTTP error taxonomy at the request boundary.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("database: not found")

	// ErrDuplicate indicates a uniqueness violation (e.g. username taken).
	ErrDuplicate = errors.New("database: duplicate")

	// ErrInvalidFilter indicates a filter column outside the whitelist.
	ErrInvalidFilter = errors.New("database: invalid filter column")
)

// driverNames maps the configured backend to the registered sql driver.
var driverNames = map[string]string{
	"postgres":  "pgx",
	"mysql":     "mysql",
	"sqlite":    "sqlite3",
	"sqlserver": "sqlserver",
}

// DB wraps the sqlx connection for the selected backend and provides all
// data access methods for users, items, locations and transactions.
type DB struct {
	conn    *sqlx.DB
	backend string
}

// New opens a connection to the configured backend and verifies it with a
// ping. The backend is fixed for the lifetime of the process.
func New(cfg *config.DatabaseConfig) (*DB, error) {
	driver, ok := driverNames[cfg.Driver]
	if !ok {
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	conn, err := sqlx.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.Driver, err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.Driver, err)
	}

	logging.Info().
		Str("driver", cfg.Driver).
		Int("max_open_conns", cfg.MaxOpenConns).
		Msg("Database connection established")

	return &DB{conn: conn, backend: cfg.Driver}, nil
}

// Backend returns the configured backend name (postgres, mysql, sqlite,
// sqlserver).
func (db *DB) Backend() string {
	return db.backend
}

// Close closes the underlying connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping verifies the connection is still alive. Used by the health endpoint.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// rebind converts ? bindvars to the backend's placeholder style.
func (db *DB) rebind(query string) string {
	return db.conn.Rebind(query)
}

// limitClause returns the backend's row-limiting syntax. SQL Server has no
// LIMIT keyword; it requires OFFSET/FETCH after ORDER BY.
func (db *DB) limitClause(n int) string {
	if db.backend == "sqlserver" {
		return fmt.Sprintf("OFFSET 0 ROWS FETCH NEXT %d ROWS ONLY", n)
	}
	return fmt.Sprintf("LIMIT %d", n)
}

// observe feeds the db_query_duration histogram. Store methods call it as
// defer observe("operation", time.Now()).
func observe(operation string, start time.Time) {
	metrics.ObserveDBQuery(operation, time.Since(start))
}

// get runs a single-row query, mapping sql.ErrNoRows to ErrNotFound.
func (db *DB) get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	err := db.conn.GetContext(ctx, dest, db.rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}
