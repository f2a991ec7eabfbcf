// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	migratesqlserver "github.com/golang-migrate/migrate/v4/database/sqlserver"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/tomtom215/stockroom/internal/logging"
)

//go:embed migrations/postgres/*.sql migrations/mysql/*.sql migrations/sqlite/*.sql migrations/sqlserver/*.sql
var migrationFS embed.FS

// Migrate applies all pending schema migrations for the selected backend.
// Each backend carries its own dialect under migrations/<backend>/.
func (db *DB) Migrate() error {
	src, err := iofs.New(migrationFS, "migrations/"+db.backend)
	if err != nil {
		return fmt.Errorf("failed to load migrations for %s: %w", db.backend, err)
	}

	var driver database.Driver
	switch db.backend {
	case "postgres":
		driver, err = migratepgx.WithInstance(db.conn.DB, &migratepgx.Config{})
	case "mysql":
		driver, err = migratemysql.WithInstance(db.conn.DB, &migratemysql.Config{})
	case "sqlite":
		driver, err = migratesqlite.WithInstance(db.conn.DB, &migratesqlite.Config{})
	case "sqlserver":
		driver, err = migratesqlserver.WithInstance(db.conn.DB, &migratesqlserver.Config{})
	default:
		return fmt.Errorf("no migration driver for backend %q", db.backend)
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, db.backend, driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}

	logging.Info().
		Str("backend", db.backend).
		Uint("version", version).
		Bool("dirty", dirty).
		Msg("Database migrations applied")

	return nil
}
