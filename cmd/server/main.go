// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

// Package main is the entry point for the Stockroom server.
//
// Stockroom is a self-hosted inventory tracker: what you own, how many,
// and where it lives (room and storage location), with a JWT-protected
// REST API and live WebSocket change notifications.
//
// Startup order:
//
//  1. Configuration: Koanf v2 layered load (defaults, config.yaml,
//     STOCKROOM_* environment variables)
//  2. Logging: zerolog, JSON or console format
//  3. Database: open the configured SQL backend and apply migrations
//  4. Bootstrap admin: seed a local admin account if configured and absent
//  5. WebSocket hub, router and HTTP server
//  6. Supervisor tree: hub and server supervised with restart/backoff
//
// The server shuts down gracefully on SIGINT and SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/stockroom/internal/api"
	"github.com/tomtom215/stockroom/internal/auth"
	"github.com/tomtom215/stockroom/internal/config"
	"github.com/tomtom215/stockroom/internal/database"
	"github.com/tomtom215/stockroom/internal/logging"
	"github.com/tomtom215/stockroom/internal/models"
	"github.com/tomtom215/stockroom/internal/supervisor"
	"github.com/tomtom215/stockroom/internal/websocket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("driver", cfg.Database.Driver).
		Int("port", cfg.Server.Port).
		Msg("Starting Stockroom")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() { _ = db.Close() }()

	if cfg.Database.Migrate {
		if err := db.Migrate(); err != nil {
			logging.Fatal().Err(err).Msg("Failed to apply migrations")
		}
	}

	if err := bootstrapAdmin(context.Background(), cfg, db); err != nil {
		logging.Fatal().Err(err).Msg("Failed to bootstrap admin account")
	}

	jwtManager, err := auth.NewJWTManager(&cfg.Security)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize JWT manager")
	}

	var directory auth.Directory
	if cfg.Directory.Enabled {
		directory = auth.NewLDAPDirectory(&cfg.Directory)
		logging.Info().Str("url", cfg.Directory.URL).Msg("Directory authentication enabled")
	}

	authenticator := auth.NewAuthenticator(db, directory)
	loginLimiter := auth.NewLoginLimiter(
		auth.NewMemoryCounterStore(),
		cfg.Security.LoginRateLimit,
		cfg.Security.LoginRateWindow,
	)

	hub := websocket.NewHub()
	handlers := api.NewHandlers(cfg, db, authenticator, jwtManager, hub)
	router := api.NewRouter(cfg, handlers, auth.NewMiddleware(jwtManager), loginLimiter)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddMessagingService(supervisor.NewHubService(hub))
	tree.AddAPIService(supervisor.NewHTTPService(server, cfg.Server.ShutdownTimeout))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Fatal().Err(err).Msg("Supervisor tree failed")
	}

	logging.Info().Msg("Stockroom stopped")
}

// bootstrapAdmin seeds a local admin account from configuration when no
// user with that name exists yet. Without it a fresh install would have no
// way to reach the admin-gated register endpoint.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, db *database.DB) error {
	username := cfg.Security.BootstrapAdminUsername
	password := cfg.Security.BootstrapAdminPassword
	if username == "" || password == "" {
		count, err := db.CountUsers(ctx)
		if err != nil {
			return err
		}
		if count == 0 {
			logging.Warn().Msg("No users exist and no bootstrap admin configured; registration will be unreachable")
		}
		return nil
	}

	if _, err := db.GetUserByUsername(ctx, username); err == nil {
		return nil
	} else if !errors.Is(err, database.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password, cfg.Security.BcryptCost)
	if err != nil {
		return err
	}
	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		IsLocal:      true,
	}
	if err := db.CreateUser(ctx, user); err != nil && !errors.Is(err, database.ErrDuplicate) {
		return err
	}

	logging.Info().Str("username", user.Username).Msg("Bootstrap admin account created")
	return nil
}
