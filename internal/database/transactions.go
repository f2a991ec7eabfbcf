// Stockroom - Inventory and Storage Location Tracking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stockroom

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/stockroom/internal/models"
)

// AppendTransaction records a mutating or report request in the append-only
// audit log. Failures here are logged by callers but never fail the request.
func (db *DB) AppendTransaction(ctx context.Context, txn *models.Transaction) error {
	defer observe("append_transaction", time.Now())

	if txn.ID == "" {
		txn.ID = uuid.NewString()
	}
	txn.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx, db.rebind(
		`INSERT INTO transactions (id, route, payload, username, created_at)
		 VALUES (?, ?, ?, ?, ?)`),
		txn.ID, txn.Route, txn.Payload, txn.Username, txn.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append transaction: %w", err)
	}
	return nil
}

// ListTransactions returns audit records newest-first, narrowed by the
// optional filter. Limit defaults to 100 and is capped at 1000.
func (db *DB) ListTransactions(ctx context.Context, filter *models.TransactionFilter) ([]models.Transaction, error) {
	defer observe("list_transactions", time.Now())

	query := `SELECT id, route, payload, username, created_at FROM transactions`
	var args []interface{}
	var where []string

	if filter != nil {
		if filter.Username != "" {
			where = append(where, `username = ?`)
			args = append(args, filter.Username)
		}
		if filter.Route != "" {
			where = append(where, `route = ?`)
			args = append(args, filter.Route)
		}
		if !filter.Since.IsZero() {
			where = append(where, `created_at >= ?`)
			args = append(args, filter.Since)
		}
	}
	for i, clause := range where {
		if i == 0 {
			query += ` WHERE ` + clause
		} else {
			query += ` AND ` + clause
		}
	}

	limit := 100
	if filter != nil && filter.Limit > 0 {
		limit = filter.Limit
	}
	if limit > 1000 {
		limit = 1000
	}
	query += ` ORDER BY created_at DESC ` + db.limitClause(limit)

	txns := []models.Transaction{}
	if err := db.conn.SelectContext(ctx, &txns, db.rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}
