// Package store persists the tracker's collections in a local SQLite
// database: transactions, categories, accounts, budgets, settings and
// receipts. The schema is versioned; opening the store applies any
// pending migrations in place without touching existing data.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	_ "modernc.org/sqlite"

	"golang.org/x/sync/singleflight"

	"github.com/moneytree/moneytree/internal/domain"
	"github.com/moneytree/moneytree/internal/logger"
)

// schemaVersion is the current schema version, tracked via
// PRAGMA user_version. Bump it when a migration step is appended.
const schemaVersion = 2

// schemaMigrations returns the migration steps, one list of statements
// per version starting at version 1. Each statement is idempotent so a
// step can safely run against a database that already has its objects.
func schemaMigrations() [][]string {
	return [][]string{
		// Version 1: initial collections.
		{
			`CREATE TABLE IF NOT EXISTS transactions (
				id          TEXT PRIMARY KEY,
				type        TEXT NOT NULL,
				amount      TEXT NOT NULL DEFAULT '0',
				date        TEXT NOT NULL DEFAULT '',
				category    TEXT NOT NULL DEFAULT '',
				account     TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				transfer_id TEXT NOT NULL DEFAULT '',
				direction   TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions(date)`,
			`CREATE INDEX IF NOT EXISTS idx_transactions_category ON transactions(category)`,
			`CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account)`,

			`CREATE TABLE IF NOT EXISTS categories (
				id    TEXT PRIMARY KEY,
				name  TEXT NOT NULL DEFAULT '',
				color TEXT NOT NULL DEFAULT '',
				icon  TEXT NOT NULL DEFAULT ''
			)`,

			`CREATE TABLE IF NOT EXISTS accounts (
				id      TEXT PRIMARY KEY,
				name    TEXT NOT NULL DEFAULT '',
				type    TEXT NOT NULL DEFAULT '',
				balance TEXT NOT NULL DEFAULT '0',
				color   TEXT NOT NULL DEFAULT ''
			)`,

			`CREATE TABLE IF NOT EXISTS settings (
				key   TEXT PRIMARY KEY,
				value TEXT NOT NULL DEFAULT 'null'
			)`,

			`CREATE TABLE IF NOT EXISTS receipts (
				id             TEXT PRIMARY KEY,
				transaction_id TEXT NOT NULL DEFAULT '',
				mime_type      TEXT NOT NULL DEFAULT '',
				data_url       TEXT NOT NULL DEFAULT '',
				created_at     TEXT NOT NULL DEFAULT ''
			)`,
			`CREATE INDEX IF NOT EXISTS idx_receipts_transaction ON receipts(transaction_id)`,
		},
		// Version 2: budgets collection.
		{
			`CREATE TABLE IF NOT EXISTS budgets (
				id           TEXT PRIMARY KEY,
				category     TEXT NOT NULL DEFAULT '',
				limit_amount TEXT NOT NULL DEFAULT '0',
				period       TEXT NOT NULL DEFAULT '',
				month        TEXT NOT NULL DEFAULT ''
			)`,
		},
	}
}

// Store is the SQLite-backed record store. One Store is meant to be
// opened per process and reused; it is safe for concurrent use.
type Store struct {
	db     *sql.DB
	closed atomic.Bool
	seed   singleflight.Group
}

// Open opens or creates the database at path and brings its schema up to
// the current version. The parent directory is created when missing.
func Open(ctx context.Context, path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("Open: create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("Open: %w: %v", domain.ErrStoreUnavailable, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("Open: %w: %v", domain.ErrStoreUnavailable, err)
	}
	// database/sql pooling would hand out independent connections;
	// serialize through one so writes to a key queue up in order.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// migrate applies pending schema steps. Each version transition commits
// atomically together with its user_version bump, so the step runs
// exactly once per transition.
func (s *Store) migrate(ctx context.Context) error {
	var current int
	if err := s.db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&current); err != nil {
		return fmt.Errorf("migrate: read user_version: %w", err)
	}

	steps := schemaMigrations()
	for v := current + 1; v <= schemaVersion; v++ {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("migrate: begin version %d: %w", v, err)
		}
		for _, stmt := range steps[v-1] {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				tx.Rollback()
				return fmt.Errorf("migrate: version %d: %w", v, err)
			}
		}
		// PRAGMA does not accept bind parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, v)); err != nil {
			tx.Rollback()
			return fmt.Errorf("migrate: set user_version %d: %w", v, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migrate: commit version %d: %w", v, err)
		}
		log := logger.FromContext(ctx)
		log.Debug().Int("version", v).Msg("schema migrated")
	}
	return nil
}

// Close closes the store. Operations issued afterwards fail with
// domain.ErrStoreUnavailable.
func (s *Store) Close() error {
	s.closed.Store(true)
	return s.db.Close()
}

// available guards every operation with the closed flag.
func (s *Store) available() error {
	if s.closed.Load() {
		return domain.ErrStoreUnavailable
	}
	return nil
}

// wrapWrite maps driver failures onto the domain error taxonomy.
func wrapWrite(op string, err error) error {
	if err == nil {
		return nil
	}
	if strings.Contains(err.Error(), "UNIQUE constraint") {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

var _ Recorder = (*Store)(nil)
