package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/moneytree/moneytree/internal/domain"
)

// GetSetting returns the raw JSON value stored under key, or
// domain.ErrNotFound when the key has never been set.
func (s *Store) GetSetting(ctx context.Context, key string) (json.RawMessage, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("GetSetting %q: %w", key, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("GetSetting %q: %w", key, err)
	}
	return json.RawMessage(value), nil
}

// SetSetting stores value under key, JSON-encoded, replacing any
// previous value. Settings are singletons per key.
func (s *Store) SetSetting(ctx context.Context, key string, value any) error {
	if err := s.available(); err != nil {
		return err
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("SetSetting %q: %w", key, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, string(encoded))
	return wrapWrite("SetSetting", err)
}
