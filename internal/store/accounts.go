package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/moneytree/moneytree/internal/domain"
)

// AddAccount inserts a new account.
func (s *Store) AddAccount(ctx context.Context, a domain.Account) error {
	if err := s.available(); err != nil {
		return err
	}
	if a.ID == "" {
		return fmt.Errorf("AddAccount: missing id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name, type, balance, color) VALUES (?, ?, ?, ?, ?)
	`, a.ID, a.Name, a.Type, a.Balance.String(), a.Color)
	return wrapWrite("AddAccount", err)
}

// PutAccount upserts an account.
func (s *Store) PutAccount(ctx context.Context, a domain.Account) error {
	if err := s.available(); err != nil {
		return err
	}
	if a.ID == "" {
		return fmt.Errorf("PutAccount: missing id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, name, type, balance, color) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name    = excluded.name,
			type    = excluded.type,
			balance = excluded.balance,
			color   = excluded.color
	`, a.ID, a.Name, a.Type, a.Balance.String(), a.Color)
	return wrapWrite("PutAccount", err)
}

// DeleteAccount removes an account by id; missing ids are a no-op.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	if err := s.available(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
	return wrapWrite("DeleteAccount", err)
}

// ListAccounts returns all accounts in unspecified order.
func (s *Store) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, type, balance, color FROM accounts`)
	if err != nil {
		return nil, fmt.Errorf("ListAccounts: %w", err)
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		var a domain.Account
		var balance string
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &balance, &a.Color); err != nil {
			return nil, fmt.Errorf("ListAccounts: scan: %w", err)
		}
		a.Balance, err = decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("ListAccounts: balance %q: %w", balance, err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
