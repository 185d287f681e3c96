package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/moneytree/moneytree/internal/domain"
)

// AddTransaction inserts a new transaction. The id must be set by the
// caller and not exist yet.
func (s *Store) AddTransaction(ctx context.Context, t domain.Transaction) error {
	if err := s.available(); err != nil {
		return err
	}
	if t.ID == "" {
		return fmt.Errorf("AddTransaction: missing id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, type, amount, date, category, account, description, transfer_id, direction)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, string(t.Type), t.Amount.String(), t.Date, t.Category, t.Account, t.Description, t.TransferID, string(t.Direction))
	return wrapWrite("AddTransaction", err)
}

// PutTransaction replaces the whole record, inserting when absent.
func (s *Store) PutTransaction(ctx context.Context, t domain.Transaction) error {
	if err := s.available(); err != nil {
		return err
	}
	if t.ID == "" {
		return fmt.Errorf("PutTransaction: missing id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO transactions (id, type, amount, date, category, account, description, transfer_id, direction)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			type        = excluded.type,
			amount      = excluded.amount,
			date        = excluded.date,
			category    = excluded.category,
			account     = excluded.account,
			description = excluded.description,
			transfer_id = excluded.transfer_id,
			direction   = excluded.direction
	`, t.ID, string(t.Type), t.Amount.String(), t.Date, t.Category, t.Account, t.Description, t.TransferID, string(t.Direction))
	return wrapWrite("PutTransaction", err)
}

// DeleteTransaction removes a transaction by id. When the target is a
// transfer leg, both legs of the pair are removed together. Deleting a
// missing id is a no-op.
func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.available(); err != nil {
		return err
	}
	var transferID string
	err := s.db.QueryRowContext(ctx,
		`SELECT transfer_id FROM transactions WHERE id = ?`, id).Scan(&transferID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("DeleteTransaction: %w", err)
	}
	if transferID != "" {
		_, err = s.db.ExecContext(ctx, `DELETE FROM transactions WHERE transfer_id = ?`, transferID)
	} else {
		_, err = s.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	}
	return wrapWrite("DeleteTransaction", err)
}

// ListTransactions returns transactions matching the filter, all of them
// for a zero filter. Order is unspecified.
func (s *Store) ListTransactions(ctx context.Context, f TransactionFilter) ([]domain.Transaction, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	query := `SELECT id, type, amount, date, category, account, description, transfer_id, direction
		FROM transactions WHERE 1=1`
	var args []any
	if f.Date != "" {
		query += ` AND date = ?`
		args = append(args, f.Date)
	}
	if f.Category != "" {
		query += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Account != "" {
		query += ` AND account = ?`
		args = append(args, f.Account)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ListTransactions: %w", err)
	}
	defer rows.Close()

	var out []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		var typ, amount, direction string
		if err := rows.Scan(&t.ID, &typ, &amount, &t.Date, &t.Category, &t.Account, &t.Description, &t.TransferID, &direction); err != nil {
			return nil, fmt.Errorf("ListTransactions: scan: %w", err)
		}
		t.Type = domain.TransactionType(typ)
		t.Direction = domain.Direction(direction)
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("ListTransactions: amount %q: %w", amount, err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// AddTransfer writes both legs of a transfer in one database transaction
// so the pair commits atomically or not at all.
func (s *Store) AddTransfer(ctx context.Context, tr TransferRequest) (domain.Transaction, domain.Transaction, error) {
	var none domain.Transaction
	if err := s.available(); err != nil {
		return none, none, err
	}
	if tr.From == "" || tr.To == "" {
		return none, none, fmt.Errorf("AddTransfer: both accounts are required")
	}
	if tr.From == tr.To {
		return none, none, fmt.Errorf("AddTransfer: source and destination are the same account")
	}
	if tr.Amount.IsNegative() {
		return none, none, fmt.Errorf("AddTransfer: negative amount %s", tr.Amount)
	}

	transferID := uuid.NewString()
	base := domain.Transaction{
		Type:        domain.Transfer,
		Amount:      tr.Amount,
		Date:        tr.Date,
		Description: tr.Description,
		TransferID:  transferID,
	}
	outLeg, inLeg := base, base
	outLeg.ID, outLeg.Account, outLeg.Direction = uuid.NewString(), tr.From, domain.Out
	inLeg.ID, inLeg.Account, inLeg.Direction = uuid.NewString(), tr.To, domain.In

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return none, none, fmt.Errorf("AddTransfer: %w", err)
	}
	for _, leg := range []domain.Transaction{outLeg, inLeg} {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO transactions (id, type, amount, date, category, account, description, transfer_id, direction)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, leg.ID, string(leg.Type), leg.Amount.String(), leg.Date, leg.Category, leg.Account, leg.Description, leg.TransferID, string(leg.Direction)); err != nil {
			tx.Rollback()
			return none, none, wrapWrite("AddTransfer", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return none, none, fmt.Errorf("AddTransfer: commit: %w", err)
	}
	return outLeg, inLeg, nil
}
