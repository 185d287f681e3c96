package store

import (
	"context"
	"fmt"

	"github.com/moneytree/moneytree/internal/domain"
)

// AddReceipt inserts a new receipt.
func (s *Store) AddReceipt(ctx context.Context, r domain.Receipt) error {
	if err := s.available(); err != nil {
		return err
	}
	if r.ID == "" {
		return fmt.Errorf("AddReceipt: missing id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO receipts (id, transaction_id, mime_type, data_url, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, r.ID, r.TransactionID, r.MimeType, r.DataURL, r.CreatedAt)
	return wrapWrite("AddReceipt", err)
}

// PutReceipt upserts a receipt.
func (s *Store) PutReceipt(ctx context.Context, r domain.Receipt) error {
	if err := s.available(); err != nil {
		return err
	}
	if r.ID == "" {
		return fmt.Errorf("PutReceipt: missing id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO receipts (id, transaction_id, mime_type, data_url, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			transaction_id = excluded.transaction_id,
			mime_type      = excluded.mime_type,
			data_url       = excluded.data_url,
			created_at     = excluded.created_at
	`, r.ID, r.TransactionID, r.MimeType, r.DataURL, r.CreatedAt)
	return wrapWrite("PutReceipt", err)
}

// DeleteReceipt removes a receipt by id; missing ids are a no-op.
func (s *Store) DeleteReceipt(ctx context.Context, id string) error {
	if err := s.available(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM receipts WHERE id = ?`, id)
	return wrapWrite("DeleteReceipt", err)
}

// ListReceipts returns all receipts in unspecified order.
func (s *Store) ListReceipts(ctx context.Context) ([]domain.Receipt, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, transaction_id, mime_type, data_url, created_at FROM receipts`)
	if err != nil {
		return nil, fmt.Errorf("ListReceipts: %w", err)
	}
	defer rows.Close()

	var out []domain.Receipt
	for rows.Next() {
		var r domain.Receipt
		if err := rows.Scan(&r.ID, &r.TransactionID, &r.MimeType, &r.DataURL, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("ListReceipts: scan: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
