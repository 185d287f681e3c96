package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/moneytree/moneytree/internal/domain"
)

// AddBudget inserts a new budget.
func (s *Store) AddBudget(ctx context.Context, b domain.Budget) error {
	if err := s.available(); err != nil {
		return err
	}
	if b.ID == "" {
		return fmt.Errorf("AddBudget: missing id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (id, category, limit_amount, period, month) VALUES (?, ?, ?, ?, ?)
	`, b.ID, b.Category, b.Limit.String(), b.Period, b.Month)
	return wrapWrite("AddBudget", err)
}

// PutBudget upserts a budget.
func (s *Store) PutBudget(ctx context.Context, b domain.Budget) error {
	if err := s.available(); err != nil {
		return err
	}
	if b.ID == "" {
		return fmt.Errorf("PutBudget: missing id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO budgets (id, category, limit_amount, period, month) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			category     = excluded.category,
			limit_amount = excluded.limit_amount,
			period       = excluded.period,
			month        = excluded.month
	`, b.ID, b.Category, b.Limit.String(), b.Period, b.Month)
	return wrapWrite("PutBudget", err)
}

// DeleteBudget removes a budget by id; missing ids are a no-op.
func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	if err := s.available(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	return wrapWrite("DeleteBudget", err)
}

// ListBudgets returns all budgets in unspecified order.
func (s *Store) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, category, limit_amount, period, month FROM budgets`)
	if err != nil {
		return nil, fmt.Errorf("ListBudgets: %w", err)
	}
	defer rows.Close()

	var out []domain.Budget
	for rows.Next() {
		var b domain.Budget
		var limit string
		if err := rows.Scan(&b.ID, &b.Category, &limit, &b.Period, &b.Month); err != nil {
			return nil, fmt.Errorf("ListBudgets: scan: %w", err)
		}
		b.Limit, err = decimal.NewFromString(limit)
		if err != nil {
			return nil, fmt.Errorf("ListBudgets: limit %q: %w", limit, err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
