package store

import (
	"context"
	"fmt"

	"github.com/moneytree/moneytree/internal/domain"
)

// AddCategory inserts a new category.
func (s *Store) AddCategory(ctx context.Context, c domain.Category) error {
	if err := s.available(); err != nil {
		return err
	}
	if c.ID == "" {
		return fmt.Errorf("AddCategory: missing id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, color, icon) VALUES (?, ?, ?, ?)
	`, c.ID, c.Name, c.Color, c.Icon)
	return wrapWrite("AddCategory", err)
}

// PutCategory upserts a category.
func (s *Store) PutCategory(ctx context.Context, c domain.Category) error {
	if err := s.available(); err != nil {
		return err
	}
	if c.ID == "" {
		return fmt.Errorf("PutCategory: missing id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, color, icon) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name  = excluded.name,
			color = excluded.color,
			icon  = excluded.icon
	`, c.ID, c.Name, c.Color, c.Icon)
	return wrapWrite("PutCategory", err)
}

// DeleteCategory removes a category by id; missing ids are a no-op.
// Transactions referencing the category's name keep it — the join is by
// name and dangling references are ignored at read time.
func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	if err := s.available(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	return wrapWrite("DeleteCategory", err)
}

// ListCategories returns all categories in unspecified order.
func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if err := s.available(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color, icon FROM categories`)
	if err != nil {
		return nil, fmt.Errorf("ListCategories: %w", err)
	}
	defer rows.Close()

	var out []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Color, &c.Icon); err != nil {
			return nil, fmt.Errorf("ListCategories: scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
