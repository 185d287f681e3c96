package store

import (
	"context"
	"fmt"

	"github.com/moneytree/moneytree/internal/domain"
	"github.com/moneytree/moneytree/internal/logger"
)

// DefaultCategories is the reference category set written on first use.
// IDs are stable so reseeding an already-seeded store is harmless.
var DefaultCategories = []domain.Category{
	{ID: "cat-food", Name: "Food", Color: "#EF4444", Icon: "🍔"},
	{ID: "cat-transport", Name: "Transportation", Color: "#3B82F6", Icon: "🚌"},
	{ID: "cat-entertain", Name: "Entertainment", Color: "#A855F7", Icon: "🎮"},
	{ID: "cat-groceries", Name: "Groceries", Color: "#10B981", Icon: "🛒"},
	{ID: "cat-bills", Name: "Bills & Utilities", Color: "#F59E0B", Icon: "💡"},
	{ID: "cat-income", Name: "Income", Color: "#22C55E", Icon: "💼"},
}

// EnsureSeedData writes DefaultCategories when the categories collection
// is empty. Concurrent callers attach to a single in-flight run through
// the store's singleflight group; the group drops the key once the run
// settles, so a wiped store seeds again on the next call. Individual row
// failures are swallowed — a partial earlier seed must not abort the rest.
func (s *Store) EnsureSeedData(ctx context.Context) error {
	_, err, _ := s.seed.Do("seed", func() (any, error) {
		existing, err := s.ListCategories(ctx)
		if err != nil {
			return nil, fmt.Errorf("EnsureSeedData: %w", err)
		}
		if len(existing) > 0 {
			return nil, nil
		}
		for _, c := range DefaultCategories {
			// Put, not Add: a leftover row with a seed id is overwritten
			// rather than failing the run.
			if err := s.PutCategory(ctx, c); err != nil {
				continue
			}
		}
		log := logger.FromContext(ctx)
		log.Info().Int("categories", len(DefaultCategories)).Msg("seeded default categories")
		return nil, nil
	})
	return err
}
