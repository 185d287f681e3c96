// Package memory is an in-memory implementation of store.Recorder.
// It keeps records in maps and is safe for concurrent use. Data is lost
// when the process exits — it exists for tests and dry-run imports.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"golang.org/x/sync/singleflight"

	"github.com/moneytree/moneytree/internal/domain"
	"github.com/moneytree/moneytree/internal/store"
)

// Store is the map-backed record store.
type Store struct {
	mu           sync.RWMutex
	transactions map[string]domain.Transaction
	categories   map[string]domain.Category
	accounts     map[string]domain.Account
	budgets      map[string]domain.Budget
	receipts     map[string]domain.Receipt
	settings     map[string]json.RawMessage

	seed singleflight.Group
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		transactions: make(map[string]domain.Transaction),
		categories:   make(map[string]domain.Category),
		accounts:     make(map[string]domain.Account),
		budgets:      make(map[string]domain.Budget),
		receipts:     make(map[string]domain.Receipt),
		settings:     make(map[string]json.RawMessage),
	}
}

func add[T any](m map[string]T, op, id string, v T) error {
	if id == "" {
		return fmt.Errorf("%s: missing id", op)
	}
	if _, exists := m[id]; exists {
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	m[id] = v
	return nil
}

func list[T any](m map[string]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	return out
}

func (s *Store) AddTransaction(ctx context.Context, t domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return add(s.transactions, "AddTransaction", t.ID, t)
}

func (s *Store) PutTransaction(ctx context.Context, t domain.Transaction) error {
	if t.ID == "" {
		return fmt.Errorf("PutTransaction: missing id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[t.ID] = t
	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.transactions[id]
	if !ok {
		return nil
	}
	if t.TransferID != "" {
		for key, other := range s.transactions {
			if other.TransferID == t.TransferID {
				delete(s.transactions, key)
			}
		}
		return nil
	}
	delete(s.transactions, id)
	return nil
}

func (s *Store) ListTransactions(ctx context.Context, f store.TransactionFilter) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Transaction
	for _, t := range s.transactions {
		if f.Date != "" && t.Date != f.Date {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if f.Account != "" && t.Account != f.Account {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func (s *Store) AddTransfer(ctx context.Context, tr store.TransferRequest) (domain.Transaction, domain.Transaction, error) {
	var none domain.Transaction
	if tr.From == "" || tr.To == "" {
		return none, none, fmt.Errorf("AddTransfer: both accounts are required")
	}
	if tr.From == tr.To {
		return none, none, fmt.Errorf("AddTransfer: source and destination are the same account")
	}
	if tr.Amount.IsNegative() {
		return none, none, fmt.Errorf("AddTransfer: negative amount %s", tr.Amount)
	}
	base := domain.Transaction{
		Type:        domain.Transfer,
		Amount:      tr.Amount,
		Date:        tr.Date,
		Description: tr.Description,
		TransferID:  uuid.NewString(),
	}
	outLeg, inLeg := base, base
	outLeg.ID, outLeg.Account, outLeg.Direction = uuid.NewString(), tr.From, domain.Out
	inLeg.ID, inLeg.Account, inLeg.Direction = uuid.NewString(), tr.To, domain.In

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions[outLeg.ID] = outLeg
	s.transactions[inLeg.ID] = inLeg
	return outLeg, inLeg, nil
}

func (s *Store) AddCategory(ctx context.Context, c domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return add(s.categories, "AddCategory", c.ID, c)
}

func (s *Store) PutCategory(ctx context.Context, c domain.Category) error {
	if c.ID == "" {
		return fmt.Errorf("PutCategory: missing id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
	return nil
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.categories, id)
	return nil
}

func (s *Store) ListCategories(ctx context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return list(s.categories), nil
}

func (s *Store) AddAccount(ctx context.Context, a domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return add(s.accounts, "AddAccount", a.ID, a)
}

func (s *Store) PutAccount(ctx context.Context, a domain.Account) error {
	if a.ID == "" {
		return fmt.Errorf("PutAccount: missing id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = a
	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, id)
	return nil
}

func (s *Store) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return list(s.accounts), nil
}

func (s *Store) AddBudget(ctx context.Context, b domain.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return add(s.budgets, "AddBudget", b.ID, b)
}

func (s *Store) PutBudget(ctx context.Context, b domain.Budget) error {
	if b.ID == "" {
		return fmt.Errorf("PutBudget: missing id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[b.ID] = b
	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.budgets, id)
	return nil
}

func (s *Store) ListBudgets(ctx context.Context) ([]domain.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return list(s.budgets), nil
}

func (s *Store) AddReceipt(ctx context.Context, r domain.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return add(s.receipts, "AddReceipt", r.ID, r)
}

func (s *Store) PutReceipt(ctx context.Context, r domain.Receipt) error {
	if r.ID == "" {
		return fmt.Errorf("PutReceipt: missing id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.receipts[r.ID] = r
	return nil
}

func (s *Store) DeleteReceipt(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.receipts, id)
	return nil
}

func (s *Store) ListReceipts(ctx context.Context) ([]domain.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return list(s.receipts), nil
}

func (s *Store) GetSetting(ctx context.Context, key string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.settings[key]
	if !ok {
		return nil, fmt.Errorf("GetSetting %q: %w", key, domain.ErrNotFound)
	}
	return v, nil
}

func (s *Store) SetSetting(ctx context.Context, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("SetSetting %q: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = encoded
	return nil
}

func (s *Store) EnsureSeedData(ctx context.Context) error {
	_, err, _ := s.seed.Do("seed", func() (any, error) {
		existing, err := s.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		if len(existing) > 0 {
			return nil, nil
		}
		for _, c := range store.DefaultCategories {
			if err := s.PutCategory(ctx, c); err != nil {
				continue
			}
		}
		return nil, nil
	})
	return err
}

// Ensure Store implements the Recorder interface.
var _ store.Recorder = (*Store)(nil)
