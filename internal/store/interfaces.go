package store

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/moneytree/moneytree/internal/domain"
)

// Recorder is the full read/write contract consumed by the import layer
// and the presentation surfaces. Every operation is context-bound and
// may be queued behind store initialization; list order is unspecified
// and callers sort explicitly.
//
// Add fails with domain.ErrConflict when the key exists; Put is an
// upsert replacing the whole record; Delete of a missing key is a no-op.
type Recorder interface {
	AddTransaction(ctx context.Context, t domain.Transaction) error
	PutTransaction(ctx context.Context, t domain.Transaction) error
	DeleteTransaction(ctx context.Context, id string) error
	ListTransactions(ctx context.Context, f TransactionFilter) ([]domain.Transaction, error)

	// AddTransfer records one logical movement of funds as a linked pair
	// of transactions sharing a transfer id: direction=out on the source
	// account and direction=in on the destination.
	AddTransfer(ctx context.Context, tr TransferRequest) (out, in domain.Transaction, err error)

	AddCategory(ctx context.Context, c domain.Category) error
	PutCategory(ctx context.Context, c domain.Category) error
	DeleteCategory(ctx context.Context, id string) error
	ListCategories(ctx context.Context) ([]domain.Category, error)

	AddAccount(ctx context.Context, a domain.Account) error
	PutAccount(ctx context.Context, a domain.Account) error
	DeleteAccount(ctx context.Context, id string) error
	ListAccounts(ctx context.Context) ([]domain.Account, error)

	AddBudget(ctx context.Context, b domain.Budget) error
	PutBudget(ctx context.Context, b domain.Budget) error
	DeleteBudget(ctx context.Context, id string) error
	ListBudgets(ctx context.Context) ([]domain.Budget, error)

	AddReceipt(ctx context.Context, r domain.Receipt) error
	PutReceipt(ctx context.Context, r domain.Receipt) error
	DeleteReceipt(ctx context.Context, id string) error
	ListReceipts(ctx context.Context) ([]domain.Receipt, error)

	GetSetting(ctx context.Context, key string) (json.RawMessage, error)
	SetSetting(ctx context.Context, key string, value any) error

	// EnsureSeedData populates the default categories once per store
	// lifetime; concurrent callers share a single in-flight run.
	EnsureSeedData(ctx context.Context) error
}

// TransactionFilter narrows ListTransactions; zero fields do not filter.
// Each field maps onto a secondary index.
type TransactionFilter struct {
	Date     string // exact YYYY-MM-DD
	Category string
	Account  string
}

// TransferRequest describes one transfer between two accounts.
type TransferRequest struct {
	From        string
	To          string
	Amount      decimal.Decimal
	Date        string // YYYY-MM-DD
	Description string
}
