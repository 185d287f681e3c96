package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/moneytree/moneytree/internal/domain"
	"github.com/moneytree/moneytree/internal/store"
)

func TestAddConflict(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	c := domain.Category{ID: "c1", Name: "Food"}
	if err := s.AddCategory(ctx, c); err != nil {
		t.Fatalf("first AddCategory: %v", err)
	}
	if err := s.AddCategory(ctx, c); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("second AddCategory: got %v, want ErrConflict", err)
	}
}

func TestPutUpsert(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if err := s.PutAccount(ctx, domain.Account{ID: "a1", Name: "Checking"}); err != nil {
		t.Fatalf("PutAccount: %v", err)
	}
	if err := s.PutAccount(ctx, domain.Account{ID: "a1", Name: "Main"}); err != nil {
		t.Fatalf("PutAccount replace: %v", err)
	}
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		t.Fatalf("ListAccounts: %v", err)
	}
	if len(accounts) != 1 || accounts[0].Name != "Main" {
		t.Errorf("put must replace: %+v", accounts)
	}
}

func TestListTransactionsFilter(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	txs := []domain.Transaction{
		{ID: "t1", Type: domain.Expense, Amount: decimal.NewFromInt(10), Date: "2024-01-15", Category: "food", Account: "checking"},
		{ID: "t2", Type: domain.Income, Amount: decimal.NewFromInt(100), Date: "2024-01-16", Account: "cash"},
	}
	for _, tx := range txs {
		if err := s.AddTransaction(ctx, tx); err != nil {
			t.Fatalf("AddTransaction: %v", err)
		}
	}

	got, err := s.ListTransactions(ctx, store.TransactionFilter{Account: "checking"})
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t1" {
		t.Errorf("filter by account: %+v", got)
	}
}

func TestDeleteTransferCascades(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	out, in, err := s.AddTransfer(ctx, store.TransferRequest{
		From: "checking", To: "savings", Amount: decimal.NewFromInt(50), Date: "2024-01-20",
	})
	if err != nil {
		t.Fatalf("AddTransfer: %v", err)
	}
	if out.TransferID == "" || out.TransferID != in.TransferID {
		t.Fatalf("legs must share a transfer id: %q/%q", out.TransferID, in.TransferID)
	}

	if err := s.DeleteTransaction(ctx, in.ID); err != nil {
		t.Fatalf("DeleteTransaction: %v", err)
	}
	stored, err := s.ListTransactions(ctx, store.TransactionFilter{})
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("cascade left %d legs behind", len(stored))
	}
}

func TestSettings(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if _, err := s.GetSetting(ctx, "theme"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing key: got %v, want ErrNotFound", err)
	}
	if err := s.SetSetting(ctx, "theme", "dark"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	got, err := s.GetSetting(ctx, "theme")
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if string(got) != `"dark"` {
		t.Errorf("value = %s", got)
	}
}

func TestEnsureSeedData(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	if err := s.EnsureSeedData(ctx); err != nil {
		t.Fatalf("EnsureSeedData: %v", err)
	}
	if err := s.EnsureSeedData(ctx); err != nil {
		t.Fatalf("second EnsureSeedData: %v", err)
	}
	cats, err := s.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories: %v", err)
	}
	if len(cats) != len(store.DefaultCategories) {
		t.Errorf("seeded %d categories, want %d", len(cats), len(store.DefaultCategories))
	}
}
