package store

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/moneytree/moneytree/internal/domain"
)

func TestAddTransactionRequiresID(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	err := s.AddTransaction(ctx, domain.Transaction{Type: domain.Expense, Amount: decimal.NewFromInt(5)})
	if err == nil {
		t.Fatal("AddTransaction without id: want error, got nil")
	}
}

func TestListTransactionsFilter(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	rows := []domain.Transaction{
		{ID: "t1", Type: domain.Expense, Amount: decimal.NewFromInt(10), Date: "2024-01-15", Category: "food", Account: "checking"},
		{ID: "t2", Type: domain.Expense, Amount: decimal.NewFromInt(20), Date: "2024-01-15", Category: "transport", Account: "cash"},
		{ID: "t3", Type: domain.Income, Amount: decimal.NewFromInt(100), Date: "2024-01-16", Category: "", Account: "checking"},
	}
	for _, tx := range rows {
		if err := s.AddTransaction(ctx, tx); err != nil {
			t.Fatalf("AddTransaction %s: %v", tx.ID, err)
		}
	}

	tests := []struct {
		name   string
		filter TransactionFilter
		want   int
	}{
		{"zero filter returns all", TransactionFilter{}, 3},
		{"by date", TransactionFilter{Date: "2024-01-15"}, 2},
		{"by category", TransactionFilter{Category: "food"}, 1},
		{"by account", TransactionFilter{Account: "checking"}, 2},
		{"date and account", TransactionFilter{Date: "2024-01-15", Account: "cash"}, 1},
		{"no match", TransactionFilter{Category: "missing"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ListTransactions(ctx, tt.filter)
			if err != nil {
				t.Fatalf("ListTransactions: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("len = %d, want %d", len(got), tt.want)
			}
		})
	}
}

func TestListTransactionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	in := domain.Transaction{
		ID: "t1", Type: domain.Expense,
		Amount: decimal.RequireFromString("42.10"),
		Date:   "2024-01-15", Category: "food", Account: "checking",
		Description: "Groceries",
	}
	if err := s.AddTransaction(ctx, in); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	got, err := s.ListTransactions(ctx, TransactionFilter{})
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	out := got[0]
	if out.ID != in.ID || out.Type != in.Type || out.Date != in.Date ||
		out.Category != in.Category || out.Account != in.Account ||
		out.Description != in.Description {
		t.Errorf("round trip mismatch: %+v", out)
	}
	if !out.Amount.Equal(in.Amount) {
		t.Errorf("amount = %s, want %s", out.Amount, in.Amount)
	}
}

func TestAddTransfer(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	out, in, err := s.AddTransfer(ctx, TransferRequest{
		From:        "checking",
		To:          "savings",
		Amount:      decimal.NewFromInt(50),
		Date:        "2024-01-20",
		Description: "monthly savings",
	})
	if err != nil {
		t.Fatalf("AddTransfer: %v", err)
	}

	if out.TransferID == "" || out.TransferID != in.TransferID {
		t.Errorf("legs must share a transfer id: out=%q in=%q", out.TransferID, in.TransferID)
	}
	if out.Direction != domain.Out || in.Direction != domain.In {
		t.Errorf("directions = %q/%q, want out/in", out.Direction, in.Direction)
	}
	if out.Account != "checking" || in.Account != "savings" {
		t.Errorf("accounts = %q/%q", out.Account, in.Account)
	}
	if !out.Amount.Equal(in.Amount) || out.Amount.IsNegative() {
		t.Errorf("amounts must be equal and non-negative: %s/%s", out.Amount, in.Amount)
	}
	if !out.IsTransferLeg() || !in.IsTransferLeg() {
		t.Error("both legs must report IsTransferLeg")
	}

	stored, err := s.ListTransactions(ctx, TransactionFilter{})
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(stored) != 2 {
		t.Errorf("len = %d, want a pair", len(stored))
	}
}

func TestAddTransferValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	tests := []struct {
		name string
		req  TransferRequest
	}{
		{"missing source", TransferRequest{To: "savings", Amount: decimal.NewFromInt(1)}},
		{"missing destination", TransferRequest{From: "checking", Amount: decimal.NewFromInt(1)}},
		{"same account", TransferRequest{From: "checking", To: "checking", Amount: decimal.NewFromInt(1)}},
		{"negative amount", TransferRequest{From: "checking", To: "savings", Amount: decimal.NewFromInt(-1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := s.AddTransfer(ctx, tt.req); err == nil {
				t.Error("want error, got nil")
			}
		})
	}

	// None of the rejected requests may leave a leg behind.
	stored, err := s.ListTransactions(ctx, TransactionFilter{})
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("len = %d, want 0", len(stored))
	}
}

func TestDeleteTransferCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	out, in, err := s.AddTransfer(ctx, TransferRequest{
		From: "checking", To: "savings", Amount: decimal.NewFromInt(50), Date: "2024-01-20",
	})
	if err != nil {
		t.Fatalf("AddTransfer: %v", err)
	}
	// Unrelated transaction must survive the cascade.
	if err := s.AddTransaction(ctx, domain.Transaction{ID: "t1", Type: domain.Expense, Amount: decimal.NewFromInt(5), Date: "2024-01-21"}); err != nil {
		t.Fatalf("AddTransaction: %v", err)
	}

	for _, id := range []string{out.ID, in.ID} {
		t.Run("deleting leg "+id, func(t *testing.T) {
			if err := s.DeleteTransaction(ctx, id); err != nil {
				t.Fatalf("DeleteTransaction: %v", err)
			}
			stored, err := s.ListTransactions(ctx, TransactionFilter{})
			if err != nil {
				t.Fatalf("ListTransactions: %v", err)
			}
			if len(stored) != 1 || stored[0].ID != "t1" {
				t.Errorf("after cascade: %+v, want only the unrelated transaction", stored)
			}
		})
	}
}
