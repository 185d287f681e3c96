package csvio

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/moneytree/moneytree/internal/domain"
)

func TestParseTransactions(t *testing.T) {
	text := `date,description,amount,type,category,account
2024-01-15,Groceries,-42.10,,food,checking
2024-01-16,Salary,2500.00,income,,checking

2024-01-17,Cinema,15,expense,entertainment,cash
`
	got := ParseTransactions(text)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3 (blank line must be skipped)", len(got))
	}

	first := got[0]
	if first.Type != domain.Expense {
		t.Errorf("negative amount with empty type: got %q, want expense", first.Type)
	}
	if !first.Amount.Equal(decimal.RequireFromString("42.10")) {
		t.Errorf("amount = %s, want absolute value 42.10", first.Amount)
	}
	if first.ID != "" {
		t.Errorf("parser must not assign IDs, got %q", first.ID)
	}

	second := got[1]
	if second.Type != domain.Income {
		t.Errorf("type = %q, want income", second.Type)
	}
	if second.Date != "2024-01-16" || second.Account != "checking" {
		t.Errorf("unexpected row: %+v", second)
	}

	third := got[2]
	if third.Category != "entertainment" || third.Description != "Cinema" {
		t.Errorf("unexpected row: %+v", third)
	}
}

func TestParseTransactionsAliases(t *testing.T) {
	text := `posted,memo,amt
2024-02-01,Coffee,-3.50
`
	got := ParseTransactions(text)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	tx := got[0]
	if tx.Date != "2024-02-01" {
		t.Errorf("date = %q, want posted column value", tx.Date)
	}
	if tx.Description != "Coffee" {
		t.Errorf("description = %q, want memo column value", tx.Description)
	}
	if !tx.Amount.Equal(decimal.RequireFromString("3.50")) {
		t.Errorf("amount = %s, want 3.50", tx.Amount)
	}
	if tx.Type != domain.Expense {
		t.Errorf("type = %q, want expense from sign", tx.Type)
	}
}

func TestParseTransactionsDeterministic(t *testing.T) {
	text := `date,amount
2024-03-01,10
2024-03-02,-5
`
	a := ParseTransactions(text)
	b := ParseTransactions(text)
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			t.Errorf("row %d differs across runs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestParseTransactionsEmpty(t *testing.T) {
	if got := ParseTransactions(""); got != nil {
		t.Errorf("empty input: got %#v, want nil", got)
	}
	if got := ParseTransactions("date,amount\n"); len(got) != 0 {
		t.Errorf("header only: got %d rows, want 0", len(got))
	}
}

func TestAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"12.50", "12.5"},
		{" -3 ", "-3"},
		{"", "0"},
		{"abc", "0"},
		{"1,000", "0"},
	}
	for _, tt := range tests {
		if got := Amount(tt.in); got.String() != tt.want {
			t.Errorf("Amount(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
