// Package report derives view models from listed records: account
// balances, budget usage, recent activity and month totals. Everything
// here is a pure function over slices — no store access, no mutation of
// the inputs.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/moneytree/moneytree/internal/domain"
)

// Balances holds computed per-account balances keyed by account name.
type Balances struct {
	ByAccount map[string]decimal.Decimal
	Total     decimal.Decimal
}

// AccountBalances replays the transaction history to a balance per
// account, starting every account at zero. The account's stored manual
// balance is informational and deliberately not used as an offset.
// Transactions naming an unknown account are ignored.
func AccountBalances(accounts []domain.Account, txs []domain.Transaction) Balances {
	byName := make(map[string]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		byName[a.Name] = decimal.Zero
	}
	for _, t := range txs {
		bal, known := byName[t.Account]
		if !known {
			continue
		}
		switch {
		case t.Type == domain.Income:
			bal = bal.Add(t.Amount)
		case t.Type == domain.Expense:
			bal = bal.Sub(t.Amount)
		case t.Type == domain.Transfer && t.Direction == domain.In:
			bal = bal.Add(t.Amount)
		case t.Type == domain.Transfer && t.Direction == domain.Out:
			bal = bal.Sub(t.Amount)
		default:
			continue
		}
		byName[t.Account] = bal
	}

	total := decimal.Zero
	for _, bal := range byName {
		total = total.Add(bal)
	}
	return Balances{ByAccount: byName, Total: total}
}

// MonthRange returns the budget window of the month containing ref:
// first of the month at 00:00:00 through the last of the month at
// 23:59:59.999.
func MonthRange(ref time.Time) (start, end time.Time) {
	y, m, _ := ref.Date()
	start = time.Date(y, m, 1, 0, 0, 0, 0, ref.Location())
	end = start.AddDate(0, 1, 0).Add(-time.Millisecond)
	return start, end
}

// inWindow reports whether a stored date string falls inside [start, end].
// Unparseable dates fall outside every window.
func inWindow(date string, start, end time.Time) bool {
	t, err := time.ParseInLocation(domain.DateFormat, date, start.Location())
	if err != nil {
		return false
	}
	return !t.Before(start) && !t.After(end)
}

// BudgetStatus is one budget with its spend for the active window.
type BudgetStatus struct {
	domain.Budget
	Spent   decimal.Decimal
	Percent int // min(100, round(spent/limit*100))
}

// BudgetUsage computes spend per budget: the sum of expense transactions
// in the budget's category dated inside the month window around ref.
// Spent is exact; Percent treats a zero limit as 1 to avoid a division
// error, and caps at 100.
func BudgetUsage(budgets []domain.Budget, txs []domain.Transaction, ref time.Time) []BudgetStatus {
	start, end := MonthRange(ref)
	out := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent := decimal.Zero
		for _, t := range txs {
			if t.Type != domain.Expense || t.Category != b.Category {
				continue
			}
			if !inWindow(t.Date, start, end) {
				continue
			}
			spent = spent.Add(t.Amount)
		}
		limit := b.Limit
		if limit.IsZero() {
			limit = decimal.NewFromInt(1)
		}
		pct := spent.Div(limit).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
		if pct > 100 {
			pct = 100
		}
		out = append(out, BudgetStatus{Budget: b, Spent: spent, Percent: int(pct)})
	}
	return out
}

// Recent returns up to n transactions sorted by date descending. The
// sort is stable, so same-day transactions keep their input order. The
// input slice is not modified.
func Recent(txs []domain.Transaction, n int) []domain.Transaction {
	sorted := make([]domain.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return dateOf(sorted[i]).After(dateOf(sorted[j]))
	})
	if n >= 0 && n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}

func dateOf(t domain.Transaction) time.Time {
	parsed, err := time.Parse(domain.DateFormat, t.Date)
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// MonthTotals holds the income and expense sums for one month window.
type MonthTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// MonthlyTotals sums income and expense transactions dated inside the
// month window around ref. Transfers are internal movements and excluded.
func MonthlyTotals(txs []domain.Transaction, ref time.Time) MonthTotals {
	start, end := MonthRange(ref)
	totals := MonthTotals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range txs {
		if !inWindow(t.Date, start, end) {
			continue
		}
		switch t.Type {
		case domain.Income:
			totals.Income = totals.Income.Add(t.Amount)
		case domain.Expense:
			totals.Expense = totals.Expense.Add(t.Amount)
		}
	}
	return totals
}

// ReceiptsByTransaction indexes receipts by their transaction id. When a
// transaction has several receipts the last listed one wins — that is
// the one surfaced next to the transaction.
func ReceiptsByTransaction(receipts []domain.Receipt) map[string]domain.Receipt {
	byTx := make(map[string]domain.Receipt, len(receipts))
	for _, r := range receipts {
		byTx[r.TransactionID] = r
	}
	return byTx
}
