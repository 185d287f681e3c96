// Package importer loads CSV exports into the record store. The bulk
// format mixes entity kinds in one file, discriminated by a type column;
// a second, simpler format carries transactions only.
//
// Imports never abort early: a bad row is recorded with its line number
// and the rest of the batch still lands.
package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/moneytree/moneytree/internal/csvio"
	"github.com/moneytree/moneytree/internal/domain"
	"github.com/moneytree/moneytree/internal/store"
)

// Defaults applied when a column is missing or empty.
const (
	defaultAccountColor  = "#3B82F6"
	defaultCategoryColor = "#6B7280"
	defaultCategoryIcon  = "📁"
	defaultAccountType   = "checking"
	defaultBudgetPeriod  = "monthly"
)

// Stats counts what an import created, plus the per-row error list.
type Stats struct {
	Accounts     int      `json:"accounts"`
	Categories   int      `json:"categories"`
	Budgets      int      `json:"budgets"`
	Transactions int      `json:"transactions"`
	Errors       []string `json:"errors"`
}

// Result is the outcome of a bulk import. Success is false only when the
// input was empty; row-level failures leave Success true and show up in
// Stats.Errors instead.
type Result struct {
	Success bool   `json:"success"`
	Stats   Stats  `json:"stats"`
	Message string `json:"message"`
}

// Import parses the bulk CSV format and writes each row to rec.
//
// The header is matched case-insensitively with fields trimmed. Each data
// row is dispatched on its type column: account, category, budget, or a
// transaction kind (expense, income, transfer). Any other value — blank
// included — records a row error. Blank lines are skipped silently.
func Import(ctx context.Context, rec store.Recorder, text string) Result {
	lines := csvio.Lines(text)
	if len(lines) == 0 || lines[0] == "" {
		return Result{Success: false, Message: "Empty CSV"}
	}
	header := csvio.Header(csvio.SplitLine(lines[0]))

	var stats Stats
	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		// 1-based over the whole file, header included.
		lineNum := i + 2
		row := csvio.Row(header, csvio.SplitLine(line))
		entityType := strings.ToLower(row["type"])

		var err error
		switch entityType {
		case "account":
			err = addAccount(ctx, rec, row)
			if err == nil {
				stats.Accounts++
			}
		case "category":
			err = putCategory(ctx, rec, row)
			if err == nil {
				stats.Categories++
			}
		case "budget":
			err = addBudget(ctx, rec, row)
			if err == nil {
				stats.Budgets++
			}
		case "expense", "income", "transfer":
			err = addTransaction(ctx, rec, entityType, row)
			if err == nil {
				stats.Transactions++
			}
		default:
			stats.Errors = append(stats.Errors, fmt.Sprintf("Line %d: Unknown type %q", lineNum, entityType))
			continue
		}
		if err != nil {
			stats.Errors = append(stats.Errors, fmt.Sprintf("Line %d: %v", lineNum, err))
		}
	}

	return Result{
		Success: true,
		Stats:   stats,
		Message: fmt.Sprintf("Imported %d accounts, %d categories, %d budgets, %d transactions",
			stats.Accounts, stats.Categories, stats.Budgets, stats.Transactions),
	}
}

func addAccount(ctx context.Context, rec store.Recorder, row map[string]string) error {
	return rec.AddAccount(ctx, domain.Account{
		ID:      uuid.NewString(),
		Name:    pick(row, "name", "account"),
		Type:    pickDefault(defaultAccountType, row, "accounttype", "subtype"),
		Balance: csvio.Amount(pick(row, "amount", "balance")),
		Color:   pickDefault(defaultAccountColor, row, "color"),
	})
}

// Categories are upserted: re-importing the same export refreshes them
// instead of piling up conflicts.
func putCategory(ctx context.Context, rec store.Recorder, row map[string]string) error {
	return rec.PutCategory(ctx, domain.Category{
		ID:    uuid.NewString(),
		Name:  pick(row, "name", "category"),
		Color: pickDefault(defaultCategoryColor, row, "color"),
		Icon:  pickDefault(defaultCategoryIcon, row, "icon"),
	})
}

func addBudget(ctx context.Context, rec store.Recorder, row map[string]string) error {
	month := row["month"]
	if month == "" {
		month = time.Now().Format(domain.MonthFormat)
	}
	return rec.AddBudget(ctx, domain.Budget{
		ID:       uuid.NewString(),
		Category: pick(row, "category", "name"),
		Limit:    csvio.Amount(pick(row, "limit", "amount")),
		Period:   pickDefault(defaultBudgetPeriod, row, "period"),
		Month:    month,
	})
}

func addTransaction(ctx context.Context, rec store.Recorder, entityType string, row map[string]string) error {
	date := row["date"]
	if date == "" {
		date = time.Now().Format(domain.DateFormat)
	}
	return rec.AddTransaction(ctx, domain.Transaction{
		ID:          uuid.NewString(),
		Type:        domain.TransactionType(entityType),
		Amount:      csvio.Amount(pick(row, "amount", "amt")).Abs(),
		Date:        date,
		Category:    row["category"],
		Account:     row["account"],
		Description: pick(row, "description", "memo"),
	})
}

// ImportTransactions loads the simple transactions-only CSV format.
// Rows without a date or with a zero amount are skipped. Returns the
// number of transactions written and any per-row write errors.
func ImportTransactions(ctx context.Context, rec store.Recorder, text string) (int, []string) {
	var count int
	var errs []string
	for i, row := range csvio.ParseTransactions(text) {
		if row.Date == "" || row.Amount.IsZero() {
			continue
		}
		row.ID = uuid.NewString()
		if err := rec.AddTransaction(ctx, row); err != nil {
			errs = append(errs, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		count++
	}
	return count, errs
}

func pick(row map[string]string, cols ...string) string {
	for _, c := range cols {
		if row[c] != "" {
			return row[c]
		}
	}
	return ""
}

func pickDefault(def string, row map[string]string, cols ...string) string {
	if v := pick(row, cols...); v != "" {
		return v
	}
	return def
}
