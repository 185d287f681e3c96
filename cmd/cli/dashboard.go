package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/moneytree/moneytree/internal/domain"
	"github.com/moneytree/moneytree/internal/report"
	"github.com/moneytree/moneytree/internal/store"
)

const recentLimit = 5

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show balances, recent activity and budget usage",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, s *store.Store) error {
			accounts, err := s.ListAccounts(ctx)
			if err != nil {
				return err
			}
			txs, err := s.ListTransactions(ctx, store.TransactionFilter{})
			if err != nil {
				return err
			}
			budgets, err := s.ListBudgets(ctx)
			if err != nil {
				return err
			}
			receipts, err := s.ListReceipts(ctx)
			if err != nil {
				return err
			}

			now := time.Now()

			balances := report.AccountBalances(accounts, txs)
			fmt.Printf("Accounts: %d\n", len(accounts))
			sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
			for _, a := range accounts {
				fmt.Printf("  %-20s $%s\n", a.Name, balances.ByAccount[a.Name].StringFixed(2))
			}
			fmt.Printf("Total Balance: $%s\n\n", balances.Total.StringFixed(2))

			totals := report.MonthlyTotals(txs, now)
			fmt.Printf("Income (mo):   $%s\n", totals.Income.StringFixed(2))
			fmt.Printf("Expenses (mo): $%s\n\n", totals.Expense.StringFixed(2))

			if len(budgets) > 0 {
				fmt.Println("Budgets:")
				for _, b := range report.BudgetUsage(budgets, txs, now) {
					fmt.Printf("  %-20s $%s / $%s (%d%%)\n",
						b.Category, b.Spent.StringFixed(2), b.Limit.StringFixed(2), b.Percent)
				}
				fmt.Println()
			}

			recent := report.Recent(txs, recentLimit)
			if len(recent) > 0 {
				fmt.Println("Recent transactions:")
				byTx := report.ReceiptsByTransaction(receipts)
				for _, t := range recent {
					marker := ""
					if _, ok := byTx[t.ID]; ok {
						marker = " [receipt]"
					}
					printTransaction(t, marker)
				}
			}
			return nil
		})
	},
}

func today() string {
	return time.Now().Format(domain.DateFormat)
}

func printTransaction(t domain.Transaction, suffix string) {
	sign := ""
	switch t.Type {
	case domain.Income:
		sign = "+"
	case domain.Expense:
		sign = "-"
	}
	desc := t.Description
	if desc == "" {
		desc = "(No description)"
	}
	meta := t.Category
	if meta == "" {
		meta = "Uncategorized"
	}
	if t.Type == domain.Transfer {
		meta = fmt.Sprintf("transfer %s %s", t.Direction, t.Account)
	} else if t.Account != "" {
		meta += " / " + t.Account
	}
	fmt.Printf("  %s  %-30s %s$%s  %s  (%s)%s\n", t.Date, desc, sign, t.Amount.StringFixed(2), meta, t.ID, suffix)
}
