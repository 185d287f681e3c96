package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/moneytree/moneytree/internal/domain"
	"github.com/moneytree/moneytree/internal/report"
	"github.com/moneytree/moneytree/internal/store"
)

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountAddCmd)
	accountCmd.AddCommand(accountListCmd)
	accountAddCmd.Flags().String("name", "", "Account name (required)")
	accountAddCmd.Flags().String("type", "checking", "Account type")
	accountAddCmd.Flags().String("balance", "0", "Manual starting balance")
	accountAddCmd.Flags().String("color", "#3B82F6", "Display color")
	accountAddCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(categoryCmd)
	categoryCmd.AddCommand(categoryAddCmd)
	categoryCmd.AddCommand(categoryListCmd)
	categoryAddCmd.Flags().String("name", "", "Category name (required)")
	categoryAddCmd.Flags().String("color", "#10B981", "Display color")
	categoryAddCmd.Flags().String("icon", "", "Icon glyph")
	categoryAddCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(budgetCmd)
	budgetCmd.AddCommand(budgetAddCmd)
	budgetCmd.AddCommand(budgetListCmd)
	budgetAddCmd.Flags().String("category", "", "Category name (required)")
	budgetAddCmd.Flags().String("limit", "", "Spending limit (required)")
	budgetAddCmd.Flags().String("period", "monthly", "Recurring period tag")
	budgetAddCmd.MarkFlagRequired("category")
	budgetAddCmd.MarkFlagRequired("limit")

	rootCmd.AddCommand(txCmd)
	txCmd.AddCommand(txAddCmd)
	txCmd.AddCommand(txListCmd)
	txCmd.AddCommand(txDeleteCmd)
	txAddCmd.Flags().String("type", "expense", "expense or income")
	txAddCmd.Flags().String("amount", "", "Amount (required, non-negative)")
	txAddCmd.Flags().String("date", "", "Date YYYY-MM-DD (defaults to today)")
	txAddCmd.Flags().String("category", "", "Category name")
	txAddCmd.Flags().String("account", "", "Account name")
	txAddCmd.Flags().String("description", "", "Free-form description")
	txAddCmd.MarkFlagRequired("amount")
	txListCmd.Flags().String("category", "", "Filter by category")
	txListCmd.Flags().String("account", "", "Filter by account")
	txListCmd.Flags().String("date", "", "Filter by exact date")

	rootCmd.AddCommand(transferCmd)
	transferCmd.Flags().String("from", "", "Source account (required)")
	transferCmd.Flags().String("to", "", "Destination account (required)")
	transferCmd.Flags().String("amount", "", "Amount (required)")
	transferCmd.Flags().String("date", "", "Date YYYY-MM-DD (defaults to today)")
	transferCmd.Flags().String("description", "", "Free-form description")
	transferCmd.MarkFlagRequired("from")
	transferCmd.MarkFlagRequired("to")
	transferCmd.MarkFlagRequired("amount")
}

func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount must not be negative, got %s", s)
	}
	return d, nil
}

// ─── account ────────────────────────────────────────────────────────────────

var accountCmd = &cobra.Command{Use: "account", Short: "Manage accounts"}

var accountAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an account",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		accType, _ := cmd.Flags().GetString("type")
		balanceStr, _ := cmd.Flags().GetString("balance")
		color, _ := cmd.Flags().GetString("color")
		balance, err := decimal.NewFromString(balanceStr)
		if err != nil {
			return fmt.Errorf("invalid balance %q", balanceStr)
		}
		return withStore(func(ctx context.Context, s *store.Store) error {
			a := domain.Account{ID: uuid.NewString(), Name: name, Type: accType, Balance: balance, Color: color}
			if err := s.AddAccount(ctx, a); err != nil {
				return err
			}
			fmt.Println(a.ID)
			return nil
		})
	},
}

var accountListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, s *store.Store) error {
			accounts, err := s.ListAccounts(ctx)
			if err != nil {
				return err
			}
			sort.Slice(accounts, func(i, j int) bool { return accounts[i].Name < accounts[j].Name })
			for _, a := range accounts {
				fmt.Printf("%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Type, a.Balance.StringFixed(2))
			}
			return nil
		})
	},
}

// ─── category ───────────────────────────────────────────────────────────────

var categoryCmd = &cobra.Command{Use: "category", Short: "Manage categories"}

var categoryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a category",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		color, _ := cmd.Flags().GetString("color")
		icon, _ := cmd.Flags().GetString("icon")
		return withStore(func(ctx context.Context, s *store.Store) error {
			c := domain.Category{ID: uuid.NewString(), Name: name, Color: color, Icon: icon}
			if err := s.AddCategory(ctx, c); err != nil {
				return err
			}
			fmt.Println(c.ID)
			return nil
		})
	},
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, s *store.Store) error {
			if err := s.EnsureSeedData(ctx); err != nil {
				return err
			}
			cats, err := s.ListCategories(ctx)
			if err != nil {
				return err
			}
			sort.Slice(cats, func(i, j int) bool { return cats[i].Name < cats[j].Name })
			for _, c := range cats {
				fmt.Printf("%s\t%s %s\n", c.ID, c.Icon, c.Name)
			}
			return nil
		})
	},
}

// ─── budget ─────────────────────────────────────────────────────────────────

var budgetCmd = &cobra.Command{Use: "budget", Short: "Manage budgets"}

var budgetAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a budget",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		limitStr, _ := cmd.Flags().GetString("limit")
		period, _ := cmd.Flags().GetString("period")
		limit, err := parseAmount(limitStr)
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, s *store.Store) error {
			b := domain.Budget{ID: uuid.NewString(), Category: category, Limit: limit, Period: period}
			if err := s.AddBudget(ctx, b); err != nil {
				return err
			}
			fmt.Println(b.ID)
			return nil
		})
	},
}

var budgetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List budgets",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, s *store.Store) error {
			budgets, err := s.ListBudgets(ctx)
			if err != nil {
				return err
			}
			sort.Slice(budgets, func(i, j int) bool { return budgets[i].Category < budgets[j].Category })
			for _, b := range budgets {
				fmt.Printf("%s\t%s\t%s\t%s\n", b.ID, b.Category, b.Limit.StringFixed(2), b.Period)
			}
			return nil
		})
	},
}

// ─── tx ─────────────────────────────────────────────────────────────────────

var txCmd = &cobra.Command{Use: "tx", Short: "Manage transactions"}

var txAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an expense or income transaction",
	RunE: func(cmd *cobra.Command, args []string) error {
		txType, _ := cmd.Flags().GetString("type")
		if txType != string(domain.Expense) && txType != string(domain.Income) {
			return fmt.Errorf("type must be expense or income; use the transfer command for transfers")
		}
		amountStr, _ := cmd.Flags().GetString("amount")
		amount, err := parseAmount(amountStr)
		if err != nil {
			return err
		}
		date, _ := cmd.Flags().GetString("date")
		if date == "" {
			date = today()
		}
		category, _ := cmd.Flags().GetString("category")
		account, _ := cmd.Flags().GetString("account")
		description, _ := cmd.Flags().GetString("description")
		return withStore(func(ctx context.Context, s *store.Store) error {
			t := domain.Transaction{
				ID:          uuid.NewString(),
				Type:        domain.TransactionType(txType),
				Amount:      amount,
				Date:        date,
				Category:    category,
				Account:     account,
				Description: description,
			}
			if err := s.AddTransaction(ctx, t); err != nil {
				return err
			}
			fmt.Println(t.ID)
			return nil
		})
	},
}

var txListCmd = &cobra.Command{
	Use:   "list",
	Short: "List transactions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		account, _ := cmd.Flags().GetString("account")
		date, _ := cmd.Flags().GetString("date")
		return withStore(func(ctx context.Context, s *store.Store) error {
			txs, err := s.ListTransactions(ctx, store.TransactionFilter{
				Category: category, Account: account, Date: date,
			})
			if err != nil {
				return err
			}
			for _, t := range report.Recent(txs, -1) {
				printTransaction(t, "")
			}
			return nil
		})
	},
}

var txDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a transaction (both legs, for a transfer)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, s *store.Store) error {
			return s.DeleteTransaction(ctx, args[0])
		})
	},
}

// ─── transfer ───────────────────────────────────────────────────────────────

var transferCmd = &cobra.Command{
	Use:   "transfer",
	Short: "Move money between two accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		amountStr, _ := cmd.Flags().GetString("amount")
		amount, err := parseAmount(amountStr)
		if err != nil {
			return err
		}
		date, _ := cmd.Flags().GetString("date")
		if date == "" {
			date = today()
		}
		description, _ := cmd.Flags().GetString("description")
		return withStore(func(ctx context.Context, s *store.Store) error {
			out, in, err := s.AddTransfer(ctx, store.TransferRequest{
				From: from, To: to, Amount: amount, Date: date, Description: description,
			})
			if err != nil {
				return err
			}
			fmt.Printf("%s -> %s  %s  (%s / %s)\n", from, to, amount.StringFixed(2), out.ID, in.ID)
			return nil
		})
	},
}
