// moneytree is the command-line front end of the tracker. It is a thin
// consumer of the record store's read/write API: every command opens the
// store, performs its operation and prints the result.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/moneytree/moneytree/internal/config"
	"github.com/moneytree/moneytree/internal/importer"
	"github.com/moneytree/moneytree/internal/logger"
	"github.com/moneytree/moneytree/internal/store"
)

var (
	configPath string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:           "moneytree",
	Short:         "Local personal finance tracker",
	Long:          "Track accounts, categories, budgets and transactions in a local store.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")

	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(importTxCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// withStore opens the record store, runs fn against it and closes it.
// The context carries the configured logger.
func withStore(fn func(ctx context.Context, s *store.Store) error) error {
	log := logger.New(cfg.LogLevel)
	ctx := logger.WithContext(context.Background(), log)

	s, err := store.Open(ctx, cfg.StorePath)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(ctx, s)
}

// ─── seed ───────────────────────────────────────────────────────────────────

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default categories if none exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, s *store.Store) error {
			if err := s.EnsureSeedData(ctx); err != nil {
				return err
			}
			cats, err := s.ListCategories(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("%d categories present\n", len(cats))
			return nil
		})
	},
}

// ─── import ─────────────────────────────────────────────────────────────────

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import a mixed CSV of accounts, categories, budgets and transactions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, s *store.Store) error {
			res := importer.Import(ctx, s, string(text))
			if !res.Success {
				return fmt.Errorf("import failed: %s", res.Message)
			}
			fmt.Println(res.Message)
			for _, e := range res.Stats.Errors {
				fmt.Fprintln(os.Stderr, e)
			}
			return nil
		})
	},
}

var importTxCmd = &cobra.Command{
	Use:   "import-tx FILE",
	Short: "Import a transactions-only CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		return withStore(func(ctx context.Context, s *store.Store) error {
			count, errs := importer.ImportTransactions(ctx, s, string(text))
			fmt.Printf("Imported %d transactions\n", count)
			for _, e := range errs {
				fmt.Fprintln(os.Stderr, e)
			}
			return nil
		})
	},
}
