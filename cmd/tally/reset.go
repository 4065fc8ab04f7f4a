package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tally/internal/cli"
)

func resetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all stored data",
		Long: `Reset deletes every stored expense and budget.

This is a destructive operation. Export your data first if you might want it back.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Initialize storage with auto-migration
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			expenses, err := store.ListExpenses(ctx)
			if err != nil {
				return fmt.Errorf("failed to count expenses: %w", err)
			}
			budgets, err := store.ListBudgets(ctx)
			if err != nil {
				return fmt.Errorf("failed to count budgets: %w", err)
			}

			if len(expenses) == 0 && len(budgets) == 0 {
				fmt.Println("Nothing stored. Nothing to reset.")
				return nil
			}

			// Confirm with user unless --force is used
			if !force {
				fmt.Fprintf(os.Stdout, "This will delete %d expense(s) and %d budget(s).\n", len(expenses), len(budgets))
				fmt.Fprintf(os.Stdout, "\nAre you sure you want to continue? [y/N]: ")

				var response string
				if _, err := fmt.Scanln(&response); err != nil {
					return fmt.Errorf("failed to read input: %w", err)
				}
				if response != "y" && response != "Y" {
					fmt.Println("Reset canceled.")
					return nil
				}
			}

			if err := store.ClearAll(ctx); err != nil {
				return fmt.Errorf("failed to clear data: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %d expense(s) and %d budget(s)", len(expenses), len(budgets))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip confirmation prompt")

	return cmd
}
