package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"tally/internal/cli"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Export all data to JSON files",
		Long: `Write expenses.json and budgets.json into a directory. The files can be
re-imported with 'tally import', moved to another machine, or kept as a backup.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Initialize storage with auto-migration
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.ExportJSON(ctx, args[0]); err != nil {
				return fmt.Errorf("export failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported data to %s", args[0])))
			return nil
		},
	}
}

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <dir>",
		Short: "Import data from JSON files",
		Long: `Read expenses.json and budgets.json from a directory and add their records.
Records that are invalid or already present are skipped; the rest import normally.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Initialize storage with auto-migration
			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			result, err := store.ImportJSON(ctx, args[0])
			if err != nil {
				return fmt.Errorf("import failed: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d expense(s) and %d budget(s)",
				result.Expenses, result.Budgets)))
			if result.Skipped > 0 {
				fmt.Println(cli.FormatWarning(fmt.Sprintf("Skipped %d record(s) (invalid or duplicate)", result.Skipped)))
			}
			return nil
		},
	}
}
