package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"tally/internal/cli"
	"tally/internal/common"
	"tally/internal/model"
	"tally/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import-ofx [files...]",
		Short: "Import expenses from OFX/QFX files",
		Long: `Import expenses from OFX or QFX (Quicken) files exported from your bank.
Only debits become expenses; deposits and other credits are skipped.

Examples:
  # Import single file
  tally import-ofx ~/Downloads/chase_jan_2024.qfx

  # Import all QFX files in a directory
  tally import-ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImportOFX(cmd, args, dryRun)
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "d", false, "Preview import without saving")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string, dryRun bool) error {
	ctx := cmd.Context()

	// Expand globs and collect all files
	var allFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			// If no glob matches, check if it's a direct file
			if _, err := os.Stat(pattern); err == nil {
				allFiles = append(allFiles, pattern)
			} else {
				slog.Warn("No files found matching pattern", "pattern", pattern)
			}
		} else {
			allFiles = append(allFiles, matches...)
		}
	}

	if len(allFiles) == 0 {
		return fmt.Errorf("no files found to import")
	}

	slog.Info("Importing OFX files...",
		"file_count", len(allFiles),
		"dry_run", dryRun)

	parser := ofx.NewParser()
	var allExpenses []model.Expense

	// Process each file
	for _, filePath := range allFiles {
		f, err := os.Open(filePath)
		if err != nil {
			slog.Error("Failed to open file",
				"file", filePath,
				"error", err)
			continue
		}

		expenses, err := parser.ParseFile(ctx, f)
		f.Close()

		if err != nil {
			slog.Error("Failed to parse OFX file",
				"file", filePath,
				"error", err)
			continue
		}

		if len(expenses) == 0 {
			slog.Warn("No expenses found in file",
				"file", filepath.Base(filePath))
			continue
		}

		slog.Info("Processed file",
			"file", filepath.Base(filePath),
			"expenses", len(expenses))
		allExpenses = append(allExpenses, expenses...)
	}

	if len(allExpenses) == 0 {
		slog.Warn("No expenses found in any file")
		return nil
	}

	if dryRun {
		for _, e := range allExpenses {
			fmt.Printf("%s  %-40s %-10s %.2f\n",
				e.CreatedAt.Format("2006-01-02"), e.Name, e.Category, e.Amount)
		}
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Dry run complete: %d expense(s) would be imported", len(allExpenses))))
		return nil
	}

	// Initialize storage with auto-migration
	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	bar := progressbar.NewOptions(len(allExpenses),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Importing expenses..."),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)

	var imported, duplicates, failed int
	for i := range allExpenses {
		if err := store.SaveExpense(ctx, &allExpenses[i]); err != nil {
			if errors.Is(err, common.ErrDuplicateEntry) {
				duplicates++
			} else {
				slog.Warn("Failed to save expense",
					"id", allExpenses[i].ID,
					"error", err)
				failed++
			}
		} else {
			imported++
		}
		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d expense(s)", imported)))
	if duplicates > 0 {
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("  %d duplicate(s) skipped", duplicates)))
	}
	if failed > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d expense(s) failed to import", failed)))
	}

	return nil
}
