package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"tally/internal/common"
	"tally/internal/model"
	"tally/internal/service"
)

// File names used by the JSON export/import convenience operations.
const (
	expensesJSONFile = "expenses.json"
	budgetsJSONFile  = "budgets.json"
)

// ExportJSON writes every stored expense and budget to expenses.json and
// budgets.json in dir, preserving all entity fields.
func (s *SQLiteStorage) ExportJSON(ctx context.Context, dir string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(dir, "dir"); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	expenses, err := s.ListExpenses(ctx)
	if err != nil {
		return fmt.Errorf("failed to load expenses for export: %w", err)
	}
	if err := writeJSONFile(filepath.Join(dir, expensesJSONFile), expenses); err != nil {
		return err
	}

	budgets, err := s.ListBudgets(ctx)
	if err != nil {
		return fmt.Errorf("failed to load budgets for export: %w", err)
	}
	if err := writeJSONFile(filepath.Join(dir, budgetsJSONFile), budgets); err != nil {
		return err
	}

	slog.Info("exported data to JSON",
		"dir", dir,
		"expenses", len(expenses),
		"budgets", len(budgets))
	return nil
}

// ImportJSON reads expenses.json and budgets.json from dir and appends their
// records to the store. Records that fail validation or collide with an
// existing identifier are skipped with a logged diagnostic; the rest of the
// import continues.
func (s *SQLiteStorage) ImportJSON(ctx context.Context, dir string) (service.ImportResult, error) {
	var result service.ImportResult

	if err := validateContext(ctx); err != nil {
		return result, err
	}
	if err := validateString(dir, "dir"); err != nil {
		return result, err
	}

	var expenses []model.Expense
	found, err := readJSONFile(filepath.Join(dir, expensesJSONFile), &expenses)
	if err != nil {
		return result, err
	}
	if found {
		for i := range expenses {
			if skip := s.importExpense(ctx, &expenses[i]); skip {
				result.Skipped++
				continue
			}
			result.Expenses++
		}
	}

	var budgets []model.Budget
	found, err = readJSONFile(filepath.Join(dir, budgetsJSONFile), &budgets)
	if err != nil {
		return result, err
	}
	if found {
		for i := range budgets {
			if skip := s.importBudget(ctx, &budgets[i]); skip {
				result.Skipped++
				continue
			}
			result.Budgets++
		}
	}

	slog.Info("imported data from JSON",
		"dir", dir,
		"expenses", result.Expenses,
		"budgets", result.Budgets,
		"skipped", result.Skipped)
	return result, nil
}

// ClearAll deletes every stored expense and budget.
func (s *SQLiteStorage) ClearAll(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	for _, table := range []string{"expenses", "budgets"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}

	slog.Info("cleared all stored data")
	return nil
}

func (s *SQLiteStorage) importExpense(ctx context.Context, expense *model.Expense) (skip bool) {
	if err := expense.Validate(); err != nil {
		slog.Warn("skipping invalid expense record", "id", expense.ID, "error", err)
		return true
	}
	if err := s.SaveExpense(ctx, expense); err != nil {
		if errors.Is(err, common.ErrDuplicateEntry) {
			slog.Debug("skipping duplicate expense", "id", expense.ID)
		} else {
			slog.Warn("failed to import expense", "id", expense.ID, "error", err)
		}
		return true
	}
	return false
}

func (s *SQLiteStorage) importBudget(ctx context.Context, budget *model.Budget) (skip bool) {
	if err := budget.Validate(); err != nil {
		slog.Warn("skipping invalid budget record", "id", budget.ID, "error", err)
		return true
	}
	if err := s.SaveBudget(ctx, budget); err != nil {
		if errors.Is(err, common.ErrDuplicateEntry) {
			slog.Debug("skipping duplicate budget", "id", budget.ID)
		} else {
			slog.Warn("failed to import budget", "id", budget.ID, "error", err)
		}
		return true
	}
	return false
}

func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// readJSONFile decodes path into v. A missing file is not an error; found
// reports whether the file existed.
func readJSONFile(path string, v any) (found bool, err error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return true, nil
}
