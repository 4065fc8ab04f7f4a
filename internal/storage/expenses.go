package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"tally/internal/common"
	"tally/internal/model"

	"github.com/mattn/go-sqlite3"
)

// SaveExpense appends a new expense record. Identifiers are unique within the
// store; saving an expense whose ID already exists reports ErrDuplicateEntry.
func (s *SQLiteStorage) SaveExpense(ctx context.Context, expense *model.Expense) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateExpense(expense); err != nil {
		return err
	}

	query := `
		INSERT INTO expenses (id, name, category, amount, created_at)
		VALUES (?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		expense.ID, expense.Name, expense.Category, expense.Amount, expense.CreatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: expense %s", common.ErrDuplicateEntry, expense.ID)
		}
		return fmt.Errorf("failed to save expense: %w", err)
	}

	slog.Debug("saved expense",
		"id", expense.ID,
		"category", expense.Category,
		"amount", expense.Amount)
	return nil
}

// ListExpenses returns all stored expenses in storage (insertion) order.
// Records that no longer satisfy the entity invariants are skipped with a
// logged diagnostic rather than failing the whole load.
func (s *SQLiteStorage) ListExpenses(ctx context.Context) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, category, amount, created_at
		FROM expenses
		ORDER BY rowid`

	return s.queryExpenses(ctx, query)
}

// GetExpensesByCategory returns the expenses for one category in storage
// order. Matching is case-insensitive.
func (s *SQLiteStorage) GetExpensesByCategory(ctx context.Context, category string) ([]model.Expense, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(category, "category"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, category, amount, created_at
		FROM expenses
		WHERE category = ? COLLATE NOCASE
		ORDER BY rowid`

	return s.queryExpenses(ctx, query, category)
}

func (s *SQLiteStorage) queryExpenses(ctx context.Context, query string, args ...any) ([]model.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		if err := rows.Scan(&e.ID, &e.Name, &e.Category, &e.Amount, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		if err := e.Validate(); err != nil {
			slog.Warn("skipping invalid expense record", "id", e.ID, "error", err)
			continue
		}
		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}
