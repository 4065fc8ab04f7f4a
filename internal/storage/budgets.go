package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"tally/internal/common"
	"tally/internal/model"

	"github.com/mattn/go-sqlite3"
)

// SaveBudget appends a new budget record. A category may accumulate several
// budget records; resolution picks the first active one in storage order.
func (s *SQLiteStorage) SaveBudget(ctx context.Context, budget *model.Budget) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateBudget(budget); err != nil {
		return err
	}

	query := `
		INSERT INTO budgets (id, category, amount, period, created_at, is_active)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		budget.ID, budget.Category, budget.Amount, string(budget.Period), budget.CreatedAt, budget.IsActive)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: budget %s", common.ErrDuplicateEntry, budget.ID)
		}
		return fmt.Errorf("failed to save budget: %w", err)
	}

	slog.Debug("saved budget",
		"id", budget.ID,
		"category", budget.Category,
		"amount", budget.Amount,
		"period", budget.Period)
	return nil
}

// ListBudgets returns all stored budgets in storage (insertion) order,
// including inactive ones. Invalid records are skipped with a logged
// diagnostic.
func (s *SQLiteStorage) ListBudgets(ctx context.Context) ([]model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `
		SELECT id, category, amount, period, created_at, is_active
		FROM budgets
		ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets: %w", err)
	}
	defer rows.Close()

	var budgets []model.Budget
	for rows.Next() {
		var b model.Budget
		var period string
		if err := rows.Scan(&b.ID, &b.Category, &b.Amount, &period, &b.CreatedAt, &b.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		b.Period = model.Period(period)
		if err := b.Validate(); err != nil {
			slog.Warn("skipping invalid budget record", "id", b.ID, "error", err)
			continue
		}
		budgets = append(budgets, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budgets: %w", err)
	}

	return budgets, nil
}

// GetActiveBudgetByCategory returns the first stored active budget for the
// category, matched case-insensitively, or nil when the category has no
// active budget. First-match-wins is the deliberate tie-break when several
// active budgets exist.
func (s *SQLiteStorage) GetActiveBudgetByCategory(ctx context.Context, category string) (*model.Budget, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(category, "category"); err != nil {
		return nil, err
	}

	query := `
		SELECT id, category, amount, period, created_at, is_active
		FROM budgets
		WHERE category = ? COLLATE NOCASE AND is_active = 1
		ORDER BY rowid
		LIMIT 1`

	var b model.Budget
	var period string
	err := s.db.QueryRowContext(ctx, query, category).Scan(
		&b.ID, &b.Category, &b.Amount, &period, &b.CreatedAt, &b.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil // No active budget for this category
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query budget: %w", err)
	}

	b.Period = model.Period(period)
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("stored budget %s is invalid: %w", b.ID, err)
	}

	return &b, nil
}
