// Package service defines the interfaces for all application services.
package service

import (
	"context"

	"tally/internal/model"
)

// Storage defines the contract for the persistence layer. Implementations
// must preserve every entity field across a save/load round trip.
type Storage interface {
	// Expense operations
	SaveExpense(ctx context.Context, expense *model.Expense) error
	ListExpenses(ctx context.Context) ([]model.Expense, error)
	GetExpensesByCategory(ctx context.Context, category string) ([]model.Expense, error)

	// Budget operations
	SaveBudget(ctx context.Context, budget *model.Budget) error
	ListBudgets(ctx context.Context) ([]model.Budget, error)
	// GetActiveBudgetByCategory returns the first stored active budget for
	// the category, or nil when none exists. First-match-wins is the
	// deliberate tie-break when a category has several active budgets.
	GetActiveBudgetByCategory(ctx context.Context, category string) (*model.Budget, error)

	// Bulk convenience operations
	ExportJSON(ctx context.Context, dir string) error
	ImportJSON(ctx context.Context, dir string) (ImportResult, error)
	ClearAll(ctx context.Context) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// ImportResult summarizes a bulk import: how many records of each kind were
// stored and how many were skipped as invalid or duplicate.
type ImportResult struct {
	Expenses int
	Budgets  int
	Skipped  int
}
