package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"tally/internal/common"
	"tally/internal/model"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := NewSQLiteStorage(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return store
}

// Helper function to create test expenses.
func createTestExpenses(count int) []model.Expense {
	expenses := make([]model.Expense, count)
	baseTime := time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

	categories := []string{"food", "transport", "housing"}
	for i := 0; i < count; i++ {
		expenses[i] = model.Expense{
			ID:        fmt.Sprintf("exp-%03d", i+1),
			Name:      fmt.Sprintf("Expense #%d", i+1),
			Category:  categories[i%len(categories)],
			Amount:    float64(i+1) * 10.50,
			CreatedAt: baseTime.Add(time.Duration(i) * time.Hour),
		}
	}
	return expenses
}

func TestSQLiteStorage_SaveAndListExpenses(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	saved := createTestExpenses(3)
	for i := range saved {
		if err := store.SaveExpense(ctx, &saved[i]); err != nil {
			t.Fatalf("SaveExpense() error: %v", err)
		}
	}

	loaded, err := store.ListExpenses(ctx)
	if err != nil {
		t.Fatalf("ListExpenses() error: %v", err)
	}
	if len(loaded) != len(saved) {
		t.Fatalf("expected %d expenses, got %d", len(saved), len(loaded))
	}

	// Storage order and every field must survive the round trip.
	for i := range saved {
		got, want := loaded[i], saved[i]
		if got.ID != want.ID {
			t.Errorf("expense %d: ID = %q, want %q", i, got.ID, want.ID)
		}
		if got.Name != want.Name {
			t.Errorf("expense %d: Name = %q, want %q", i, got.Name, want.Name)
		}
		if got.Category != want.Category {
			t.Errorf("expense %d: Category = %q, want %q", i, got.Category, want.Category)
		}
		if got.Amount != want.Amount {
			t.Errorf("expense %d: Amount = %v, want %v", i, got.Amount, want.Amount)
		}
		if !got.CreatedAt.Equal(want.CreatedAt) {
			t.Errorf("expense %d: CreatedAt = %v, want %v", i, got.CreatedAt, want.CreatedAt)
		}
	}
}

func TestSQLiteStorage_SaveExpense_Duplicate(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	expense := createTestExpenses(1)[0]
	if err := store.SaveExpense(ctx, &expense); err != nil {
		t.Fatalf("SaveExpense() error: %v", err)
	}

	err := store.SaveExpense(ctx, &expense)
	if !errors.Is(err, common.ErrDuplicateEntry) {
		t.Errorf("SaveExpense() error = %v, want %v", err, common.ErrDuplicateEntry)
	}
}

func TestSQLiteStorage_SaveExpense_Invalid(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	bad := model.Expense{ID: "exp-bad", Name: "Lunch", Category: "food", Amount: -10, CreatedAt: time.Now()}
	if err := store.SaveExpense(ctx, &bad); !errors.Is(err, model.ErrInvalidAmount) {
		t.Errorf("SaveExpense() error = %v, want %v", err, model.ErrInvalidAmount)
	}

	if err := store.SaveExpense(ctx, nil); !errors.Is(err, ErrNilParameter) {
		t.Errorf("SaveExpense(nil) error = %v, want %v", err, ErrNilParameter)
	}
}

func TestSQLiteStorage_GetExpensesByCategory(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	expenses := []model.Expense{
		{ID: "e1", Name: "Lunch", Category: "food", Amount: 10, CreatedAt: time.Now()},
		{ID: "e2", Name: "Bus", Category: "transport", Amount: 3, CreatedAt: time.Now()},
		{ID: "e3", Name: "Dinner", Category: "food", Amount: 5, CreatedAt: time.Now()},
	}
	for i := range expenses {
		if err := store.SaveExpense(ctx, &expenses[i]); err != nil {
			t.Fatalf("SaveExpense() error: %v", err)
		}
	}

	tests := []struct {
		name     string
		category string
		wantIDs  []string
	}{
		{name: "exact case", category: "food", wantIDs: []string{"e1", "e3"}},
		{name: "case-insensitive match", category: "FOOD", wantIDs: []string{"e1", "e3"}},
		{name: "no matches", category: "housing", wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.GetExpensesByCategory(ctx, tt.category)
			if err != nil {
				t.Fatalf("GetExpensesByCategory() error: %v", err)
			}
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("expected %d expenses, got %d", len(tt.wantIDs), len(got))
			}
			for i, want := range tt.wantIDs {
				if got[i].ID != want {
					t.Errorf("result[%d].ID = %q, want %q", i, got[i].ID, want)
				}
			}
		})
	}
}

func TestSQLiteStorage_MigrateIsIdempotent(t *testing.T) {
	store := createTestStorage(t)

	if err := store.Migrate(context.Background()); err != nil {
		t.Errorf("second Migrate() should be a no-op, got error: %v", err)
	}
}
