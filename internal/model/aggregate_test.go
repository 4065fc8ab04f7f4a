package model

import (
	"testing"
	"time"
)

func testExpense(id, name, category string, amount float64) Expense {
	return Expense{
		ID:        id,
		Name:      name,
		Category:  category,
		Amount:    amount,
		CreatedAt: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestTotalSpending(t *testing.T) {
	expenses := []Expense{
		testExpense("e1", "Lunch", "food", 10),
		testExpense("e2", "Dinner", "Food", 5),
		testExpense("e3", "Bus", "transport", 3),
	}

	tests := []struct {
		name     string
		category string
		expenses []Expense
		want     float64
	}{
		{name: "no filter sums everything", expenses: expenses, category: "", want: 18},
		{name: "filter matches case-insensitively", expenses: expenses, category: "food", want: 15},
		{name: "filter with different case", expenses: expenses, category: "FOOD", want: 15},
		{name: "filter with no matches", expenses: expenses, category: "housing", want: 0},
		{name: "empty input", expenses: nil, category: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TotalSpending(tt.expenses, tt.category); got != tt.want {
				t.Errorf("TotalSpending(%q) = %v, want %v", tt.category, got, tt.want)
			}
		})
	}
}

func TestExpensesByCategory(t *testing.T) {
	expenses := []Expense{
		testExpense("e1", "Lunch", "food", 10),
		testExpense("e2", "Bus", "transport", 3),
		testExpense("e3", "Dinner", "Food", 5),
		testExpense("e4", "Groceries", "FOOD", 42),
	}

	matched := ExpensesByCategory(expenses, "food")
	if len(matched) != 3 {
		t.Fatalf("expected 3 matches, got %d", len(matched))
	}

	// Original relative order is preserved.
	wantIDs := []string{"e1", "e3", "e4"}
	for i, want := range wantIDs {
		if matched[i].ID != want {
			t.Errorf("matched[%d].ID = %q, want %q", i, matched[i].ID, want)
		}
	}

	if got := ExpensesByCategory(expenses, "housing"); got != nil {
		t.Errorf("expected nil for unmatched category, got %v", got)
	}
}
