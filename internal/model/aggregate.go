package model

import "strings"

// TotalSpending sums expense amounts, optionally restricted to one category.
// An empty category sums everything. Category matching is case-insensitive.
func TotalSpending(expenses []Expense, category string) float64 {
	var total float64
	for _, e := range expenses {
		if category == "" || strings.EqualFold(e.Category, category) {
			total += e.Amount
		}
	}
	return total
}

// ExpensesByCategory returns the expenses matching the category, preserving
// their original relative order.
func ExpensesByCategory(expenses []Expense, category string) []Expense {
	var matched []Expense
	for _, e := range expenses {
		if strings.EqualFold(e.Category, category) {
			matched = append(matched, e)
		}
	}
	return matched
}
