// Package model defines the core entities for budget and expense tracking.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Validation errors shared by the entity constructors.
var (
	ErrInvalidAmount = errors.New("amount must be positive")
	ErrMissingID     = errors.New("id is required")
	ErrEmptyName     = errors.New("name cannot be empty")
	ErrEmptyCategory = errors.New("category cannot be empty")
)

// Expense represents a single recorded expense. Expenses are immutable after
// construction; identity is the ID field, not the value of the other fields.
type Expense struct {
	CreatedAt time.Time `json:"created_date"`
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
}

// NewExpense creates an expense with a generated identifier and the current
// time as its creation timestamp. The name is trimmed and the category is
// trimmed and lower-cased; both must be non-empty and the amount positive.
func NewExpense(name, category string, amount float64) (*Expense, error) {
	e := &Expense{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Category:  NormalizeCategory(category),
		Amount:    amount,
		CreatedAt: time.Now(),
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks the expense invariants. It is called by the constructor and
// again when an expense is reconstructed from a stored record, so a corrupt
// record never becomes a live entity.
func (e *Expense) Validate() error {
	if e.ID == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if e.Amount <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidAmount, e.Amount)
	}
	return nil
}

// Equal reports whether two expenses refer to the same entity. Identity is
// carried by the ID alone.
func (e *Expense) Equal(other *Expense) bool {
	if other == nil {
		return false
	}
	return e.ID == other.ID
}

// NormalizeCategory trims and lower-cases a category label. Categories are
// free-text; comparison elsewhere is case-insensitive.
func NormalizeCategory(category string) string {
	return strings.ToLower(strings.TrimSpace(category))
}
