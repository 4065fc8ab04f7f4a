package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidPeriod is returned when a period token is not one of the
// supported recurrence units.
var ErrInvalidPeriod = errors.New("invalid budget period")

// Period is the recurrence unit of a budget.
type Period string

// Supported budget periods.
const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// ParsePeriod parses a period token case-insensitively into its canonical
// lower-case form.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q (must be one of daily, weekly, monthly, yearly)", ErrInvalidPeriod, s)
	}
}

// Valid reports whether the period is one of the supported units.
func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Budget represents a spending limit for a category over a period. A category
// may have several stored budgets; when resolving "the budget for category X"
// the first active one in storage order wins.
type Budget struct {
	CreatedAt time.Time `json:"created_date"`
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Period    Period    `json:"period"`
	Amount    float64   `json:"amount"`
	IsActive  bool      `json:"is_active"`
}

// NewBudget creates an active budget with a generated identifier. The period
// token is matched case-insensitively against the supported units.
func NewBudget(category string, amount float64, period string) (*Budget, error) {
	p, err := ParsePeriod(period)
	if err != nil {
		return nil, err
	}
	b := &Budget{
		ID:        uuid.New().String(),
		Category:  NormalizeCategory(category),
		Amount:    amount,
		Period:    p,
		CreatedAt: time.Now(),
		IsActive:  true,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the budget invariants. Reconstructed records are validated
// again so stored garbage never becomes a live entity.
func (b *Budget) Validate() error {
	if b.ID == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.Amount <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidAmount, b.Amount)
	}
	if !b.Period.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPeriod, b.Period)
	}
	return nil
}

// Equal reports whether two budgets refer to the same entity.
func (b *Budget) Equal(other *Budget) bool {
	if other == nil {
		return false
	}
	return b.ID == other.ID
}

// DailyEquivalent converts the budget amount to a per-day figure using fixed
// divisors (7, 30, 365). Monthly and yearly use constant approximations
// rather than calendar-exact day counts.
func (b *Budget) DailyEquivalent() float64 {
	switch b.Period {
	case PeriodDaily:
		return b.Amount
	case PeriodWeekly:
		return b.Amount / 7
	case PeriodMonthly:
		return b.Amount / 30
	case PeriodYearly:
		return b.Amount / 365
	default:
		return b.Amount
	}
}

// RemainingDaysInPeriod returns how many days remain in the period containing
// now, counting today. Weekly periods run Monday through Sunday; monthly and
// yearly periods end on the last calendar day, so month lengths and leap
// years follow real calendar arithmetic.
func (b *Budget) RemainingDaysInPeriod(now time.Time) int {
	switch b.Period {
	case PeriodDaily:
		return 1
	case PeriodWeekly:
		daysSinceMonday := (int(now.Weekday()) + 6) % 7
		return 7 - daysSinceMonday
	case PeriodMonthly:
		// Day 0 of the next month is the last day of this one.
		lastDay := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location())
		return lastDay.Day() - now.Day() + 1
	case PeriodYearly:
		lastDay := time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
		return lastDay.YearDay() - now.YearDay() + 1
	default:
		return 1
	}
}

// Remaining returns the budget left after spending, floored at zero.
func (b *Budget) Remaining(spent float64) float64 {
	if remaining := b.Amount - spent; remaining > 0 {
		return remaining
	}
	return 0
}

// UsagePercentage returns spent as a percentage of the budget, capped at 100.
func (b *Budget) UsagePercentage(spent float64) float64 {
	if b.Amount == 0 {
		return 0
	}
	pct := spent / b.Amount * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// IsOverBudget reports whether spending has exceeded the budget amount.
func (b *Budget) IsOverBudget(spent float64) bool {
	return spent > b.Amount
}

// StatusTier classifies budget usage into display bands.
type StatusTier string

// Status tiers, from most to least severe. Thresholds are inclusive lower
// bounds on usage percentage, evaluated highest-first.
const (
	TierExceeded StatusTier = "exceeded"  // >= 100%
	TierCritical StatusTier = "critical"  // >= 90%
	TierWarning  StatusTier = "warning"   // >= 80%
	TierHalfUsed StatusTier = "half-used" // >= 50%
	TierOnTrack  StatusTier = "on-track"
)

// BudgetStatus carries the evaluated numbers for one budget so callers can
// render them however they like.
type BudgetStatus struct {
	Tier       StatusTier
	Spent      float64
	Remaining  float64
	Percentage float64
	Overage    float64
}

// Status evaluates spending against the budget and returns the tier together
// with the computed remaining amount, usage percentage, and overage.
func (b *Budget) Status(spent float64) BudgetStatus {
	status := BudgetStatus{
		Spent:      spent,
		Remaining:  b.Remaining(spent),
		Percentage: b.UsagePercentage(spent),
	}
	if spent > b.Amount {
		status.Overage = spent - b.Amount
	}

	switch {
	case status.Percentage >= 100:
		status.Tier = TierExceeded
	case status.Percentage >= 90:
		status.Tier = TierCritical
	case status.Percentage >= 80:
		status.Tier = TierWarning
	case status.Percentage >= 50:
		status.Tier = TierHalfUsed
	default:
		status.Tier = TierOnTrack
	}
	return status
}

// Message returns the human status line for the tier.
func (s BudgetStatus) Message() string {
	switch s.Tier {
	case TierExceeded:
		return fmt.Sprintf("Budget exceeded! Over by %.2f", s.Overage)
	case TierCritical:
		return fmt.Sprintf("Critical: %.1f%% used, %.2f remaining", s.Percentage, s.Remaining)
	case TierWarning:
		return fmt.Sprintf("Warning: %.1f%% used, %.2f remaining", s.Percentage, s.Remaining)
	case TierHalfUsed:
		return fmt.Sprintf("Half used: %.1f%% used, %.2f remaining", s.Percentage, s.Remaining)
	default:
		return fmt.Sprintf("On track: %.1f%% used, %.2f remaining", s.Percentage, s.Remaining)
	}
}
