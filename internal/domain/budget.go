package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the renewal cadence of a budget. It only drives the
// default end date.
type BudgetPeriod string

const (
	PeriodMonthly   BudgetPeriod = "monthly"
	PeriodQuarterly BudgetPeriod = "quarterly"
	PeriodYearly    BudgetPeriod = "yearly"
)

func ParseBudgetPeriod(s string) (BudgetPeriod, error) {
	switch BudgetPeriod(s) {
	case PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return BudgetPeriod(s), nil
	}
	return "", fmt.Errorf("invalid budget period %q: must be monthly, quarterly or yearly", s)
}

// EndDate returns start advanced by one period. Overflowing days roll into
// the following month, so Jan 31 + 1 month is Mar 2 or 3.
func (p BudgetPeriod) EndDate(start time.Time) (time.Time, error) {
	switch p {
	case PeriodMonthly:
		return start.AddDate(0, 1, 0), nil
	case PeriodQuarterly:
		return start.AddDate(0, 3, 0), nil
	case PeriodYearly:
		return start.AddDate(1, 0, 0), nil
	}
	return time.Time{}, fmt.Errorf("invalid budget period %q", string(p))
}

type Budget struct {
	ID        string
	Category  string
	Amount    decimal.Decimal
	Period    BudgetPeriod
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Covers reports whether t falls inside [StartDate, EndDate].
func (b Budget) Covers(t time.Time) bool {
	return !t.Before(b.StartDate) && !t.After(b.EndDate)
}

// BudgetUpdate carries the fields of a budget update. Nil fields are left
// unchanged; EndDate is never derived on update.
type BudgetUpdate struct {
	Category  *string
	Amount    *decimal.Decimal
	Period    *BudgetPeriod
	StartDate *time.Time
	EndDate   *time.Time
	IsActive  *bool
}
