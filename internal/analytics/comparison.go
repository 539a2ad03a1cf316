package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/domain"
)

// ComparisonPeriod is the totals and transaction count of one calendar month.
type ComparisonPeriod struct {
	PeriodTotals
	TransactionCount int
}

// MonthComparison contrasts the current calendar month with the previous one.
type MonthComparison struct {
	Current  ComparisonPeriod
	Previous ComparisonPeriod
	Changes  Changes
}

// CompareMonths contrasts the full current calendar month with the full
// previous one. Unlike Summary, a zero (or for income/expense, non-positive)
// previous value yields a change of 0.
func CompareMonths(txs []domain.Transaction, now time.Time) MonthComparison {
	currentWindow := CurrentMonth(now)
	previousWindow := PreviousMonth(now)

	current := TotalsIn(txs, &currentWindow)
	previous := TotalsIn(txs, &previousWindow)

	cur := ComparisonPeriod{PeriodTotals: periodTotals(current), TransactionCount: current.Count}
	prev := ComparisonPeriod{PeriodTotals: periodTotals(previous), TransactionCount: previous.Count}

	return MonthComparison{
		Current:  cur,
		Previous: prev,
		Changes: Changes{
			Income:   ComparisonChange(cur.Income, prev.Income),
			Expenses: ComparisonChange(cur.Expenses, prev.Expenses),
			Balance:  ComparisonBalanceChange(cur.Balance, prev.Balance),
			TransactionCount: ComparisonChange(
				decimal.NewFromInt(int64(cur.TransactionCount)),
				decimal.NewFromInt(int64(prev.TransactionCount)),
			),
		},
	}
}
