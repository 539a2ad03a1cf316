package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/domain"
)

// PeriodTotals is the income/expense/balance triple of one period.
type PeriodTotals struct {
	Income   decimal.Decimal
	Expenses decimal.Decimal
	Balance  decimal.Decimal
}

func periodTotals(t Totals) PeriodTotals {
	return PeriodTotals{Income: t.Income, Expenses: t.Expense, Balance: t.Balance()}
}

// Changes holds percentage changes between two periods.
type Changes struct {
	Income           decimal.Decimal
	Expenses         decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount decimal.Decimal
}

// SummaryStats are all-time totals plus this month against last month.
type SummaryStats struct {
	TotalIncome      decimal.Decimal
	TotalExpenses    decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int
	ThisMonth        PeriodTotals
	LastMonth        PeriodTotals
	Changes          Changes
}

// Summary computes all-time totals plus this-month (first of month through
// now) against the full previous month.
func Summary(txs []domain.Transaction, now time.Time) SummaryStats {
	thisWindow := MonthToDate(now)
	lastWindow := PreviousMonth(now)

	all := TotalsIn(txs, nil)
	thisMonth := periodTotals(TotalsIn(txs, &thisWindow))
	lastMonth := periodTotals(TotalsIn(txs, &lastWindow))

	return SummaryStats{
		TotalIncome:      all.Income,
		TotalExpenses:    all.Expense,
		Balance:          all.Balance(),
		TransactionCount: all.Count,
		ThisMonth:        thisMonth,
		LastMonth:        lastMonth,
		Changes: Changes{
			Income:   SummaryChange(thisMonth.Income, lastMonth.Income),
			Expenses: SummaryChange(thisMonth.Expenses, lastMonth.Expenses),
			Balance:  SummaryBalanceChange(thisMonth.Balance, lastMonth.Balance),
		},
	}
}
