package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/domain"
)

const trendMonths = 6

// Window is an inclusive time range.
type Window struct {
	From time.Time
	To   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.From) && !t.After(w.To)
}

// MonthStart is midnight on the first day of t's month, in t's location.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// EndOfDay is the last millisecond of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// CurrentMonth spans the whole calendar month containing now, future days included.
func CurrentMonth(now time.Time) Window {
	start := MonthStart(now)
	return Window{From: start, To: EndOfDay(start.AddDate(0, 1, -1))}
}

// MonthToDate spans the first of now's month through now.
func MonthToDate(now time.Time) Window {
	return Window{From: MonthStart(now), To: now}
}

// PreviousMonth spans the whole calendar month before now's.
func PreviousMonth(now time.Time) Window {
	start := MonthStart(now).AddDate(0, -1, 0)
	return Window{From: start, To: EndOfDay(MonthStart(now).AddDate(0, 0, -1))}
}

// TrendWindow spans the six months ending at now.
func TrendWindow(now time.Time) Window {
	return Window{From: now.AddDate(0, -trendMonths, 0), To: now}
}

// Totals holds per-kind sums over a set of transactions.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Count   int
}

func (t Totals) Balance() decimal.Decimal {
	return t.Income.Sub(t.Expense)
}

func (t *Totals) add(tx domain.Transaction) {
	switch tx.Kind {
	case domain.KindIncome:
		t.Income = t.Income.Add(tx.Amount)
	case domain.KindExpense:
		t.Expense = t.Expense.Add(tx.Amount)
	}
	t.Count++
}

// TotalsIn sums the transactions inside w. A nil window sums everything.
func TotalsIn(txs []domain.Transaction, w *Window) Totals {
	totals := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, tx := range txs {
		if w != nil && !w.Contains(tx.Date) {
			continue
		}
		totals.add(tx)
	}
	return totals
}
