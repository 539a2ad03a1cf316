package analytics

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/domain"
)

// MonthlyTrend is one year-month bucket of the trend series.
type MonthlyTrend struct {
	Month   string
	Income  decimal.Decimal
	Expense decimal.Decimal
}

// MonthKey formats the bucket key for t, e.g. "2024-03".
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// MonthlyTrends buckets the transactions of the last six months by
// year-month. Months without transactions are omitted, and buckets are
// ascending by key. Dates are bucketed in now's location.
func MonthlyTrends(txs []domain.Transaction, now time.Time) []MonthlyTrend {
	window := TrendWindow(now)
	buckets := make(map[string]*MonthlyTrend)

	for _, tx := range txs {
		if !window.Contains(tx.Date) {
			continue
		}
		key := MonthKey(tx.Date.In(now.Location()))
		bucket, ok := buckets[key]
		if !ok {
			bucket = &MonthlyTrend{Month: key, Income: decimal.Zero, Expense: decimal.Zero}
			buckets[key] = bucket
		}
		if tx.Kind == domain.KindIncome {
			bucket.Income = bucket.Income.Add(tx.Amount)
		} else {
			bucket.Expense = bucket.Expense.Add(tx.Amount)
		}
	}

	result := make([]MonthlyTrend, 0, len(buckets))
	for _, bucket := range buckets {
		result = append(result, *bucket)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Month < result[j].Month
	})
	return result
}
