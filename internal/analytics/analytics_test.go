package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/domain"
)

// now is mid-month so windows on both sides are easy to reason about.
var now = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func tx(kind domain.TransactionKind, category, amount string, date time.Time) domain.Transaction {
	return domain.Transaction{Kind: kind, Category: category, Amount: d(amount), Date: date}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s got %s", want, got.String())
}

// -- percentage policies --

func TestSummaryChange(t *testing.T) {
	tests := []struct {
		name, current, previous, want string
	}{
		{"zero previous, positive current", "50", "0", "100"},
		{"zero previous, zero current", "0", "0", "0"},
		{"increase", "150", "100", "50"},
		{"decrease", "50", "200", "-75"},
		{"rounds to tenth", "100", "300", "-66.7"},
		{"rounds half away from zero", "100.05", "100", "0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.want, SummaryChange(d(tt.current), d(tt.previous)))
		})
	}
}

func TestSummaryBalanceChange(t *testing.T) {
	assertDecimal(t, "100", SummaryBalanceChange(d("10"), d("0")))
	assertDecimal(t, "-100", SummaryBalanceChange(d("-10"), d("0")))
	assertDecimal(t, "0", SummaryBalanceChange(d("0"), d("0")))
	// divides by |previous| so moving up from a deficit is positive
	assertDecimal(t, "150", SummaryBalanceChange(d("50"), d("-100")))
	assertDecimal(t, "-0.1", SummaryBalanceChange(d("-100.05"), d("-100")))
}

func TestComparisonChange(t *testing.T) {
	assertDecimal(t, "0", ComparisonChange(d("50"), d("0")))
	assertDecimal(t, "50", ComparisonChange(d("150"), d("100")))
	// not rounded to a tenth
	assert.True(t, ComparisonChange(d("4"), d("3")).GreaterThan(d("33.33")))

	assertDecimal(t, "0", ComparisonBalanceChange(d("-25"), d("0")))
	assertDecimal(t, "-125", ComparisonBalanceChange(d("-25"), d("100")))
	assertDecimal(t, "75", ComparisonBalanceChange(d("-25"), d("-100")))
}

// -- windows --

func TestWindows(t *testing.T) {
	prev := PreviousMonth(now)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), prev.From)
	assert.Equal(t, time.Date(2024, 5, 31, 23, 59, 59, 999000000, time.UTC), prev.To)

	cur := CurrentMonth(now)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), cur.From)
	assert.Equal(t, time.Date(2024, 6, 30, 23, 59, 59, 999000000, time.UTC), cur.To)

	mtd := MonthToDate(now)
	assert.Equal(t, now, mtd.To)

	january := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), PreviousMonth(january).From)
	assert.Equal(t, time.Date(2023, 12, 31, 23, 59, 59, 999000000, time.UTC), PreviousMonth(january).To)
}

// -- monthly trends --

func TestMonthlyTrends(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.KindIncome, "Salary", "1000", time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)),
		tx(domain.KindExpense, "Food", "40.50", time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)),
		tx(domain.KindExpense, "Rent", "500", time.Date(2024, 1, 20, 9, 0, 0, 0, time.UTC)),
		tx(domain.KindIncome, "Salary", "900", time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)),
		// before the six month window
		tx(domain.KindIncome, "Salary", "900", time.Date(2023, 12, 14, 0, 0, 0, 0, time.UTC)),
		// after now
		tx(domain.KindExpense, "Food", "10", time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)),
	}

	trends := MonthlyTrends(txs, now)
	require.Len(t, trends, 3)

	assert.Equal(t, "2024-01", trends[0].Month)
	assertDecimal(t, "0", trends[0].Income)
	assertDecimal(t, "500", trends[0].Expense)

	assert.Equal(t, "2024-03", trends[1].Month, "empty months are omitted")
	assertDecimal(t, "900", trends[1].Income)

	assert.Equal(t, "2024-06", trends[2].Month)
	assertDecimal(t, "1000", trends[2].Income)
	assertDecimal(t, "40.50", trends[2].Expense)

	window := TrendWindow(now)
	for i, trend := range trends {
		assert.GreaterOrEqual(t, trend.Month, MonthKey(window.From))
		assert.LessOrEqual(t, trend.Month, MonthKey(now))
		if i > 0 {
			assert.Less(t, trends[i-1].Month, trend.Month)
		}
	}
}

func TestMonthlyTrends_Empty(t *testing.T) {
	trends := MonthlyTrends(nil, now)
	assert.NotNil(t, trends)
	assert.Empty(t, trends)
}

// -- category totals --

func TestCategoryTotals(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.KindExpense, "Food", "10", now),
		tx(domain.KindExpense, "Rent", "500", now),
		tx(domain.KindExpense, "Food", "15.25", now),
		tx(domain.KindExpense, "Bills", "25.25", now),
		tx(domain.KindIncome, "Salary", "1000", now),
	}

	totals := CategoryTotals(txs, domain.TransactionQuery{Kind: domain.KindExpense})
	require.Len(t, totals, 3)
	assert.Equal(t, "Rent", totals[0].Key)
	// Bills and Food tie at 25.25 and are ordered by name
	assert.Equal(t, "Bills", totals[1].Key)
	assert.Equal(t, "Food", totals[2].Key)
	assertDecimal(t, "25.25", totals[2].Total)

	sum := decimal.Zero
	for _, total := range totals {
		sum = sum.Add(total.Total)
	}
	// group totals add up to the filtered amounts
	assertDecimal(t, "550.50", sum)
}

func TestCategoryTotals_DateRange(t *testing.T) {
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := EndOfDay(time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC))
	txs := []domain.Transaction{
		tx(domain.KindIncome, "Salary", "1000", time.Date(2024, 6, 10, 22, 0, 0, 0, time.UTC)),
		tx(domain.KindIncome, "Salary", "1000", time.Date(2024, 6, 11, 0, 0, 0, 0, time.UTC)),
		tx(domain.KindIncome, "Gift", "50", time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)),
	}

	totals := CategoryTotals(txs, domain.TransactionQuery{Kind: domain.KindIncome, From: &from, To: &to})
	require.Len(t, totals, 1)
	assert.Equal(t, "Salary", totals[0].Key)
	assertDecimal(t, "1000", totals[0].Total)
}

func TestGroupSum_Empty(t *testing.T) {
	totals := GroupSum([]string{}, func(s string) string { return s }, func(string) decimal.Decimal { return decimal.Zero })
	assert.NotNil(t, totals)
	assert.Empty(t, totals)
}

// -- summary --

func TestSummary(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.KindIncome, "Salary", "2000", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		tx(domain.KindExpense, "Rent", "800", time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)),
		tx(domain.KindIncome, "Salary", "1600", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		tx(domain.KindExpense, "Rent", "800", time.Date(2024, 5, 31, 23, 59, 59, 0, time.UTC)),
		tx(domain.KindExpense, "Food", "100", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
	}

	stats := Summary(txs, now)

	assertDecimal(t, "3600", stats.TotalIncome)
	assertDecimal(t, "1700", stats.TotalExpenses)
	assertDecimal(t, "1900", stats.Balance)
	assert.True(t, stats.TotalIncome.Sub(stats.TotalExpenses).Equal(stats.Balance))
	assert.Equal(t, 5, stats.TransactionCount)

	assertDecimal(t, "2000", stats.ThisMonth.Income)
	assertDecimal(t, "800", stats.ThisMonth.Expenses)
	assertDecimal(t, "1200", stats.ThisMonth.Balance)
	assertDecimal(t, "1600", stats.LastMonth.Income)
	assertDecimal(t, "800", stats.LastMonth.Balance)

	assertDecimal(t, "25", stats.Changes.Income)
	assertDecimal(t, "0", stats.Changes.Expenses)
	assertDecimal(t, "50", stats.Changes.Balance)
}

func TestSummary_NoLastMonth(t *testing.T) {
	stats := Summary([]domain.Transaction{
		tx(domain.KindIncome, "Salary", "50", time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)),
	}, now)

	assertDecimal(t, "100", stats.Changes.Income)
	assertDecimal(t, "0", stats.Changes.Expenses)
	assertDecimal(t, "100", stats.Changes.Balance)
}

func TestSummary_ExcludesFutureFromThisMonth(t *testing.T) {
	stats := Summary([]domain.Transaction{
		tx(domain.KindExpense, "Rent", "50", time.Date(2024, 6, 28, 0, 0, 0, 0, time.UTC)),
	}, now)

	assertDecimal(t, "50", stats.TotalExpenses)
	assertDecimal(t, "0", stats.ThisMonth.Expenses)
}

func TestSummary_Empty(t *testing.T) {
	stats := Summary(nil, now)
	assertDecimal(t, "0", stats.Balance)
	assert.Equal(t, 0, stats.TransactionCount)
	assertDecimal(t, "0", stats.Changes.Balance)
}

// -- month comparison --

func TestCompareMonths(t *testing.T) {
	txs := []domain.Transaction{
		tx(domain.KindIncome, "Salary", "1500", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		// later this month still counts for the comparison
		tx(domain.KindExpense, "Rent", "500", time.Date(2024, 6, 29, 0, 0, 0, 0, time.UTC)),
		tx(domain.KindIncome, "Salary", "1000", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)),
		tx(domain.KindIncome, "Gift", "100", time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)),
	}

	cmp := CompareMonths(txs, now)

	assertDecimal(t, "1500", cmp.Current.Income)
	assertDecimal(t, "500", cmp.Current.Expenses)
	assertDecimal(t, "1000", cmp.Current.Balance)
	assert.Equal(t, 2, cmp.Current.TransactionCount)
	assertDecimal(t, "1000", cmp.Previous.Balance)
	assert.Equal(t, 1, cmp.Previous.TransactionCount)

	assertDecimal(t, "50", cmp.Changes.Income)
	// no previous expenses reports 0, not 100
	assertDecimal(t, "0", cmp.Changes.Expenses)
	assertDecimal(t, "0", cmp.Changes.Balance)
	assertDecimal(t, "100", cmp.Changes.TransactionCount)
}

// -- budgets --

func budget(amount string) domain.Budget {
	return domain.Budget{
		Category:  "Food",
		Amount:    d(amount),
		Period:    domain.PeriodMonthly,
		StartDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
		IsActive:  true,
	}
}

func TestStatusOf_Thresholds(t *testing.T) {
	tests := []struct {
		spent   string
		percent string
		state   BudgetState
	}{
		{"80", "80", StateWarning},
		{"100", "100", StateExceeded},
		{"79.9", "79.9", StateSafe},
		{"120", "120", StateExceeded},
		{"0", "0", StateSafe},
	}
	for _, tt := range tests {
		t.Run(tt.spent, func(t *testing.T) {
			status := StatusOf(budget("100"), d(tt.spent))
			assertDecimal(t, tt.percent, status.PercentageUsed)
			assert.Equal(t, tt.state, status.State)
			assertDecimal(t, d("100").Sub(d(tt.spent)).String(), status.Remaining)
		})
	}
}

func TestStatusOf_RoundsPercentage(t *testing.T) {
	status := StatusOf(budget("300"), d("100"))
	assertDecimal(t, "33.3", status.PercentageUsed)
}

func TestStatusOf_ZeroAmountBudget(t *testing.T) {
	status := StatusOf(budget("0"), d("0"))
	assertDecimal(t, "100", status.PercentageUsed)
	assert.Equal(t, StateExceeded, status.State)
}

func TestSpent(t *testing.T) {
	b := budget("100")
	txs := []domain.Transaction{
		tx(domain.KindExpense, "Food", "10", b.StartDate),
		tx(domain.KindExpense, "Food", "20", b.EndDate),
		tx(domain.KindExpense, "Food", "99", b.EndDate.Add(time.Second)),
		tx(domain.KindExpense, "food", "99", b.StartDate),
		tx(domain.KindIncome, "Food", "99", b.StartDate),
	}
	assertDecimal(t, "30", Spent(b, txs))
}

func TestOverview(t *testing.T) {
	statuses := []BudgetStatus{
		StatusOf(budget("100"), d("100")), // exactly at budget: exceeded status, still on track
		StatusOf(budget("200"), d("250")),
		StatusOf(budget("300"), d("30")),
	}

	overview := Overview(statuses)

	assertDecimal(t, "600", overview.TotalBudgeted)
	assertDecimal(t, "380", overview.TotalSpent)
	assertDecimal(t, "220", overview.TotalRemaining)
	assertDecimal(t, "63.3", overview.OverallPercentage)
	assert.Equal(t, 1, overview.CategoriesOverBudget)
	assert.Equal(t, 2, overview.CategoriesOnTrack)
	assert.Equal(t, 3, overview.TotalCategories)
}

func TestOverview_Empty(t *testing.T) {
	overview := Overview(nil)
	assertDecimal(t, "0", overview.OverallPercentage)
	assert.Equal(t, 0, overview.TotalCategories)
}
