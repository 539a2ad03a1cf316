package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/domain"
)

// BudgetState classifies how much of a budget has been used.
type BudgetState string

const (
	StateSafe     BudgetState = "safe"
	StateWarning  BudgetState = "warning"
	StateExceeded BudgetState = "exceeded"
)

var (
	warningThreshold  = decimal.NewFromInt(80)
	exceededThreshold = hundred
)

// BudgetStatus is a budget together with its spending so far.
type BudgetStatus struct {
	Budget         domain.Budget
	Spent          decimal.Decimal
	Remaining      decimal.Decimal
	PercentageUsed decimal.Decimal
	State          BudgetState
}

// Spent sums the expenses charged to b: same category, dated inside the
// budget's inclusive period.
func Spent(b domain.Budget, txs []domain.Transaction) decimal.Decimal {
	spent := decimal.Zero
	for _, tx := range txs {
		if tx.Kind != domain.KindExpense || tx.Category != b.Category || !b.Covers(tx.Date) {
			continue
		}
		spent = spent.Add(tx.Amount)
	}
	return spent
}

// StatusOf classifies b given what was spent against it. A budget with a
// non-positive amount cannot be divided against; it reports 100 percent
// used and is exceeded.
func StatusOf(b domain.Budget, spent decimal.Decimal) BudgetStatus {
	status := BudgetStatus{
		Budget:    b,
		Spent:     spent,
		Remaining: b.Amount.Sub(spent),
	}

	if !b.Amount.IsPositive() {
		status.PercentageUsed = hundred
		status.State = StateExceeded
		return status
	}

	percentage := spent.Div(b.Amount).Mul(hundred)
	switch {
	case percentage.GreaterThanOrEqual(exceededThreshold):
		status.State = StateExceeded
	case percentage.GreaterThanOrEqual(warningThreshold):
		status.State = StateWarning
	default:
		status.State = StateSafe
	}
	status.PercentageUsed = roundTenth(percentage)
	return status
}

// BudgetOverview aggregates the statuses of all active budgets.
type BudgetOverview struct {
	TotalBudgeted        decimal.Decimal
	TotalSpent           decimal.Decimal
	TotalRemaining       decimal.Decimal
	OverallPercentage    decimal.Decimal
	CategoriesOverBudget int
	CategoriesOnTrack    int
	TotalCategories      int
}

// Overview aggregates per-budget statuses. A budget counts as over only
// when spent strictly exceeds its amount, so one at exactly 100 percent is
// on track here even though its status is exceeded.
func Overview(statuses []BudgetStatus) BudgetOverview {
	overview := BudgetOverview{
		TotalBudgeted:     decimal.Zero,
		TotalSpent:        decimal.Zero,
		OverallPercentage: decimal.Zero,
		TotalCategories:   len(statuses),
	}

	for _, s := range statuses {
		overview.TotalBudgeted = overview.TotalBudgeted.Add(s.Budget.Amount)
		overview.TotalSpent = overview.TotalSpent.Add(s.Spent)
		if s.Spent.GreaterThan(s.Budget.Amount) {
			overview.CategoriesOverBudget++
		} else {
			overview.CategoriesOnTrack++
		}
	}

	overview.TotalRemaining = overview.TotalBudgeted.Sub(overview.TotalSpent)
	if overview.TotalBudgeted.IsPositive() {
		overview.OverallPercentage = roundTenth(overview.TotalSpent.Div(overview.TotalBudgeted).Mul(hundred))
	}
	return overview
}
