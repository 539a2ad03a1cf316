package budget

import (
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/analytics"
	"github.com/carson-networks/finance-tracker/internal/domain"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httputil"
	"github.com/carson-networks/finance-tracker/internal/service"
)

const basePath = "/api/budgets"

// Budget is the API response model for a budget.
type Budget struct {
	ID        string    `json:"id" doc:"Budget identifier"`
	Category  string    `json:"category" doc:"Category the budget caps"`
	Amount    float64   `json:"amount" doc:"Spending cap for the period"`
	Period    string    `json:"period" enum:"monthly,quarterly,yearly" doc:"Renewal cadence"`
	StartDate time.Time `json:"startDate" doc:"Start of the covered period"`
	EndDate   time.Time `json:"endDate" doc:"End of the covered period, inclusive"`
	IsActive  bool      `json:"isActive" doc:"Whether the budget is tracked"`
	CreatedAt time.Time `json:"createdAt" doc:"Creation time"`
	UpdatedAt time.Time `json:"updatedAt" doc:"Last update time"`
}

func budgetFromDomain(b *domain.Budget) Budget {
	return Budget{
		ID:        b.ID,
		Category:  b.Category,
		Amount:    httputil.Number(b.Amount),
		Period:    string(b.Period),
		StartDate: b.StartDate,
		EndDate:   b.EndDate,
		IsActive:  b.IsActive,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// BudgetStatus reports one active budget against what was spent in its period.
type BudgetStatus struct {
	ID             string    `json:"id" doc:"Budget identifier"`
	Category       string    `json:"category" doc:"Budget category"`
	BudgetAmount   float64   `json:"budgetAmount" doc:"Spending cap"`
	Spent          float64   `json:"spent" doc:"Expenses in the period"`
	Remaining      float64   `json:"remaining" doc:"Cap minus spent, negative when over"`
	PercentageUsed float64   `json:"percentageUsed" doc:"Spent as a percentage of the cap, one decimal"`
	Status         string    `json:"status" enum:"safe,warning,exceeded" doc:"safe below 80, warning below 100, else exceeded"`
	Period         string    `json:"period" doc:"Renewal cadence"`
	StartDate      time.Time `json:"startDate" doc:"Start of the covered period"`
	EndDate        time.Time `json:"endDate" doc:"End of the covered period"`
}

func statusFromAnalytics(s *analytics.BudgetStatus) BudgetStatus {
	return BudgetStatus{
		ID:             s.Budget.ID,
		Category:       s.Budget.Category,
		BudgetAmount:   httputil.Number(s.Budget.Amount),
		Spent:          httputil.Number(s.Spent),
		Remaining:      httputil.Number(s.Remaining),
		PercentageUsed: httputil.Number(s.PercentageUsed),
		Status:         string(s.State),
		Period:         string(s.Budget.Period),
		StartDate:      s.Budget.StartDate,
		EndDate:        s.Budget.EndDate,
	}
}

// BudgetIDInput is the Huma input for single-budget lookups.
type BudgetIDInput struct {
	ID string `path:"id" doc:"Budget identifier"`
}

// BudgetOutput is the Huma output carrying one budget.
type BudgetOutput struct {
	Body Budget
}

// MessageBody confirms an operation that returns no record.
type MessageBody struct {
	Message string `json:"message" doc:"Outcome of the operation"`
}

// MessageOutput is the Huma output for operations that only confirm.
type MessageOutput struct {
	Body MessageBody
}

func storeError(err error, message string) error {
	if errors.Is(err, service.ErrNotFound) {
		return huma.NewError(http.StatusNotFound, "Budget not found")
	}
	return huma.NewError(http.StatusInternalServerError, message, err)
}

func parseDateField(name, value string) (*time.Time, error) {
	t, err := httputil.ParseDate(name, value, false)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid "+name, err)
	}
	return t, nil
}
