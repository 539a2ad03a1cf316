package budget

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/analytics"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httputil"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// BudgetStatusesOutput is the Huma output for the per-budget status list.
type BudgetStatusesOutput struct {
	Body []BudgetStatus
}

// BudgetOverviewBody aggregates every active budget.
type BudgetOverviewBody struct {
	TotalBudgeted        float64 `json:"totalBudgeted" doc:"Sum of active budget caps"`
	TotalSpent           float64 `json:"totalSpent" doc:"Sum of spending against them"`
	TotalRemaining       float64 `json:"totalRemaining" doc:"Budgeted minus spent"`
	OverallPercentage    float64 `json:"overallPercentage" doc:"Spent as a percentage of budgeted, 0 when nothing is budgeted"`
	CategoriesOverBudget int     `json:"categoriesOverBudget" doc:"Budgets whose spending is above the cap"`
	CategoriesOnTrack    int     `json:"categoriesOnTrack" doc:"All other budgets"`
	TotalCategories      int     `json:"totalCategories" doc:"Number of active budgets"`
}

// BudgetOverviewOutput is the Huma output for the budget overview.
type BudgetOverviewOutput struct {
	Body BudgetOverviewBody
}

// CategoryBudgetInput is the Huma input for the per-category lookup.
type CategoryBudgetInput struct {
	Category string `path:"category" doc:"Category name"`
}

// CategoryBudgetBody is the current budget of one category with its status.
type CategoryBudgetBody struct {
	Budget         Budget  `json:"budget" doc:"The active budget covering today"`
	Spent          float64 `json:"spent" doc:"Expenses in the budget period"`
	Remaining      float64 `json:"remaining" doc:"Cap minus spent"`
	PercentageUsed float64 `json:"percentageUsed" doc:"Spent as a percentage of the cap, one decimal"`
	Status         string  `json:"status" enum:"safe,warning,exceeded" doc:"Budget state"`
}

// CategoryBudgetOutput is the Huma output for the per-category lookup.
type CategoryBudgetOutput struct {
	Body CategoryBudgetBody
}

type budgetStatusReader interface {
	BudgetStatuses(ctx context.Context) ([]analytics.BudgetStatus, error)
	BudgetOverview(ctx context.Context) (analytics.BudgetOverview, error)
	BudgetForCategory(ctx context.Context, category string) (*analytics.BudgetStatus, error)
}

// BudgetStatusHandler serves the read-only budget status views.
type BudgetStatusHandler struct {
	BudgetService budgetStatusReader
}

func NewBudgetStatusHandler(svc budgetStatusReader) *BudgetStatusHandler {
	return &BudgetStatusHandler{BudgetService: svc}
}

// Register registers the status, overview and per-category endpoints.
func (h *BudgetStatusHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-budget-statuses",
		Method:      http.MethodGet,
		Path:        basePath + "/status/all",
		Summary:     "Budget status",
		Description: "Reports every active budget against its spending.",
		Tags:        []string{"Budgets"},
	}, h.handleStatuses)

	huma.Register(api, huma.Operation{
		OperationID: "get-budget-overview",
		Method:      http.MethodGet,
		Path:        basePath + "/overview/summary",
		Summary:     "Budget overview",
		Description: "Aggregates the status of all active budgets.",
		Tags:        []string{"Budgets"},
	}, h.handleOverview)

	huma.Register(api, huma.Operation{
		OperationID: "get-category-budget",
		Method:      http.MethodGet,
		Path:        basePath + "/category/{category}",
		Summary:     "Current budget for a category",
		Description: "Returns the active budget for the category whose period contains today.",
		Tags:        []string{"Budgets"},
	}, h.handleCategory)
}

func (h *BudgetStatusHandler) handleStatuses(ctx context.Context, _ *struct{}) (*BudgetStatusesOutput, error) {
	logData := logging.GetLogData(ctx)
	statuses, err := logging.Timed(logData, "budgetStatusesMs", func() ([]analytics.BudgetStatus, error) {
		return h.BudgetService.BudgetStatuses(ctx)
	})
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Error fetching budget status", err)
	}

	if logData != nil {
		logData.AddData("budgetCount", len(statuses))
	}

	resp := make([]BudgetStatus, len(statuses))
	for i := range statuses {
		resp[i] = statusFromAnalytics(&statuses[i])
	}
	return &BudgetStatusesOutput{Body: resp}, nil
}

func (h *BudgetStatusHandler) handleOverview(ctx context.Context, _ *struct{}) (*BudgetOverviewOutput, error) {
	overview, err := logging.Timed(logging.GetLogData(ctx), "budgetOverviewMs", func() (analytics.BudgetOverview, error) {
		return h.BudgetService.BudgetOverview(ctx)
	})
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Error fetching budget overview", err)
	}

	return &BudgetOverviewOutput{Body: BudgetOverviewBody{
		TotalBudgeted:        httputil.Number(overview.TotalBudgeted),
		TotalSpent:           httputil.Number(overview.TotalSpent),
		TotalRemaining:       httputil.Number(overview.TotalRemaining),
		OverallPercentage:    httputil.Number(overview.OverallPercentage),
		CategoriesOverBudget: overview.CategoriesOverBudget,
		CategoriesOnTrack:    overview.CategoriesOnTrack,
		TotalCategories:      overview.TotalCategories,
	}}, nil
}

func (h *BudgetStatusHandler) handleCategory(ctx context.Context, input *CategoryBudgetInput) (*CategoryBudgetOutput, error) {
	status, err := logging.Timed(logging.GetLogData(ctx), "categoryBudgetMs", func() (*analytics.BudgetStatus, error) {
		return h.BudgetService.BudgetForCategory(ctx, input.Category)
	})
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return nil, huma.NewError(http.StatusNotFound, "No active budget found for this category")
		}
		return nil, huma.NewError(http.StatusInternalServerError, "Error fetching category budget", err)
	}

	return &CategoryBudgetOutput{Body: CategoryBudgetBody{
		Budget:         budgetFromDomain(&status.Budget),
		Spent:          httputil.Number(status.Spent),
		Remaining:      httputil.Number(status.Remaining),
		PercentageUsed: httputil.Number(status.PercentageUsed),
		Status:         string(status.State),
	}}, nil
}
