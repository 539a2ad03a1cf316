package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/domain"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httputil"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

// ListBudgetsInput is the Huma input for listing budgets.
type ListBudgetsInput struct {
	IsActive string `query:"isActive" doc:"Only budgets with this active flag"`
}

// ListBudgetsOutput is the Huma output for listing budgets.
type ListBudgetsOutput struct {
	Body []Budget
}

type budgetLister interface {
	ListBudgets(ctx context.Context, isActive *bool) ([]domain.Budget, error)
}

// ListBudgetsHandler handles GET /api/budgets.
type ListBudgetsHandler struct {
	BudgetService budgetLister
}

func NewListBudgetsHandler(svc budgetLister) *ListBudgetsHandler {
	return &ListBudgetsHandler{BudgetService: svc}
}

func (h *ListBudgetsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-budgets",
		Method:      http.MethodGet,
		Path:        basePath,
		Summary:     "List budgets",
		Description: "Returns budgets, most recent start first.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *ListBudgetsHandler) handle(ctx context.Context, input *ListBudgetsInput) (*ListBudgetsOutput, error) {
	logData := logging.GetLogData(ctx)
	isActive, err := httputil.ParseOptionalBool("isActive", input.IsActive)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid isActive", err)
	}

	budgets, err := logging.Timed(logData, "listBudgetsMs", func() ([]domain.Budget, error) {
		return h.BudgetService.ListBudgets(ctx, isActive)
	})
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Error fetching budgets", err)
	}

	if logData != nil {
		logData.AddData("budgetCount", len(budgets))
	}

	resp := make([]Budget, len(budgets))
	for i := range budgets {
		resp[i] = budgetFromDomain(&budgets[i])
	}
	return &ListBudgetsOutput{Body: resp}, nil
}
