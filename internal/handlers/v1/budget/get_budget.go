package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/domain"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

type budgetGetter interface {
	GetBudget(ctx context.Context, id string) (*domain.Budget, error)
}

// GetBudgetHandler handles GET /api/budgets/{id}.
type GetBudgetHandler struct {
	BudgetService budgetGetter
}

func NewGetBudgetHandler(svc budgetGetter) *GetBudgetHandler {
	return &GetBudgetHandler{BudgetService: svc}
}

func (h *GetBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-budget",
		Method:      http.MethodGet,
		Path:        basePath + "/{id}",
		Summary:     "Get budget",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *GetBudgetHandler) handle(ctx context.Context, input *BudgetIDInput) (*BudgetOutput, error) {
	b, err := logging.Timed(logging.GetLogData(ctx), "getBudgetMs", func() (*domain.Budget, error) {
		return h.BudgetService.GetBudget(ctx, input.ID)
	})
	if err != nil {
		return nil, storeError(err, "Error fetching budget")
	}
	return &BudgetOutput{Body: budgetFromDomain(b)}, nil
}
