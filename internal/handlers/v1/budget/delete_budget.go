package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/logging"
)

type budgetDeleter interface {
	DeleteBudget(ctx context.Context, id string) error
}

// DeleteBudgetHandler handles DELETE /api/budgets/{id}.
type DeleteBudgetHandler struct {
	BudgetService budgetDeleter
}

func NewDeleteBudgetHandler(svc budgetDeleter) *DeleteBudgetHandler {
	return &DeleteBudgetHandler{BudgetService: svc}
}

func (h *DeleteBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-budget",
		Method:      http.MethodDelete,
		Path:        basePath + "/{id}",
		Summary:     "Delete budget",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func (h *DeleteBudgetHandler) handle(ctx context.Context, input *BudgetIDInput) (*MessageOutput, error) {
	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("deleteBudgetMs")
	}
	err := h.BudgetService.DeleteBudget(ctx, input.ID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, storeError(err, "Error deleting budget")
	}
	return &MessageOutput{Body: MessageBody{Message: "Budget deleted successfully"}}, nil
}
