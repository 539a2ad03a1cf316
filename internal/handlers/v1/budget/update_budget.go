package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/domain"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

// UpdateBudgetBody is the request body for updating a budget. Omitted
// fields keep their stored values.
type UpdateBudgetBody struct {
	Category  *string  `json:"category,omitempty" minLength:"1" doc:"Category the budget caps"`
	Amount    *float64 `json:"amount,omitempty" exclusiveMinimum:"0" doc:"Spending cap for the period"`
	Period    *string  `json:"period,omitempty" enum:"monthly,quarterly,yearly" doc:"Renewal cadence"`
	StartDate *string  `json:"startDate,omitempty" doc:"RFC3339 or YYYY-MM-DD"`
	EndDate   *string  `json:"endDate,omitempty" doc:"RFC3339 or YYYY-MM-DD"`
	IsActive  *bool    `json:"isActive,omitempty" doc:"Whether the budget is tracked"`
}

// UpdateBudgetInput is the Huma input for updating a budget.
type UpdateBudgetInput struct {
	ID   string `path:"id" doc:"Budget identifier"`
	Body UpdateBudgetBody
}

type budgetUpdater interface {
	UpdateBudget(ctx context.Context, id string, update domain.BudgetUpdate) (*domain.Budget, error)
}

// UpdateBudgetHandler handles PUT /api/budgets/{id}.
type UpdateBudgetHandler struct {
	BudgetService budgetUpdater
}

func NewUpdateBudgetHandler(svc budgetUpdater) *UpdateBudgetHandler {
	return &UpdateBudgetHandler{BudgetService: svc}
}

func (h *UpdateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-budget",
		Method:      http.MethodPut,
		Path:        basePath + "/{id}",
		Summary:     "Update budget",
		Description: "Sets the provided fields. The end date is not derived again.",
		Tags:        []string{"Budgets"},
	}, h.handle)
}

func parseUpdateBudgetBody(body *UpdateBudgetBody) (domain.BudgetUpdate, error) {
	update := domain.BudgetUpdate{
		Category: body.Category,
		IsActive: body.IsActive,
	}

	if body.Amount != nil {
		amount := decimal.NewFromFloat(*body.Amount)
		update.Amount = &amount
	}

	if body.Period != nil {
		period, err := domain.ParseBudgetPeriod(*body.Period)
		if err != nil {
			return update, huma.NewError(http.StatusBadRequest, "invalid period", err)
		}
		update.Period = &period
	}

	var err error
	if body.StartDate != nil {
		if update.StartDate, err = parseDateField("startDate", *body.StartDate); err != nil {
			return update, err
		}
	}
	if body.EndDate != nil {
		if update.EndDate, err = parseDateField("endDate", *body.EndDate); err != nil {
			return update, err
		}
	}
	return update, nil
}

func (h *UpdateBudgetHandler) handle(ctx context.Context, input *UpdateBudgetInput) (*BudgetOutput, error) {
	update, err := parseUpdateBudgetBody(&input.Body)
	if err != nil {
		return nil, err
	}

	b, err := logging.Timed(logging.GetLogData(ctx), "updateBudgetMs", func() (*domain.Budget, error) {
		return h.BudgetService.UpdateBudget(ctx, input.ID, update)
	})
	if err != nil {
		return nil, storeError(err, "Error updating budget")
	}
	return &BudgetOutput{Body: budgetFromDomain(b)}, nil
}
