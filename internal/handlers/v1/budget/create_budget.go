package budget

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/domain"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// CreateBudgetBody is the request body for creating a budget.
type CreateBudgetBody struct {
	Category  string  `json:"category" minLength:"1" doc:"Category the budget caps"`
	Amount    float64 `json:"amount" exclusiveMinimum:"0" doc:"Spending cap for the period"`
	Period    string  `json:"period,omitempty" enum:"monthly,quarterly,yearly" doc:"Renewal cadence, defaults to monthly"`
	StartDate string  `json:"startDate,omitempty" doc:"RFC3339 or YYYY-MM-DD, defaults to now"`
	EndDate   string  `json:"endDate,omitempty" doc:"RFC3339 or YYYY-MM-DD, defaults to start plus one period"`
	IsActive  *bool   `json:"isActive,omitempty" doc:"Defaults to true"`
}

// CreateBudgetInput is the Huma input for creating a budget.
type CreateBudgetInput struct {
	Body CreateBudgetBody
}

type budgetCreator interface {
	CreateBudget(ctx context.Context, in service.BudgetInput) (*domain.Budget, error)
}

// CreateBudgetHandler handles POST /api/budgets.
type CreateBudgetHandler struct {
	BudgetService budgetCreator
}

func NewCreateBudgetHandler(svc budgetCreator) *CreateBudgetHandler {
	return &CreateBudgetHandler{BudgetService: svc}
}

func (h *CreateBudgetHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-budget",
		Method:        http.MethodPost,
		Path:          basePath,
		Summary:       "Create budget",
		Description:   "Creates a budget. A missing end date is derived from the start date and period.",
		Tags:          []string{"Budgets"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func parseCreateBudgetBody(body *CreateBudgetBody) (service.BudgetInput, error) {
	in := service.BudgetInput{
		Category: body.Category,
		Amount:   decimal.NewFromFloat(body.Amount),
		IsActive: body.IsActive,
	}

	if body.Period != "" {
		period, err := domain.ParseBudgetPeriod(body.Period)
		if err != nil {
			return in, huma.NewError(http.StatusBadRequest, "invalid period", err)
		}
		in.Period = period
	}

	start, err := parseDateField("startDate", body.StartDate)
	if err != nil {
		return in, err
	}
	if start != nil {
		in.StartDate = *start
	}

	in.EndDate, err = parseDateField("endDate", body.EndDate)
	if err != nil {
		return in, err
	}
	return in, nil
}

func (h *CreateBudgetHandler) handle(ctx context.Context, input *CreateBudgetInput) (*BudgetOutput, error) {
	in, err := parseCreateBudgetBody(&input.Body)
	if err != nil {
		return nil, err
	}

	b, err := logging.Timed(logging.GetLogData(ctx), "createBudgetMs", func() (*domain.Budget, error) {
		return h.BudgetService.CreateBudget(ctx, in)
	})
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Error creating budget", err)
	}
	return &BudgetOutput{Body: budgetFromDomain(b)}, nil
}
