package budget

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/analytics"
	"github.com/carson-networks/finance-tracker/internal/domain"
	"github.com/carson-networks/finance-tracker/internal/service"
)

type mockBudgetService struct {
	mock.Mock
}

func (m *mockBudgetService) ListBudgets(ctx context.Context, isActive *bool) ([]domain.Budget, error) {
	args := m.Called(ctx, isActive)
	budgets, _ := args.Get(0).([]domain.Budget)
	return budgets, args.Error(1)
}

func (m *mockBudgetService) GetBudget(ctx context.Context, id string) (*domain.Budget, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Budget)
	return b, args.Error(1)
}

func (m *mockBudgetService) CreateBudget(ctx context.Context, in service.BudgetInput) (*domain.Budget, error) {
	args := m.Called(ctx, in)
	b, _ := args.Get(0).(*domain.Budget)
	return b, args.Error(1)
}

func (m *mockBudgetService) UpdateBudget(ctx context.Context, id string, update domain.BudgetUpdate) (*domain.Budget, error) {
	args := m.Called(ctx, id, update)
	b, _ := args.Get(0).(*domain.Budget)
	return b, args.Error(1)
}

func (m *mockBudgetService) DeleteBudget(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBudgetService) BudgetStatuses(ctx context.Context) ([]analytics.BudgetStatus, error) {
	args := m.Called(ctx)
	statuses, _ := args.Get(0).([]analytics.BudgetStatus)
	return statuses, args.Error(1)
}

func (m *mockBudgetService) BudgetOverview(ctx context.Context) (analytics.BudgetOverview, error) {
	args := m.Called(ctx)
	overview, _ := args.Get(0).(analytics.BudgetOverview)
	return overview, args.Error(1)
}

func (m *mockBudgetService) BudgetForCategory(ctx context.Context, category string) (*analytics.BudgetStatus, error) {
	args := m.Called(ctx, category)
	status, _ := args.Get(0).(*analytics.BudgetStatus)
	return status, args.Error(1)
}

func newTestAPI(t *testing.T, svc *mockBudgetService) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewListBudgetsHandler(svc).Register(api)
	NewGetBudgetHandler(svc).Register(api)
	NewCreateBudgetHandler(svc).Register(api)
	NewUpdateBudgetHandler(svc).Register(api)
	NewDeleteBudgetHandler(svc).Register(api)
	NewBudgetStatusHandler(svc).Register(api)
	return api
}

type errorBody struct {
	Detail string `json:"detail"`
}

var (
	juneStart = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	julyStart = time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
)

func sampleBudget() *domain.Budget {
	return &domain.Budget{
		ID:        "665a1f0e8b3c2d00aaaaaaaa",
		Category:  "Food",
		Amount:    decimal.NewFromInt(400),
		Period:    domain.PeriodMonthly,
		StartDate: juneStart,
		EndDate:   julyStart,
		IsActive:  true,
	}
}

// -- parse unit tests --

func TestParseCreateBudgetBody(t *testing.T) {
	active := false
	in, err := parseCreateBudgetBody(&CreateBudgetBody{
		Category:  "Food",
		Amount:    250.75,
		Period:    "quarterly",
		StartDate: "2024-01-15",
		IsActive:  &active,
	})
	require.NoError(t, err)

	assert.Equal(t, "Food", in.Category)
	assert.True(t, decimal.RequireFromString("250.75").Equal(in.Amount))
	assert.Equal(t, domain.PeriodQuarterly, in.Period)
	assert.True(t, in.StartDate.Equal(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, in.EndDate)
	require.NotNil(t, in.IsActive)
	assert.False(t, *in.IsActive)
}

func TestParseCreateBudgetBody_Defaults(t *testing.T) {
	in, err := parseCreateBudgetBody(&CreateBudgetBody{Category: "Food", Amount: 10})
	require.NoError(t, err)
	assert.Empty(t, in.Period)
	assert.True(t, in.StartDate.IsZero())
	assert.Nil(t, in.IsActive)
}

func TestParseUpdateBudgetBody(t *testing.T) {
	amount := 99.5
	end := "2024-12-31"
	update, err := parseUpdateBudgetBody(&UpdateBudgetBody{Amount: &amount, EndDate: &end})
	require.NoError(t, err)

	require.NotNil(t, update.Amount)
	assert.True(t, decimal.RequireFromString("99.5").Equal(*update.Amount))
	require.NotNil(t, update.EndDate)
	assert.True(t, update.EndDate.Equal(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)))
	assert.Nil(t, update.Period)
	assert.Nil(t, update.StartDate)
	assert.Nil(t, update.Category)
}

func TestParseUpdateBudgetBody_BadDate(t *testing.T) {
	start := "next week"
	_, err := parseUpdateBudgetBody(&UpdateBudgetBody{StartDate: &start})
	assert.Error(t, err)
}

// -- HTTP integration tests --

func TestHTTP_ListBudgets(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("ListBudgets", mock.Anything, mock.MatchedBy(func(isActive *bool) bool {
		return isActive != nil && *isActive
	})).Return([]domain.Budget{*sampleBudget()}, nil)
	api := newTestAPI(t, svc)

	resp := api.Get("/api/budgets?isActive=true")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body []Budget
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, 400.0, body[0].Amount)
	assert.Equal(t, "monthly", body[0].Period)
	svc.AssertExpectations(t)
}

func TestHTTP_ListBudgets_All(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("ListBudgets", mock.Anything, (*bool)(nil)).Return([]domain.Budget{}, nil)
	api := newTestAPI(t, svc)

	resp := api.Get("/api/budgets")

	assert.Equal(t, http.StatusOK, resp.Code)
	svc.AssertExpectations(t)
}

func TestHTTP_ListBudgets_BadFlag(t *testing.T) {
	svc := new(mockBudgetService)
	api := newTestAPI(t, svc)

	resp := api.Get("/api/budgets?isActive=sometimes")

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_GetBudget_NotFound(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("GetBudget", mock.Anything, "nope").Return(nil, service.ErrNotFound)
	api := newTestAPI(t, svc)

	resp := api.Get("/api/budgets/nope")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Budget not found", body.Detail)
}

func TestHTTP_CreateBudget(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("CreateBudget", mock.Anything, mock.MatchedBy(func(in service.BudgetInput) bool {
		return in.Category == "Food" && in.Amount.Equal(decimal.NewFromInt(400)) && in.Period == domain.PeriodMonthly
	})).Return(sampleBudget(), nil)
	api := newTestAPI(t, svc)

	resp := api.Post("/api/budgets", map[string]any{
		"category":  "Food",
		"amount":    400,
		"period":    "monthly",
		"startDate": "2024-06-01",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Budget
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, julyStart.Equal(body.EndDate))
	svc.AssertExpectations(t)
}

func TestHTTP_CreateBudget_Validation(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		code int
	}{
		{name: "zero amount", body: map[string]any{"category": "Food", "amount": 0}, code: http.StatusUnprocessableEntity},
		{name: "missing category", body: map[string]any{"amount": 10}, code: http.StatusUnprocessableEntity},
		{name: "unknown period", body: map[string]any{"category": "Food", "amount": 10, "period": "weekly"}, code: http.StatusUnprocessableEntity},
		{name: "bad start", body: map[string]any{"category": "Food", "amount": 10, "startDate": "soon"}, code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockBudgetService)
			api := newTestAPI(t, svc)

			resp := api.Post("/api/budgets", tt.body)

			assert.Equal(t, tt.code, resp.Code)
			svc.AssertNotCalled(t, "CreateBudget", mock.Anything, mock.Anything)
		})
	}
}

func TestHTTP_UpdateBudget(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("UpdateBudget", mock.Anything, "665a1f0e8b3c2d00aaaaaaaa", mock.MatchedBy(func(u domain.BudgetUpdate) bool {
		return u.IsActive != nil && !*u.IsActive && u.Amount == nil && u.EndDate == nil
	})).Return(sampleBudget(), nil)
	api := newTestAPI(t, svc)

	resp := api.Put("/api/budgets/665a1f0e8b3c2d00aaaaaaaa", map[string]any{"isActive": false})

	assert.Equal(t, http.StatusOK, resp.Code)
	svc.AssertExpectations(t)
}

func TestHTTP_UpdateBudget_StoreError(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("UpdateBudget", mock.Anything, "abc", mock.Anything).Return(nil, errors.New("timeout"))
	api := newTestAPI(t, svc)

	resp := api.Put("/api/budgets/abc", map[string]any{"category": "Rent"})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestHTTP_DeleteBudget(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("DeleteBudget", mock.Anything, "abc").Return(nil)
	svc.On("DeleteBudget", mock.Anything, "gone").Return(service.ErrNotFound)
	api := newTestAPI(t, svc)

	resp := api.Delete("/api/budgets/abc")
	assert.Equal(t, http.StatusOK, resp.Code)
	var body MessageBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Budget deleted successfully", body.Message)

	resp = api.Delete("/api/budgets/gone")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestHTTP_BudgetStatuses(t *testing.T) {
	svc := new(mockBudgetService)
	b := sampleBudget()
	svc.On("BudgetStatuses", mock.Anything).Return([]analytics.BudgetStatus{
		analytics.StatusOf(*b, decimal.NewFromInt(330)),
	}, nil)
	api := newTestAPI(t, svc)

	resp := api.Get("/api/budgets/status/all")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body []BudgetStatus
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body, 1)
	assert.Equal(t, b.ID, body[0].ID)
	assert.Equal(t, 400.0, body[0].BudgetAmount)
	assert.Equal(t, 330.0, body[0].Spent)
	assert.Equal(t, 70.0, body[0].Remaining)
	assert.Equal(t, 82.5, body[0].PercentageUsed)
	assert.Equal(t, "warning", body[0].Status)
}

func TestHTTP_BudgetStatuses_Error(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("BudgetStatuses", mock.Anything).Return(nil, errors.New("socket closed"))
	api := newTestAPI(t, svc)

	resp := api.Get("/api/budgets/status/all")

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestHTTP_BudgetOverview(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("BudgetOverview", mock.Anything).Return(analytics.BudgetOverview{
		TotalBudgeted:        decimal.NewFromInt(1400),
		TotalSpent:           decimal.NewFromInt(1500),
		TotalRemaining:       decimal.NewFromInt(-100),
		OverallPercentage:    decimal.RequireFromString("107.1"),
		CategoriesOverBudget: 1,
		CategoriesOnTrack:    1,
		TotalCategories:      2,
	}, nil)
	api := newTestAPI(t, svc)

	resp := api.Get("/api/budgets/overview/summary")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body BudgetOverviewBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, -100.0, body.TotalRemaining)
	assert.Equal(t, 107.1, body.OverallPercentage)
	assert.Equal(t, 2, body.TotalCategories)
}

func TestHTTP_CategoryBudget(t *testing.T) {
	svc := new(mockBudgetService)
	status := analytics.StatusOf(*sampleBudget(), decimal.NewFromInt(100))
	svc.On("BudgetForCategory", mock.Anything, "Food").Return(&status, nil)
	api := newTestAPI(t, svc)

	resp := api.Get("/api/budgets/category/Food")

	assert.Equal(t, http.StatusOK, resp.Code)
	var body CategoryBudgetBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Food", body.Budget.Category)
	assert.Equal(t, 25.0, body.PercentageUsed)
	assert.Equal(t, "safe", body.Status)
}

func TestHTTP_CategoryBudget_NoneActive(t *testing.T) {
	svc := new(mockBudgetService)
	svc.On("BudgetForCategory", mock.Anything, "Travel").Return(nil, service.ErrNotFound)
	api := newTestAPI(t, svc)

	resp := api.Get("/api/budgets/category/Travel")

	assert.Equal(t, http.StatusNotFound, resp.Code)
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "No active budget found for this category", body.Detail)
}
