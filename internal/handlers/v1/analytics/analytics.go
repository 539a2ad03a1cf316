package analytics

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/analytics"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httputil"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

const basePath = "/api/analytics"

type analyticsReader interface {
	Summary(ctx context.Context) (analytics.SummaryStats, error)
	MonthlyTrends(ctx context.Context) ([]analytics.MonthlyTrend, error)
	SpendingByCategory(ctx context.Context, from, to *time.Time) ([]analytics.GroupTotal, error)
	IncomeByCategory(ctx context.Context, from, to *time.Time) ([]analytics.GroupTotal, error)
	MonthlyComparison(ctx context.Context) (analytics.MonthComparison, error)
}

// Handler serves the analytics views. Every view recomputes from the store.
type Handler struct {
	AnalyticsService analyticsReader
}

func NewHandler(svc analyticsReader) *Handler {
	return &Handler{AnalyticsService: svc}
}

// Register registers all analytics endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-summary",
		Method:      http.MethodGet,
		Path:        basePath + "/summary",
		Summary:     "Summary statistics",
		Description: "All-time totals plus this month against last month.",
		Tags:        []string{"Analytics"},
	}, h.handleSummary)

	huma.Register(api, huma.Operation{
		OperationID: "get-monthly-trends",
		Method:      http.MethodGet,
		Path:        basePath + "/monthly-trends",
		Summary:     "Monthly trends",
		Description: "Income and expense per month over the last six months, oldest first.",
		Tags:        []string{"Analytics"},
	}, h.handleMonthlyTrends)

	huma.Register(api, huma.Operation{
		OperationID: "get-spending-by-category",
		Method:      http.MethodGet,
		Path:        basePath + "/spending-by-category",
		Summary:     "Spending by category",
		Description: "Expense totals per category, largest first.",
		Tags:        []string{"Analytics"},
	}, h.handleSpendingByCategory)

	huma.Register(api, huma.Operation{
		OperationID: "get-income-by-category",
		Method:      http.MethodGet,
		Path:        basePath + "/income-by-category",
		Summary:     "Income by category",
		Description: "Income totals per category, largest first.",
		Tags:        []string{"Analytics"},
	}, h.handleIncomeByCategory)

	huma.Register(api, huma.Operation{
		OperationID: "get-monthly-comparison",
		Method:      http.MethodGet,
		Path:        basePath + "/monthly-comparison",
		Summary:     "Monthly comparison",
		Description: "The current calendar month against the previous one.",
		Tags:        []string{"Analytics"},
	}, h.handleMonthlyComparison)
}

// PeriodTotals is the income, expense and balance of one period.
type PeriodTotals struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

func periodTotals(p analytics.PeriodTotals) PeriodTotals {
	return PeriodTotals{
		Income:   httputil.Number(p.Income),
		Expenses: httputil.Number(p.Expenses),
		Balance:  httputil.Number(p.Balance),
	}
}

// SummaryChanges holds the month-over-month percentage changes.
type SummaryChanges struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

// SummaryBody is the response body of the summary view.
type SummaryBody struct {
	TotalIncome      float64        `json:"totalIncome"`
	TotalExpenses    float64        `json:"totalExpenses"`
	Balance          float64        `json:"balance"`
	TransactionCount int            `json:"transactionCount"`
	ThisMonth        PeriodTotals   `json:"thisMonth"`
	LastMonth        PeriodTotals   `json:"lastMonth"`
	Changes          SummaryChanges `json:"changes"`
}

type SummaryOutput struct {
	Body SummaryBody
}

func (h *Handler) handleSummary(ctx context.Context, _ *struct{}) (*SummaryOutput, error) {
	stats, err := logging.Timed(logging.GetLogData(ctx), "summaryMs", func() (analytics.SummaryStats, error) {
		return h.AnalyticsService.Summary(ctx)
	})
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Error fetching summary statistics", err)
	}

	return &SummaryOutput{Body: SummaryBody{
		TotalIncome:      httputil.Number(stats.TotalIncome),
		TotalExpenses:    httputil.Number(stats.TotalExpenses),
		Balance:          httputil.Number(stats.Balance),
		TransactionCount: stats.TransactionCount,
		ThisMonth:        periodTotals(stats.ThisMonth),
		LastMonth:        periodTotals(stats.LastMonth),
		Changes: SummaryChanges{
			Income:   httputil.Number(stats.Changes.Income),
			Expenses: httputil.Number(stats.Changes.Expenses),
			Balance:  httputil.Number(stats.Changes.Balance),
		},
	}}, nil
}

// MonthlyTrend is one month of the trend series.
type MonthlyTrend struct {
	Month   string  `json:"month" doc:"Year and month, e.g. 2024-03"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

type MonthlyTrendsOutput struct {
	Body []MonthlyTrend
}

func (h *Handler) handleMonthlyTrends(ctx context.Context, _ *struct{}) (*MonthlyTrendsOutput, error) {
	trends, err := logging.Timed(logging.GetLogData(ctx), "monthlyTrendsMs", func() ([]analytics.MonthlyTrend, error) {
		return h.AnalyticsService.MonthlyTrends(ctx)
	})
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Error fetching monthly trends", err)
	}

	resp := make([]MonthlyTrend, len(trends))
	for i, trend := range trends {
		resp[i] = MonthlyTrend{
			Month:   trend.Month,
			Income:  httputil.Number(trend.Income),
			Expense: httputil.Number(trend.Expense),
		}
	}
	return &MonthlyTrendsOutput{Body: resp}, nil
}

// DateRangeInput is the optional inclusive range of the category views.
type DateRangeInput struct {
	StartDate string `query:"startDate" doc:"Inclusive lower bound, RFC3339 or YYYY-MM-DD"`
	EndDate   string `query:"endDate" doc:"Inclusive upper bound; a plain date covers the whole day"`
}

func (in *DateRangeInput) parse() (*time.Time, *time.Time, error) {
	from, err := httputil.ParseDate("startDate", in.StartDate, false)
	if err != nil {
		return nil, nil, huma.NewError(http.StatusBadRequest, "invalid startDate", err)
	}
	to, err := httputil.ParseDate("endDate", in.EndDate, true)
	if err != nil {
		return nil, nil, huma.NewError(http.StatusBadRequest, "invalid endDate", err)
	}
	return from, to, nil
}

// CategoryTotal is the summed amount of one category.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type CategoryTotalsOutput struct {
	Body []CategoryTotal
}

func categoryTotals(totals []analytics.GroupTotal) *CategoryTotalsOutput {
	resp := make([]CategoryTotal, len(totals))
	for i, total := range totals {
		resp[i] = CategoryTotal{Category: total.Key, Total: httputil.Number(total.Total)}
	}
	return &CategoryTotalsOutput{Body: resp}
}

func (h *Handler) handleSpendingByCategory(ctx context.Context, input *DateRangeInput) (*CategoryTotalsOutput, error) {
	from, to, err := input.parse()
	if err != nil {
		return nil, err
	}

	totals, err := logging.Timed(logging.GetLogData(ctx), "spendingByCategoryMs", func() ([]analytics.GroupTotal, error) {
		return h.AnalyticsService.SpendingByCategory(ctx, from, to)
	})
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Error fetching spending by category", err)
	}
	return categoryTotals(totals), nil
}

func (h *Handler) handleIncomeByCategory(ctx context.Context, input *DateRangeInput) (*CategoryTotalsOutput, error) {
	from, to, err := input.parse()
	if err != nil {
		return nil, err
	}

	totals, err := logging.Timed(logging.GetLogData(ctx), "incomeByCategoryMs", func() ([]analytics.GroupTotal, error) {
		return h.AnalyticsService.IncomeByCategory(ctx, from, to)
	})
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Error fetching income by category", err)
	}
	return categoryTotals(totals), nil
}

// ComparisonPeriod is one side of the month comparison.
type ComparisonPeriod struct {
	Income           float64 `json:"income"`
	Expenses         float64 `json:"expenses"`
	Balance          float64 `json:"balance"`
	TransactionCount int     `json:"transactionCount"`
}

func comparisonPeriod(p analytics.ComparisonPeriod) ComparisonPeriod {
	return ComparisonPeriod{
		Income:           httputil.Number(p.Income),
		Expenses:         httputil.Number(p.Expenses),
		Balance:          httputil.Number(p.Balance),
		TransactionCount: p.TransactionCount,
	}
}

// ComparisonChanges holds the percentage changes from previous to current.
type ComparisonChanges struct {
	Income           float64 `json:"income"`
	Expenses         float64 `json:"expenses"`
	Balance          float64 `json:"balance"`
	TransactionCount float64 `json:"transactionCount"`
}

type ComparisonBody struct {
	Current  ComparisonPeriod  `json:"current"`
	Previous ComparisonPeriod  `json:"previous"`
	Changes  ComparisonChanges `json:"changes"`
}

type ComparisonOutput struct {
	Body ComparisonBody
}

func (h *Handler) handleMonthlyComparison(ctx context.Context, _ *struct{}) (*ComparisonOutput, error) {
	cmp, err := logging.Timed(logging.GetLogData(ctx), "monthlyComparisonMs", func() (analytics.MonthComparison, error) {
		return h.AnalyticsService.MonthlyComparison(ctx)
	})
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Error fetching month comparison", err)
	}

	return &ComparisonOutput{Body: ComparisonBody{
		Current:  comparisonPeriod(cmp.Current),
		Previous: comparisonPeriod(cmp.Previous),
		Changes: ComparisonChanges{
			Income:           httputil.Number(cmp.Changes.Income),
			Expenses:         httputil.Number(cmp.Changes.Expenses),
			Balance:          httputil.Number(cmp.Changes.Balance),
			TransactionCount: httputil.Number(cmp.Changes.TransactionCount),
		},
	}}, nil
}
