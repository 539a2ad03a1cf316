package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/finance-tracker/internal/analytics"
	"github.com/carson-networks/finance-tracker/internal/domain"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/budget"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

// maxSpentQueries bounds the concurrent spent lookups of one status request.
const maxSpentQueries = 8

// BudgetInput carries the client-supplied fields of a new budget. Unset
// fields take their defaults on create.
type BudgetInput struct {
	Category  string
	Amount    decimal.Decimal
	Period    domain.BudgetPeriod
	StartDate time.Time
	EndDate   *time.Time
	IsActive  *bool
}

// BudgetService handles budget business logic.
type BudgetService struct {
	storage *storage.Storage
	writer  writeProcessor
	now     clock
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(store *storage.Storage, writer writeProcessor) *BudgetService {
	return &BudgetService{storage: store, writer: writer, now: time.Now}
}

// ListBudgets returns budgets, optionally only those with the given active flag.
func (s *BudgetService) ListBudgets(ctx context.Context, isActive *bool) ([]domain.Budget, error) {
	rows, err := s.storage.Budgets.List(ctx, &budget.BudgetFilter{IsActive: isActive})
	if err != nil {
		return nil, err
	}
	result := make([]domain.Budget, len(rows))
	for i, row := range rows {
		result[i] = budgetFromStorage(row)
	}
	return result, nil
}

// GetBudget retrieves a budget by ID.
func (s *BudgetService) GetBudget(ctx context.Context, id string) (*domain.Budget, error) {
	row, err := s.storage.Budgets.FindByID(ctx, id)
	if err != nil {
		return nil, translateStorageErr(err)
	}
	b := budgetFromStorage(row)
	return &b, nil
}

// CreateBudget stores a new budget. Period defaults to monthly, the start to
// now and the active flag to true. A missing end date is derived from the
// period once, here.
func (s *BudgetService) CreateBudget(ctx context.Context, in BudgetInput) (*domain.Budget, error) {
	if in.Period == "" {
		in.Period = domain.PeriodMonthly
	}
	if in.StartDate.IsZero() {
		in.StartDate = s.now()
	}

	var endDate time.Time
	if in.EndDate != nil {
		endDate = *in.EndDate
	} else {
		derived, err := in.Period.EndDate(in.StartDate)
		if err != nil {
			return nil, err
		}
		endDate = derived
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	action := &actions.CreateBudget{Create: budget.BudgetCreate{
		Category:  in.Category,
		Amount:    in.Amount,
		Period:    string(in.Period),
		StartDate: in.StartDate,
		EndDate:   endDate,
		IsActive:  isActive,
	}}
	if err := s.writer.Process(ctx, action); err != nil {
		return nil, err
	}
	b := budgetFromStorage(action.Result)
	return &b, nil
}

// UpdateBudget applies the provided fields. The end date is never derived
// again, even when the period or start date change.
func (s *BudgetService) UpdateBudget(ctx context.Context, id string, update domain.BudgetUpdate) (*domain.Budget, error) {
	storageUpdate := budget.BudgetUpdate{
		Category:  update.Category,
		Amount:    update.Amount,
		StartDate: update.StartDate,
		EndDate:   update.EndDate,
		IsActive:  update.IsActive,
	}
	if update.Period != nil {
		period := string(*update.Period)
		storageUpdate.Period = &period
	}

	action := &actions.UpdateBudget{ID: id, Update: storageUpdate}
	if err := s.writer.Process(ctx, action); err != nil {
		return nil, translateStorageErr(err)
	}
	b := budgetFromStorage(action.Result)
	return &b, nil
}

// DeleteBudget removes a budget.
func (s *BudgetService) DeleteBudget(ctx context.Context, id string) error {
	if err := s.writer.Process(ctx, &actions.DeleteBudget{ID: id}); err != nil {
		return translateStorageErr(err)
	}
	return nil
}

// BudgetStatuses reports every active budget against its spending. One
// spent query runs per budget; any failure fails the whole request.
func (s *BudgetService) BudgetStatuses(ctx context.Context) ([]analytics.BudgetStatus, error) {
	active := true
	budgets, err := s.ListBudgets(ctx, &active)
	if err != nil {
		return nil, err
	}

	statuses := make([]analytics.BudgetStatus, len(budgets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxSpentQueries)
	for i, b := range budgets {
		g.Go(func() error {
			spent, err := s.spent(gctx, b)
			if err != nil {
				return err
			}
			statuses[i] = analytics.StatusOf(b, spent)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return statuses, nil
}

// BudgetOverview aggregates the statuses of all active budgets.
func (s *BudgetService) BudgetOverview(ctx context.Context) (analytics.BudgetOverview, error) {
	statuses, err := s.BudgetStatuses(ctx)
	if err != nil {
		return analytics.BudgetOverview{}, err
	}
	return analytics.Overview(statuses), nil
}

// BudgetForCategory returns the status of the active budget for category
// whose period contains the current time.
func (s *BudgetService) BudgetForCategory(ctx context.Context, category string) (*analytics.BudgetStatus, error) {
	row, err := s.storage.Budgets.FindActiveForCategory(ctx, category, s.now())
	if err != nil {
		return nil, translateStorageErr(err)
	}
	b := budgetFromStorage(row)

	spent, err := s.spent(ctx, b)
	if err != nil {
		return nil, err
	}
	status := analytics.StatusOf(b, spent)
	return &status, nil
}

func (s *BudgetService) spent(ctx context.Context, b domain.Budget) (decimal.Decimal, error) {
	expense := string(domain.KindExpense)
	rows, err := s.storage.Transactions.List(ctx, &transaction.TransactionFilter{
		Type:       &expense,
		Categories: []string{b.Category},
		DateFrom:   &b.StartDate,
		DateTo:     &b.EndDate,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to load spending for budget %s: %w", b.ID, err)
	}
	return analytics.Spent(b, transactionsFromStorage(rows)), nil
}

func budgetFromStorage(row *budget.Budget) domain.Budget {
	return domain.Budget{
		ID:        row.ID,
		Category:  row.Category,
		Amount:    row.Amount,
		Period:    domain.BudgetPeriod(row.Period),
		StartDate: row.StartDate,
		EndDate:   row.EndDate,
		IsActive:  row.IsActive,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
