package actions

import (
	"context"

	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/budget"
)

type CreateBudget struct {
	Create budget.BudgetCreate

	Result *budget.Budget
}

func (c *CreateBudget) Perform(ctx context.Context, store *storage.Storage) error {
	created, err := store.Budgets.Insert(ctx, &c.Create)
	if err != nil {
		return err
	}
	c.Result = created
	return nil
}

type UpdateBudget struct {
	ID     string
	Update budget.BudgetUpdate

	Result *budget.Budget
}

func (u *UpdateBudget) Perform(ctx context.Context, store *storage.Storage) error {
	updated, err := store.Budgets.Update(ctx, u.ID, &u.Update)
	if err != nil {
		return err
	}
	u.Result = updated
	return nil
}

type DeleteBudget struct {
	ID string
}

func (d *DeleteBudget) Perform(ctx context.Context, store *storage.Storage) error {
	return store.Budgets.Delete(ctx, d.ID)
}
