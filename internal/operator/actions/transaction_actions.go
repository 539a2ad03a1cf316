package actions

import (
	"context"

	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

type CreateTransaction struct {
	Create transaction.TransactionWrite

	Result *transaction.Transaction
}

func (c *CreateTransaction) Perform(ctx context.Context, store *storage.Storage) error {
	created, err := store.Transactions.Insert(ctx, &c.Create)
	if err != nil {
		return err
	}
	c.Result = created
	return nil
}

type ReplaceTransaction struct {
	ID     string
	Update transaction.TransactionWrite

	Result *transaction.Transaction
}

func (r *ReplaceTransaction) Perform(ctx context.Context, store *storage.Storage) error {
	updated, err := store.Transactions.Replace(ctx, r.ID, &r.Update)
	if err != nil {
		return err
	}
	r.Result = updated
	return nil
}

type DeleteTransaction struct {
	ID string
}

func (d *DeleteTransaction) Perform(ctx context.Context, store *storage.Storage) error {
	return store.Transactions.Delete(ctx, d.ID)
}
