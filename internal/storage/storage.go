package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/carson-networks/finance-tracker/internal/config"
	"github.com/carson-networks/finance-tracker/internal/storage/budget"
	"github.com/carson-networks/finance-tracker/internal/storage/mongodb"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

var errNotConnected = errors.New("storage is not connected")

type Storage struct {
	client       *mongo.Client
	Transactions transaction.ITransactionTable
	Budgets      budget.IBudgetTable
}

func NewStorage(ctx context.Context, env *config.Config) (*Storage, error) {
	connectCtx, cancel := context.WithTimeout(ctx, env.MongoTimeout)
	defer cancel()

	client, err := mongodb.Connect(connectCtx, env.MongoURI)
	if err != nil {
		return nil, err
	}

	db := client.Database(env.MongoDatabase)
	return &Storage{
		client:       client,
		Transactions: transaction.NewTransactionsTable(db.Collection(transaction.CollectionName)),
		Budgets:      budget.NewBudgetsTable(db.Collection(budget.CollectionName)),
	}, nil
}

// Ping checks that the database is reachable.
func (s *Storage) Ping(ctx context.Context) error {
	if s.client == nil {
		return errNotConnected
	}
	return s.client.Ping(ctx, nil)
}

func (s *Storage) Disconnect(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
