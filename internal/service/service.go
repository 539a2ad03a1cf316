package service

import (
	"context"
	"errors"
	"time"

	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/mongodb"
)

// ErrNotFound is returned when the requested record does not exist.
var ErrNotFound = errors.New("not found")

// writeProcessor executes write actions against storage.
type writeProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	Transaction *TransactionService
	Budget      *BudgetService
	Analytics   *AnalyticsService
}

// NewService creates a new Service reading from store and writing through writer.
func NewService(store *storage.Storage, writer writeProcessor) *Service {
	return &Service{
		Transaction: NewTransactionService(store, writer),
		Budget:      NewBudgetService(store, writer),
		Analytics:   NewAnalyticsService(store),
	}
}

func translateStorageErr(err error) error {
	if errors.Is(err, mongodb.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

type clock func() time.Time
