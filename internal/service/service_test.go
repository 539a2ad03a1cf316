package service

import (
	"testing"
	"time"

	"github.com/carson-networks/finance-tracker/internal/operator"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/budget"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

var fixedNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

type testServices struct {
	svc          *Service
	transactions *transaction.MockITransactionTable
	budgets      *budget.MockIBudgetTable
}

func newTestServices(t *testing.T) testServices {
	t.Helper()
	txTable := transaction.NewMockITransactionTable(t)
	budgetTable := budget.NewMockIBudgetTable(t)
	store := &storage.Storage{Transactions: txTable, Budgets: budgetTable}

	delegator := operator.NewOperatorDelegator(store, 1)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	svc := NewService(store, delegator)
	now := func() time.Time { return fixedNow }
	svc.Transaction.now = now
	svc.Budget.now = now
	svc.Analytics.now = now

	return testServices{svc: svc, transactions: txTable, budgets: budgetTable}
}
