package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/finance-tracker/internal/domain"
	"github.com/carson-networks/finance-tracker/internal/storage/mongodb"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

// -- ListTransactions tests --

func TestListTransactions_TranslatesQuery(t *testing.T) {
	ts := newTestServices(t)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 23, 59, 59, 999e6, time.UTC)

	ts.transactions.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.Type != nil && *f.Type == "expense" &&
			assert.ObjectsAreEqual([]string{"Food", "Rent"}, f.Categories) &&
			f.DateFrom.Equal(from) && f.DateTo.Equal(to) &&
			!f.SortAscending
	})).Return([]*transaction.Transaction{
		{ID: "a", Amount: decimal.NewFromInt(20), Type: "expense", Category: "Food", Date: from},
	}, nil)

	txs, err := ts.svc.Transaction.ListTransactions(context.Background(), domain.TransactionQuery{
		Kind:       domain.KindExpense,
		Categories: []string{"Food", "Rent"},
		From:       &from,
		To:         &to,
	})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, domain.KindExpense, txs[0].Kind)
	assert.Equal(t, "a", txs[0].ID)
}

func TestListTransactions_NoKind(t *testing.T) {
	ts := newTestServices(t)
	ts.transactions.EXPECT().List(mock.Anything, mock.MatchedBy(func(f *transaction.TransactionFilter) bool {
		return f.Type == nil
	})).Return(nil, nil)

	txs, err := ts.svc.Transaction.ListTransactions(context.Background(), domain.TransactionQuery{})
	require.NoError(t, err)
	assert.Empty(t, txs)
	assert.NotNil(t, txs)
}

func TestListTransactions_StorageError(t *testing.T) {
	ts := newTestServices(t)
	ts.transactions.EXPECT().List(mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := ts.svc.Transaction.ListTransactions(context.Background(), domain.TransactionQuery{})
	assert.EqualError(t, err, "connection refused")
}

// -- GetTransaction tests --

func TestGetTransaction_NotFound(t *testing.T) {
	ts := newTestServices(t)
	ts.transactions.EXPECT().FindByID(mock.Anything, "missing").Return(nil, mongodb.ErrNotFound)

	_, err := ts.svc.Transaction.GetTransaction(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetTransaction_Success(t *testing.T) {
	ts := newTestServices(t)
	ts.transactions.EXPECT().FindByID(mock.Anything, "abc").
		Return(&transaction.Transaction{ID: "abc", Type: "income", Category: "Salary", Amount: decimal.NewFromInt(3000)}, nil)

	tx, err := ts.svc.Transaction.GetTransaction(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, domain.KindIncome, tx.Kind)
	assert.True(t, decimal.NewFromInt(3000).Equal(tx.Amount))
}

// -- CreateTransaction tests --

func TestCreateTransaction_DefaultsDateToNow(t *testing.T) {
	ts := newTestServices(t)

	ts.transactions.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(w *transaction.TransactionWrite) bool {
		return w.Date.Equal(fixedNow) &&
			w.Amount.Equal(decimal.RequireFromString("12.34")) &&
			w.Type == "expense" &&
			w.Category == "Coffee" &&
			w.Description == "Flat white"
	})).Return(&transaction.Transaction{ID: "new", Type: "expense", Category: "Coffee", Date: fixedNow}, nil)

	tx, err := ts.svc.Transaction.CreateTransaction(context.Background(), TransactionInput{
		Amount:      decimal.RequireFromString("12.34"),
		Kind:        domain.KindExpense,
		Category:    "Coffee",
		Description: "Flat white",
	})
	require.NoError(t, err)
	assert.Equal(t, "new", tx.ID)
}

func TestCreateTransaction_KeepsGivenDate(t *testing.T) {
	ts := newTestServices(t)
	date := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)

	ts.transactions.EXPECT().Insert(mock.Anything, mock.MatchedBy(func(w *transaction.TransactionWrite) bool {
		return w.Date.Equal(date)
	})).Return(&transaction.Transaction{ID: "new"}, nil)

	_, err := ts.svc.Transaction.CreateTransaction(context.Background(), TransactionInput{
		Amount: decimal.NewFromInt(1), Kind: domain.KindIncome, Category: "Gift", Date: date,
	})
	require.NoError(t, err)
}

func TestCreateTransaction_StorageError(t *testing.T) {
	ts := newTestServices(t)
	ts.transactions.EXPECT().Insert(mock.Anything, mock.Anything).Return(nil, errors.New("disk full"))

	tx, err := ts.svc.Transaction.CreateTransaction(context.Background(), TransactionInput{Amount: decimal.NewFromInt(1)})
	assert.EqualError(t, err, "disk full")
	assert.Nil(t, tx)
}

// -- UpdateTransaction / DeleteTransaction tests --

func TestUpdateTransaction_NotFound(t *testing.T) {
	ts := newTestServices(t)
	ts.transactions.EXPECT().Replace(mock.Anything, "gone", mock.Anything).Return(nil, mongodb.ErrNotFound)

	_, err := ts.svc.Transaction.UpdateTransaction(context.Background(), "gone", TransactionInput{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateTransaction_Success(t *testing.T) {
	ts := newTestServices(t)
	ts.transactions.EXPECT().Replace(mock.Anything, "abc", mock.MatchedBy(func(w *transaction.TransactionWrite) bool {
		return w.Category == "Rent" && w.Description == ""
	})).Return(&transaction.Transaction{ID: "abc", Category: "Rent", UpdatedAt: fixedNow}, nil)

	tx, err := ts.svc.Transaction.UpdateTransaction(context.Background(), "abc", TransactionInput{
		Amount: decimal.NewFromInt(900), Kind: domain.KindExpense, Category: "Rent",
	})
	require.NoError(t, err)
	assert.Equal(t, "Rent", tx.Category)
}

func TestDeleteTransaction(t *testing.T) {
	ts := newTestServices(t)
	ts.transactions.EXPECT().Delete(mock.Anything, "abc").Return(nil)
	ts.transactions.EXPECT().Delete(mock.Anything, "gone").Return(mongodb.ErrNotFound)

	assert.NoError(t, ts.svc.Transaction.DeleteTransaction(context.Background(), "abc"))
	assert.ErrorIs(t, ts.svc.Transaction.DeleteTransaction(context.Background(), "gone"), ErrNotFound)
}
