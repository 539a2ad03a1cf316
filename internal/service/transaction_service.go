package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/domain"
	"github.com/carson-networks/finance-tracker/internal/operator/actions"
	"github.com/carson-networks/finance-tracker/internal/storage"
	"github.com/carson-networks/finance-tracker/internal/storage/transaction"
)

// TransactionInput carries the client-supplied fields of a transaction.
type TransactionInput struct {
	Amount      decimal.Decimal
	Kind        domain.TransactionKind
	Category    string
	Date        time.Time
	Description string
}

func (in TransactionInput) toStorage() transaction.TransactionWrite {
	return transaction.TransactionWrite{
		Amount:      in.Amount,
		Type:        string(in.Kind),
		Category:    in.Category,
		Date:        in.Date,
		Description: in.Description,
	}
}

// TransactionService handles transaction business logic.
type TransactionService struct {
	storage *storage.Storage
	writer  writeProcessor
	now     clock
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(store *storage.Storage, writer writeProcessor) *TransactionService {
	return &TransactionService{storage: store, writer: writer, now: time.Now}
}

// ListTransactions returns the transactions matching query, newest first
// unless the query asks for ascending order.
func (s *TransactionService) ListTransactions(ctx context.Context, query domain.TransactionQuery) ([]domain.Transaction, error) {
	rows, err := s.storage.Transactions.List(ctx, queryToFilter(query))
	if err != nil {
		return nil, err
	}
	return transactionsFromStorage(rows), nil
}

// GetTransaction retrieves a transaction by ID.
func (s *TransactionService) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	row, err := s.storage.Transactions.FindByID(ctx, id)
	if err != nil {
		return nil, translateStorageErr(err)
	}
	tx := transactionFromStorage(row)
	return &tx, nil
}

// CreateTransaction stores a new transaction. A zero date means now.
func (s *TransactionService) CreateTransaction(ctx context.Context, in TransactionInput) (*domain.Transaction, error) {
	if in.Date.IsZero() {
		in.Date = s.now()
	}

	action := &actions.CreateTransaction{Create: in.toStorage()}
	if err := s.writer.Process(ctx, action); err != nil {
		return nil, err
	}
	tx := transactionFromStorage(action.Result)
	return &tx, nil
}

// UpdateTransaction replaces the fields of an existing transaction. A zero
// date keeps the stored one; an empty description clears it.
func (s *TransactionService) UpdateTransaction(ctx context.Context, id string, in TransactionInput) (*domain.Transaction, error) {
	action := &actions.ReplaceTransaction{ID: id, Update: in.toStorage()}
	if err := s.writer.Process(ctx, action); err != nil {
		return nil, translateStorageErr(err)
	}
	tx := transactionFromStorage(action.Result)
	return &tx, nil
}

// DeleteTransaction removes a transaction.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.writer.Process(ctx, &actions.DeleteTransaction{ID: id}); err != nil {
		return translateStorageErr(err)
	}
	return nil
}

func queryToFilter(query domain.TransactionQuery) *transaction.TransactionFilter {
	filter := &transaction.TransactionFilter{
		Categories:    query.Categories,
		DateFrom:      query.From,
		DateTo:        query.To,
		SortAscending: query.Ascending,
	}
	if query.Kind != "" {
		kind := string(query.Kind)
		filter.Type = &kind
	}
	return filter
}

func transactionFromStorage(row *transaction.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:          row.ID,
		Amount:      row.Amount,
		Kind:        domain.TransactionKind(row.Type),
		Category:    row.Category,
		Date:        row.Date,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func transactionsFromStorage(rows []*transaction.Transaction) []domain.Transaction {
	result := make([]domain.Transaction, len(rows))
	for i, row := range rows {
		result[i] = transactionFromStorage(row)
	}
	return result
}
