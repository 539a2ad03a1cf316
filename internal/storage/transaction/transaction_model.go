package transaction

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carson-networks/finance-tracker/internal/storage/mongodb"
)

// CollectionName is the transactions collection.
const CollectionName = "transactions"

// Transaction represents a transaction document.
type Transaction struct {
	ID          string
	Amount      decimal.Decimal
	Type        string
	Category    string
	Date        time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TransactionWrite is the input for inserting or replacing a transaction.
type TransactionWrite struct {
	Amount      decimal.Decimal
	Type        string
	Category    string
	Date        time.Time
	Description string
}

// TransactionFilter specifies filters for listing transactions. Date bounds
// are inclusive; Categories match any of the given values.
type TransactionFilter struct {
	Type          *string
	Categories    []string
	DateFrom      *time.Time
	DateTo        *time.Time
	SortAscending bool
}

// ITransactionTable defines the interface for transaction storage operations.
// This abstraction allows swapping the store without changing callers.
//
//go:generate mockery --name ITransactionTable --inpackage --with-expecter --filename mock_ITransactionTable.go
type ITransactionTable interface {
	FindByID(ctx context.Context, id string) (*Transaction, error)
	List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error)
	Insert(ctx context.Context, create *TransactionWrite) (*Transaction, error)
	Replace(ctx context.Context, id string, update *TransactionWrite) (*Transaction, error)
	Delete(ctx context.Context, id string) error
}

type transactionDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Amount      primitive.Decimal128 `bson:"amount"`
	Type        string               `bson:"type"`
	Category    string               `bson:"category"`
	Date        time.Time            `bson:"date"`
	Description string               `bson:"description,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

func documentToTransaction(doc *transactionDocument) (*Transaction, error) {
	amount, err := mongodb.FromDecimal128(doc.Amount)
	if err != nil {
		return nil, err
	}
	return &Transaction{
		ID:          doc.ID.Hex(),
		Amount:      amount,
		Type:        doc.Type,
		Category:    doc.Category,
		Date:        doc.Date,
		Description: doc.Description,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}
