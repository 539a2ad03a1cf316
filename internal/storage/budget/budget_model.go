package budget

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/carson-networks/finance-tracker/internal/storage/mongodb"
)

// CollectionName is the budgets collection.
const CollectionName = "budgets"

// Budget represents a budget document.
type Budget struct {
	ID        string
	Category  string
	Amount    decimal.Decimal
	Period    string
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BudgetCreate is the input for creating a budget. EndDate must already be
// resolved by the caller.
type BudgetCreate struct {
	Category  string
	Amount    decimal.Decimal
	Period    string
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
}

// BudgetUpdate sets only its non-nil fields.
type BudgetUpdate struct {
	Category  *string
	Amount    *decimal.Decimal
	Period    *string
	StartDate *time.Time
	EndDate   *time.Time
	IsActive  *bool
}

// BudgetFilter specifies filters for listing budgets.
type BudgetFilter struct {
	IsActive *bool
}

// IBudgetTable defines the interface for budget storage operations.
//
//go:generate mockery --name IBudgetTable --inpackage --with-expecter --filename mock_IBudgetTable.go
type IBudgetTable interface {
	FindByID(ctx context.Context, id string) (*Budget, error)
	List(ctx context.Context, filter *BudgetFilter) ([]*Budget, error)
	FindActiveForCategory(ctx context.Context, category string, at time.Time) (*Budget, error)
	Insert(ctx context.Context, create *BudgetCreate) (*Budget, error)
	Update(ctx context.Context, id string, update *BudgetUpdate) (*Budget, error)
	Delete(ctx context.Context, id string) error
}

type budgetDocument struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty"`
	Category  string               `bson:"category"`
	Amount    primitive.Decimal128 `bson:"amount"`
	Period    string               `bson:"period"`
	StartDate time.Time            `bson:"startDate"`
	EndDate   time.Time            `bson:"endDate"`
	IsActive  bool                 `bson:"isActive"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

func documentToBudget(doc *budgetDocument) (*Budget, error) {
	amount, err := mongodb.FromDecimal128(doc.Amount)
	if err != nil {
		return nil, err
	}
	return &Budget{
		ID:        doc.ID.Hex(),
		Category:  doc.Category,
		Amount:    amount,
		Period:    doc.Period,
		StartDate: doc.StartDate,
		EndDate:   doc.EndDate,
		IsActive:  doc.IsActive,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}
