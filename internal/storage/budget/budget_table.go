package budget

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carson-networks/finance-tracker/internal/storage/mongodb"
)

var _ IBudgetTable = (*BudgetsTable)(nil)

var newestStartFirst = bson.D{{Key: "startDate", Value: -1}, {Key: "_id", Value: -1}}

type BudgetsTable struct {
	collection mongodb.Collection
	now        func() time.Time
}

func NewBudgetsTable(collection mongodb.Collection) *BudgetsTable {
	return &BudgetsTable{collection: collection, now: time.Now}
}

// FindByID retrieves a budget by identifier.
func (t *BudgetsTable) FindByID(ctx context.Context, id string) (*Budget, error) {
	objectID, err := mongodb.ParseID(id)
	if err != nil {
		return nil, err
	}

	var doc budgetDocument
	if err := t.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, mongodb.SingleResultErr(err)
	}
	return documentToBudget(&doc)
}

// List returns budgets matching the filter, most recent start first.
func (t *BudgetsTable) List(ctx context.Context, filter *BudgetFilter) ([]*Budget, error) {
	query := bson.M{}
	if filter != nil && filter.IsActive != nil {
		query["isActive"] = *filter.IsActive
	}

	cursor, err := t.collection.Find(ctx, query, options.Find().SetSort(newestStartFirst))
	if err != nil {
		return nil, fmt.Errorf("failed to find budgets: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []budgetDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode budgets: %w", err)
	}

	result := make([]*Budget, len(docs))
	for i := range docs {
		b, err := documentToBudget(&docs[i])
		if err != nil {
			return nil, err
		}
		result[i] = b
	}
	return result, nil
}

// FindActiveForCategory returns the active budget for category whose period
// contains at. When several match, the one that started last wins.
func (t *BudgetsTable) FindActiveForCategory(ctx context.Context, category string, at time.Time) (*Budget, error) {
	opts := options.FindOne().SetSort(newestStartFirst)

	var doc budgetDocument
	if err := t.collection.FindOne(ctx, activeForCategoryFilter(category, at), opts).Decode(&doc); err != nil {
		return nil, mongodb.SingleResultErr(err)
	}
	return documentToBudget(&doc)
}

func activeForCategoryFilter(category string, at time.Time) bson.M {
	return bson.M{
		"isActive":  true,
		"category":  category,
		"startDate": bson.M{"$lte": at},
		"endDate":   bson.M{"$gte": at},
	}
}

// Insert creates a new budget and returns it with its generated ID.
func (t *BudgetsTable) Insert(ctx context.Context, create *BudgetCreate) (*Budget, error) {
	amount, err := mongodb.ToDecimal128(create.Amount)
	if err != nil {
		return nil, err
	}

	now := mongodb.StoredTime(t.now())
	doc := budgetDocument{
		ID:        primitive.NewObjectID(),
		Category:  create.Category,
		Amount:    amount,
		Period:    create.Period,
		StartDate: mongodb.StoredTime(create.StartDate),
		EndDate:   mongodb.StoredTime(create.EndDate),
		IsActive:  create.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := t.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert budget: %w", err)
	}
	return documentToBudget(&doc)
}

// Update sets the provided fields and refreshes updatedAt.
func (t *BudgetsTable) Update(ctx context.Context, id string, update *BudgetUpdate) (*Budget, error) {
	objectID, err := mongodb.ParseID(id)
	if err != nil {
		return nil, err
	}

	set, err := updateSet(update)
	if err != nil {
		return nil, err
	}
	set["updatedAt"] = mongodb.StoredTime(t.now())

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc budgetDocument
	if err := t.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		return nil, mongodb.SingleResultErr(err)
	}
	return documentToBudget(&doc)
}

func updateSet(update *BudgetUpdate) (bson.M, error) {
	set := bson.M{}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.Amount != nil {
		amount, err := mongodb.ToDecimal128(*update.Amount)
		if err != nil {
			return nil, err
		}
		set["amount"] = amount
	}
	if update.Period != nil {
		set["period"] = *update.Period
	}
	if update.StartDate != nil {
		set["startDate"] = mongodb.StoredTime(*update.StartDate)
	}
	if update.EndDate != nil {
		set["endDate"] = mongodb.StoredTime(*update.EndDate)
	}
	if update.IsActive != nil {
		set["isActive"] = *update.IsActive
	}
	return set, nil
}

// Delete removes a budget, returning mongodb.ErrNotFound when none matched.
func (t *BudgetsTable) Delete(ctx context.Context, id string) error {
	objectID, err := mongodb.ParseID(id)
	if err != nil {
		return err
	}

	result, err := t.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongodb.ErrNotFound
	}
	return nil
}
