package transaction

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/carson-networks/finance-tracker/internal/storage/mongodb"
)

var _ ITransactionTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	collection mongodb.Collection
	now        func() time.Time
}

func NewTransactionsTable(collection mongodb.Collection) *TransactionsTable {
	return &TransactionsTable{collection: collection, now: time.Now}
}

// FindByID retrieves a transaction by identifier.
func (t *TransactionsTable) FindByID(ctx context.Context, id string) (*Transaction, error) {
	objectID, err := mongodb.ParseID(id)
	if err != nil {
		return nil, err
	}

	var doc transactionDocument
	if err := t.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc); err != nil {
		return nil, mongodb.SingleResultErr(err)
	}
	return documentToTransaction(&doc)
}

// List returns transactions matching the filter ordered by date. Nil filter
// returns all, newest first.
func (t *TransactionsTable) List(ctx context.Context, filter *TransactionFilter) ([]*Transaction, error) {
	if filter == nil {
		filter = &TransactionFilter{}
	}

	sortOrder := -1
	if filter.SortAscending {
		sortOrder = 1
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: sortOrder}, {Key: "_id", Value: sortOrder}})

	cursor, err := t.collection.Find(ctx, listFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []transactionDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}

	result := make([]*Transaction, len(docs))
	for i := range docs {
		tx, err := documentToTransaction(&docs[i])
		if err != nil {
			return nil, err
		}
		result[i] = tx
	}
	return result, nil
}

func listFilter(filter *TransactionFilter) bson.M {
	query := bson.M{}
	if filter.Type != nil {
		query["type"] = *filter.Type
	}
	if len(filter.Categories) > 0 {
		query["category"] = bson.M{"$in": filter.Categories}
	}
	if filter.DateFrom != nil || filter.DateTo != nil {
		dateRange := bson.M{}
		if filter.DateFrom != nil {
			dateRange["$gte"] = *filter.DateFrom
		}
		if filter.DateTo != nil {
			dateRange["$lte"] = *filter.DateTo
		}
		query["date"] = dateRange
	}
	return query
}

// Insert creates a new transaction and returns it with its generated ID.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionWrite) (*Transaction, error) {
	amount, err := mongodb.ToDecimal128(create.Amount)
	if err != nil {
		return nil, err
	}

	now := mongodb.StoredTime(t.now())
	doc := transactionDocument{
		ID:          primitive.NewObjectID(),
		Amount:      amount,
		Type:        create.Type,
		Category:    create.Category,
		Date:        mongodb.StoredTime(create.Date),
		Description: create.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := t.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return documentToTransaction(&doc)
}

// Replace overwrites the user-editable fields of a transaction. The
// description is removed when empty; a zero Date keeps the stored date.
func (t *TransactionsTable) Replace(ctx context.Context, id string, update *TransactionWrite) (*Transaction, error) {
	objectID, err := mongodb.ParseID(id)
	if err != nil {
		return nil, err
	}
	amount, err := mongodb.ToDecimal128(update.Amount)
	if err != nil {
		return nil, err
	}

	set := bson.M{
		"amount":    amount,
		"type":      update.Type,
		"category":  update.Category,
		"updatedAt": mongodb.StoredTime(t.now()),
	}
	if !update.Date.IsZero() {
		set["date"] = mongodb.StoredTime(update.Date)
	}
	change := bson.M{"$set": set}
	if update.Description != "" {
		set["description"] = update.Description
	} else {
		change["$unset"] = bson.M{"description": ""}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc transactionDocument
	if err := t.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, change, opts).Decode(&doc); err != nil {
		return nil, mongodb.SingleResultErr(err)
	}
	return documentToTransaction(&doc)
}

// Delete removes a transaction, returning mongodb.ErrNotFound when none matched.
func (t *TransactionsTable) Delete(ctx context.Context, id string) error {
	objectID, err := mongodb.ParseID(id)
	if err != nil {
		return err
	}

	result, err := t.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongodb.ErrNotFound
	}
	return nil
}
