// Package mongodb holds the MongoDB plumbing shared by the collection tables.
package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a lookup by identifier matches no document.
var ErrNotFound = errors.New("document not found")

// Collection is the subset of *mongo.Collection the tables use.
type Collection interface {
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult
	DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
}

var _ Collection = (*mongo.Collection)(nil)

// Connect establishes a connection to MongoDB and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	logrus.WithField("uri", redact(uri)).Debug("mongodb.Connect.attempting")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	logrus.Info("mongodb.Connect.connected")
	return client, nil
}

// ParseID converts a hex identifier. Malformed identifiers cannot name any
// document, so they are reported as ErrNotFound.
func ParseID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid id %q", ErrNotFound, id)
	}
	return objectID, nil
}

// SingleResultErr maps a driver "no documents" error onto ErrNotFound.
func SingleResultErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// ToDecimal128 stores an exact decimal amount.
func ToDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	value, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("amount %s out of range: %w", d.String(), err)
	}
	return value, nil
}

// StoredTime returns t as a BSON datetime keeps it: UTC with millisecond
// precision. Records echoed after a write must match what a later read returns.
func StoredTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

func FromDecimal128(value primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(value.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("stored amount %s is not a number: %w", value.String(), err)
	}
	return d, nil
}

func redact(uri string) string {
	opts := options.Client().ApplyURI(uri)
	if opts.Auth != nil && opts.Auth.Password != "" {
		return "<credentials redacted>"
	}
	return uri
}
