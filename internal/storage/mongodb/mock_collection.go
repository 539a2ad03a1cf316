package mongodb

import (
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MockCollection is a testify mock of Collection for table tests.
type MockCollection struct {
	mock.Mock
}

var _ Collection = (*MockCollection)(nil)

func (m *MockCollection) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error) {
	args := m.Called(ctx, filter, opts)
	cursor, _ := args.Get(0).(*mongo.Cursor)
	return cursor, args.Error(1)
}

func (m *MockCollection) FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult {
	args := m.Called(ctx, filter, opts)
	return args.Get(0).(*mongo.SingleResult)
}

func (m *MockCollection) InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error) {
	args := m.Called(ctx, document, opts)
	result, _ := args.Get(0).(*mongo.InsertOneResult)
	return result, args.Error(1)
}

func (m *MockCollection) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult {
	args := m.Called(ctx, filter, update, opts)
	return args.Get(0).(*mongo.SingleResult)
}

func (m *MockCollection) DeleteOne(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	args := m.Called(ctx, filter, opts)
	result, _ := args.Get(0).(*mongo.DeleteResult)
	return result, args.Error(1)
}

// CursorOf builds a cursor over in-memory documents.
func CursorOf(docs ...interface{}) *mongo.Cursor {
	cursor, err := mongo.NewCursorFromDocuments(docs, nil, nil)
	if err != nil {
		panic(err)
	}
	return cursor
}

// ResultOf builds a single result holding doc, or the given error when err is set.
func ResultOf(doc interface{}, err error) *mongo.SingleResult {
	if doc == nil {
		doc = struct{}{}
	}
	return mongo.NewSingleResultFromDocument(doc, err, nil)
}
