package actions

import (
	"context"

	"github.com/carson-networks/finance-tracker/internal/storage"
)

// IAction is a single write executed by an operator worker. Results are
// stored on the action itself for the caller to read after Process returns.
type IAction interface {
	Perform(ctx context.Context, store *storage.Storage) error
}
