package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/domain"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// CreateTransactionInput is the Huma input for creating a transaction.
type CreateTransactionInput struct {
	Body TransactionBody
}

type transactionCreator interface {
	CreateTransaction(ctx context.Context, in service.TransactionInput) (*domain.Transaction, error)
}

// CreateTransactionHandler handles POST /api/transactions.
type CreateTransactionHandler struct {
	TransactionService transactionCreator
}

func NewCreateTransactionHandler(svc transactionCreator) *CreateTransactionHandler {
	return &CreateTransactionHandler{TransactionService: svc}
}

// Register registers the create transaction endpoint with the Huma API.
func (h *CreateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-transaction",
		Method:        http.MethodPost,
		Path:          basePath,
		Summary:       "Create transaction",
		Description:   "Creates a new transaction. The date defaults to now.",
		Tags:          []string{"Transactions"},
		DefaultStatus: http.StatusCreated,
	}, h.handle)
}

func (h *CreateTransactionHandler) handle(ctx context.Context, input *CreateTransactionInput) (*TransactionOutput, error) {
	in, err := parseTransactionBody(&input.Body)
	if err != nil {
		return nil, err
	}

	tx, err := logging.Timed(logging.GetLogData(ctx), "createTransactionMs", func() (*domain.Transaction, error) {
		return h.TransactionService.CreateTransaction(ctx, in)
	})
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Error creating transaction", err)
	}
	return &TransactionOutput{Body: transactionFromDomain(tx)}, nil
}
