package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/domain"
	"github.com/carson-networks/finance-tracker/internal/logging"
	"github.com/carson-networks/finance-tracker/internal/service"
)

// UpdateTransactionInput is the Huma input for replacing a transaction.
type UpdateTransactionInput struct {
	ID   string `path:"id" doc:"Transaction identifier"`
	Body TransactionBody
}

type transactionUpdater interface {
	UpdateTransaction(ctx context.Context, id string, in service.TransactionInput) (*domain.Transaction, error)
}

// UpdateTransactionHandler handles PUT /api/transactions/{id}.
type UpdateTransactionHandler struct {
	TransactionService transactionUpdater
}

func NewUpdateTransactionHandler(svc transactionUpdater) *UpdateTransactionHandler {
	return &UpdateTransactionHandler{TransactionService: svc}
}

func (h *UpdateTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "update-transaction",
		Method:      http.MethodPut,
		Path:        basePath + "/{id}",
		Summary:     "Update transaction",
		Description: "Replaces the transaction's fields. Omitting the description clears it; omitting the date keeps it.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *UpdateTransactionHandler) handle(ctx context.Context, input *UpdateTransactionInput) (*TransactionOutput, error) {
	in, err := parseTransactionBody(&input.Body)
	if err != nil {
		return nil, err
	}

	tx, err := logging.Timed(logging.GetLogData(ctx), "updateTransactionMs", func() (*domain.Transaction, error) {
		return h.TransactionService.UpdateTransaction(ctx, input.ID, in)
	})
	if err != nil {
		return nil, storeError(err, "Error updating transaction")
	}
	return &TransactionOutput{Body: transactionFromDomain(tx)}, nil
}
