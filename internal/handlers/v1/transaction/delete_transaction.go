package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/logging"
)

type transactionDeleter interface {
	DeleteTransaction(ctx context.Context, id string) error
}

// DeleteTransactionHandler handles DELETE /api/transactions/{id}.
type DeleteTransactionHandler struct {
	TransactionService transactionDeleter
}

func NewDeleteTransactionHandler(svc transactionDeleter) *DeleteTransactionHandler {
	return &DeleteTransactionHandler{TransactionService: svc}
}

func (h *DeleteTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "delete-transaction",
		Method:      http.MethodDelete,
		Path:        basePath + "/{id}",
		Summary:     "Delete transaction",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *DeleteTransactionHandler) handle(ctx context.Context, input *TransactionIDInput) (*MessageOutput, error) {
	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("deleteTransactionMs")
	}
	err := h.TransactionService.DeleteTransaction(ctx, input.ID)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, storeError(err, "Error deleting transaction")
	}

	return &MessageOutput{Body: MessageBody{Message: "Transaction deleted successfully"}}, nil
}
