package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/domain"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

type transactionGetter interface {
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
}

// GetTransactionHandler handles GET /api/transactions/{id}.
type GetTransactionHandler struct {
	TransactionService transactionGetter
}

func NewGetTransactionHandler(svc transactionGetter) *GetTransactionHandler {
	return &GetTransactionHandler{TransactionService: svc}
}

func (h *GetTransactionHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-transaction",
		Method:      http.MethodGet,
		Path:        basePath + "/{id}",
		Summary:     "Get transaction",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

func (h *GetTransactionHandler) handle(ctx context.Context, input *TransactionIDInput) (*TransactionOutput, error) {
	tx, err := logging.Timed(logging.GetLogData(ctx), "getTransactionMs", func() (*domain.Transaction, error) {
		return h.TransactionService.GetTransaction(ctx, input.ID)
	})
	if err != nil {
		return nil, storeError(err, "Error fetching transaction")
	}
	return &TransactionOutput{Body: transactionFromDomain(tx)}, nil
}
