package transaction

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/domain"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httputil"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

// ListTransactionsInput is the Huma input for listing transactions.
type ListTransactionsInput struct {
	Type      string   `query:"type" doc:"Only income or only expense"`
	Category  []string `query:"category,explode" doc:"Categories to include, repeatable"`
	StartDate string   `query:"startDate" doc:"Inclusive lower bound, RFC3339 or YYYY-MM-DD"`
	EndDate   string   `query:"endDate" doc:"Inclusive upper bound; a plain date covers the whole day"`
}

// ListTransactionsOutput is the Huma output for listing transactions.
type ListTransactionsOutput struct {
	Body []Transaction
}

type transactionLister interface {
	ListTransactions(ctx context.Context, query domain.TransactionQuery) ([]domain.Transaction, error)
}

// ListTransactionsHandler handles GET /api/transactions.
type ListTransactionsHandler struct {
	TransactionService transactionLister
}

func NewListTransactionsHandler(svc transactionLister) *ListTransactionsHandler {
	return &ListTransactionsHandler{TransactionService: svc}
}

// Register registers the list transactions endpoint with the Huma API.
func (h *ListTransactionsHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-transactions",
		Method:      http.MethodGet,
		Path:        basePath,
		Summary:     "List transactions",
		Description: "Returns the transactions matching the filters, newest first.",
		Tags:        []string{"Transactions"},
	}, h.handle)
}

// parseListTransactionsInput builds the store query from the query string.
func parseListTransactionsInput(input *ListTransactionsInput) (domain.TransactionQuery, error) {
	var query domain.TransactionQuery

	if input.Type != "" {
		kind, err := domain.ParseTransactionKind(input.Type)
		if err != nil {
			return query, huma.NewError(http.StatusBadRequest, "invalid type", err)
		}
		query.Kind = kind
	}

	for _, category := range input.Category {
		if category != "" {
			query.Categories = append(query.Categories, category)
		}
	}

	from, err := httputil.ParseDate("startDate", input.StartDate, false)
	if err != nil {
		return query, huma.NewError(http.StatusBadRequest, "invalid startDate", err)
	}
	to, err := httputil.ParseDate("endDate", input.EndDate, true)
	if err != nil {
		return query, huma.NewError(http.StatusBadRequest, "invalid endDate", err)
	}
	query.From = from
	query.To = to

	return query, nil
}

func (h *ListTransactionsHandler) handle(ctx context.Context, input *ListTransactionsInput) (*ListTransactionsOutput, error) {
	logData := logging.GetLogData(ctx)
	query, err := parseListTransactionsInput(input)
	if err != nil {
		return nil, err
	}

	transactions, err := logging.Timed(logData, "listTransactionsMs", func() ([]domain.Transaction, error) {
		return h.TransactionService.ListTransactions(ctx, query)
	})
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "Error fetching transactions", err)
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	resp := make([]Transaction, len(transactions))
	for i := range transactions {
		resp[i] = transactionFromDomain(&transactions[i])
	}
	return &ListTransactionsOutput{Body: resp}, nil
}
