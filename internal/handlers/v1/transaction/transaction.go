package transaction

import (
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/domain"
	"github.com/carson-networks/finance-tracker/internal/handlers/v1/httputil"
	"github.com/carson-networks/finance-tracker/internal/service"
)

const basePath = "/api/transactions"

// Transaction is the API response model for a transaction.
type Transaction struct {
	ID          string    `json:"id" doc:"Transaction identifier"`
	Amount      float64   `json:"amount" doc:"Amount, never signed"`
	Type        string    `json:"type" enum:"income,expense" doc:"Direction of the transaction"`
	Category    string    `json:"category" doc:"Category name"`
	Date        time.Time `json:"date" doc:"When the transaction happened"`
	Description string    `json:"description,omitempty" doc:"Free text description"`
	CreatedAt   time.Time `json:"createdAt" doc:"Creation time"`
	UpdatedAt   time.Time `json:"updatedAt" doc:"Last update time"`
}

func transactionFromDomain(tx *domain.Transaction) Transaction {
	return Transaction{
		ID:          tx.ID,
		Amount:      httputil.Number(tx.Amount),
		Type:        string(tx.Kind),
		Category:    tx.Category,
		Date:        tx.Date,
		Description: tx.Description,
		CreatedAt:   tx.CreatedAt,
		UpdatedAt:   tx.UpdatedAt,
	}
}

// TransactionBody is the request body for creating or replacing a transaction.
type TransactionBody struct {
	Amount      float64 `json:"amount" minimum:"0" doc:"Amount, never signed"`
	Type        string  `json:"type" enum:"income,expense" doc:"Direction of the transaction"`
	Category    string  `json:"category" minLength:"1" doc:"Category name"`
	Date        string  `json:"date,omitempty" doc:"RFC3339 timestamp or YYYY-MM-DD"`
	Description string  `json:"description,omitempty" doc:"Free text description"`
}

// parseTransactionBody converts the request body. A missing date stays zero
// and is resolved by the service.
func parseTransactionBody(body *TransactionBody) (service.TransactionInput, error) {
	kind, err := domain.ParseTransactionKind(body.Type)
	if err != nil {
		return service.TransactionInput{}, huma.NewError(http.StatusBadRequest, "invalid type", err)
	}

	date, err := httputil.ParseDate("date", body.Date, false)
	if err != nil {
		return service.TransactionInput{}, huma.NewError(http.StatusBadRequest, "invalid date", err)
	}

	in := service.TransactionInput{
		Amount:      decimal.NewFromFloat(body.Amount),
		Kind:        kind,
		Category:    body.Category,
		Description: body.Description,
	}
	if date != nil {
		in.Date = *date
	}
	return in, nil
}

// TransactionIDInput is the Huma input for single-transaction lookups.
type TransactionIDInput struct {
	ID string `path:"id" doc:"Transaction identifier"`
}

// TransactionOutput is the Huma output carrying one transaction.
type TransactionOutput struct {
	Body Transaction
}

// MessageBody confirms an operation that returns no record.
type MessageBody struct {
	Message string `json:"message" doc:"Outcome of the operation"`
}

// MessageOutput is the Huma output for operations that only confirm.
type MessageOutput struct {
	Body MessageBody
}

func storeError(err error, message string) error {
	if errors.Is(err, service.ErrNotFound) {
		return huma.NewError(http.StatusNotFound, "Transaction not found")
	}
	return huma.NewError(http.StatusInternalServerError, message, err)
}
