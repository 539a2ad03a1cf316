// Package domain holds the records shared by the service, analytics and
// handler layers.
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind is the direction of a transaction. The amount itself is
// never signed.
type TransactionKind string

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// ParseTransactionKind validates a kind received from a client.
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch TransactionKind(s) {
	case KindIncome, KindExpense:
		return TransactionKind(s), nil
	}
	return "", fmt.Errorf("invalid transaction type %q: must be income or expense", s)
}

type Transaction struct {
	ID          string
	Amount      decimal.Decimal
	Kind        TransactionKind
	Category    string
	Date        time.Time
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TransactionQuery filters transactions. Zero values mean "no constraint".
// Bounds are inclusive.
type TransactionQuery struct {
	Kind       TransactionKind
	Categories []string
	From       *time.Time
	To         *time.Time
	Ascending  bool
}

// Matches reports whether tx satisfies every constraint of q.
func (q TransactionQuery) Matches(tx Transaction) bool {
	if q.Kind != "" && tx.Kind != q.Kind {
		return false
	}
	if len(q.Categories) > 0 {
		found := false
		for _, category := range q.Categories {
			if tx.Category == category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if q.From != nil && tx.Date.Before(*q.From) {
		return false
	}
	if q.To != nil && tx.Date.After(*q.To) {
		return false
	}
	return true
}
