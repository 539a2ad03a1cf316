package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/carson-networks/finance-tracker/internal/domain"
)

// GroupTotal is the summed value of one group.
type GroupTotal struct {
	Key   string
	Total decimal.Decimal
}

// GroupSum groups items by key, sums value per group and returns the groups
// by total descending. Equal totals are ordered by key so repeated calls
// produce identical output.
func GroupSum[T any](items []T, key func(T) string, value func(T) decimal.Decimal) []GroupTotal {
	index := make(map[string]int)
	groups := make([]GroupTotal, 0)

	for _, item := range items {
		k := key(item)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, GroupTotal{Key: k, Total: decimal.Zero})
		}
		groups[i].Total = groups[i].Total.Add(value(item))
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if c := groups[i].Total.Cmp(groups[j].Total); c != 0 {
			return c > 0
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// CategoryTotals sums the transactions matching q per category. Callers set
// q.Kind to pick spending or income.
func CategoryTotals(txs []domain.Transaction, q domain.TransactionQuery) []GroupTotal {
	filtered := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if q.Matches(tx) {
			filtered = append(filtered, tx)
		}
	}

	return GroupSum(filtered,
		func(tx domain.Transaction) string { return tx.Category },
		func(tx domain.Transaction) decimal.Decimal { return tx.Amount },
	)
}
