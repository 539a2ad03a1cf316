// Package httputil holds the request parsing and response helpers shared by
// the v1 handlers.
package httputil

import (
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

const dateOnly = "2006-01-02"

// ParseDate accepts an RFC3339 timestamp or a plain YYYY-MM-DD date. Plain
// dates are midnight UTC; with endOfDay set they are moved to the last
// millisecond of that day so the bound includes the whole day. An empty
// value yields nil.
func ParseDate(name, value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}

	t, err := time.Parse(dateOnly, value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: expected RFC3339 or YYYY-MM-DD", name, value)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return &t, nil
}

// ParseOptionalBool parses a boolean query value. An empty value yields nil.
func ParseOptionalBool(name, value string) (*bool, error) {
	if value == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: expected true or false", name, value)
	}
	return &b, nil
}

// Number renders an exact amount as a JSON number.
func Number(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}
