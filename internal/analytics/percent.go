package analytics

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// roundTenth rounds half away from zero at the tenths digit.
func roundTenth(d decimal.Decimal) decimal.Decimal {
	return d.Round(1)
}

// relativeChange is (current - previous) / |previous| * 100. previous must
// be non-zero.
func relativeChange(current, previous decimal.Decimal) decimal.Decimal {
	return current.Sub(previous).Div(previous.Abs()).Mul(hundred)
}

// SummaryChange is the month-over-month change used by the summary view for
// income and expense totals. A zero previous value reports 100 when the
// current value is positive and 0 otherwise.
func SummaryChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return roundTenth(relativeChange(current, previous))
}

// SummaryBalanceChange is SummaryChange for balances, which may be negative:
// a zero previous balance reports +100, -100 or 0 by the sign of current.
func SummaryBalanceChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return hundred.Mul(decimal.NewFromInt(int64(current.Sign())))
	}
	return roundTenth(relativeChange(current, previous))
}

// ComparisonChange is the change used by the month comparison view. It
// reports 0 unless previous is positive, and is not rounded.
func ComparisonChange(current, previous decimal.Decimal) decimal.Decimal {
	if !previous.IsPositive() {
		return decimal.Zero
	}
	return relativeChange(current, previous)
}

// ComparisonBalanceChange reports 0 when the previous balance is exactly zero.
func ComparisonBalanceChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return relativeChange(current, previous)
}
