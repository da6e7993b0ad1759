package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// balanceEpsilon is the absolute tolerance applied when comparing debit and
// credit totals. It matches currency rounding: a 0.01 difference is accepted,
// 0.02 is not.
var balanceEpsilon = decimal.New(1, -2)

// ParseAmount converts a raw request value into a decimal amount. An empty
// value is a ValidationError; a non-numeric value is a ParseError. Amounts
// are never silently coerced to zero.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, &ValidationError{Field: field, Reason: "required"}
	}
	amount, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, &ParseError{Field: field, Value: raw}
	}
	return amount, nil
}
