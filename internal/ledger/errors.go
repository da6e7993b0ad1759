package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError reports malformed input: a missing required field, an
// unknown enum value or a negative amount.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ParseError reports a value that could not be parsed as a number. It is
// deliberately distinct from ValidationError so callers never coerce a bad
// amount to zero.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s: %q is not a number", e.Field, e.Value)
}

// BalanceError reports a debit/credit mismatch beyond the accepted epsilon.
type BalanceError struct {
	TotalDebit  decimal.Decimal
	TotalCredit decimal.Decimal
}

func (e *BalanceError) Error() string {
	return fmt.Sprintf("entry is not balanced: debits %s != credits %s",
		e.TotalDebit.StringFixed(2), e.TotalCredit.StringFixed(2))
}

// NotFoundError reports a failed lookup by code or id.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// OwnershipError reports a resource that exists but belongs to another owner.
type OwnershipError struct {
	Kind string
	Key  string
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("%s %q belongs to a different owner", e.Kind, e.Key)
}
