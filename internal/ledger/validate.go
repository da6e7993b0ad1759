package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"comptable/internal/models"
)

// Totals sums the debit and credit columns of a set of journal lines.
func Totals(lines []models.JournalLine) (decimal.Decimal, decimal.Decimal) {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, line := range lines {
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return totalDebit, totalCredit
}

// IsBalanced reports whether total debits equal total credits within the
// 0.01 epsilon.
func IsBalanced(lines []models.JournalLine) bool {
	totalDebit, totalCredit := Totals(lines)
	return totalDebit.Sub(totalCredit).Abs().LessThanOrEqual(balanceEpsilon)
}

// ValidateLines enforces the double-entry invariant on an entry's lines:
// the set is non-empty, no amount is negative, and total debits equal total
// credits within the epsilon. It returns a typed error naming the violated
// invariant and the offending values.
func ValidateLines(lines []models.JournalLine) error {
	if len(lines) == 0 {
		return &ValidationError{Field: "lines", Reason: "at least one line is required"}
	}
	for _, line := range lines {
		if line.AccountCode == "" {
			return &ValidationError{Field: "account_code", Reason: "required"}
		}
		if line.Debit.IsNegative() {
			return &ValidationError{Field: "debit", Reason: "must not be negative"}
		}
		if line.Credit.IsNegative() {
			return &ValidationError{Field: "credit", Reason: "must not be negative"}
		}
	}
	totalDebit, totalCredit := Totals(lines)
	if totalDebit.Sub(totalCredit).Abs().GreaterThan(balanceEpsilon) {
		return &BalanceError{TotalDebit: totalDebit, TotalCredit: totalCredit}
	}
	return nil
}

// ValidJournalType reports whether a journal type is one of the four
// journals kept by the application.
func ValidJournalType(journalType string) bool {
	switch journalType {
	case models.JournalPurchases, models.JournalSales, models.JournalBank, models.JournalCash:
		return true
	}
	return false
}

// NewEntry validates the lines and, on success, returns a fully formed entry
// with generated identifiers on the entry and each line. On failure nothing
// is produced, so callers can never persist a partial entry.
func NewEntry(date time.Time, reference, description, journalType, ownerID string, lines []models.JournalLine) (models.JournalEntry, error) {
	if reference == "" {
		return models.JournalEntry{}, &ValidationError{Field: "reference", Reason: "required"}
	}
	if description == "" {
		return models.JournalEntry{}, &ValidationError{Field: "description", Reason: "required"}
	}
	if !ValidJournalType(journalType) {
		return models.JournalEntry{}, &ValidationError{Field: "journal_type", Reason: "must be purchases, sales, bank or cash"}
	}
	if err := ValidateLines(lines); err != nil {
		return models.JournalEntry{}, err
	}
	entry := models.JournalEntry{
		ID:          uuid.NewString(),
		Date:        date,
		Reference:   reference,
		Description: description,
		JournalType: journalType,
		OwnerID:     ownerID,
		Lines:       make([]models.JournalLine, len(lines)),
	}
	for i, line := range lines {
		line.ID = uuid.NewString()
		line.EntryID = entry.ID
		entry.Lines[i] = line
	}
	return entry, nil
}
