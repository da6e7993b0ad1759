package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"comptable/internal/models"
)

func amount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func lines(debit, credit string) []models.JournalLine {
	return []models.JournalLine{
		{AccountCode: "601", Label: "Achat", Debit: amount(debit), Credit: decimal.Zero},
		{AccountCode: "401", Label: "Fournisseur", Debit: decimal.Zero, Credit: amount(credit)},
	}
}

func TestValidateLines_Balanced(t *testing.T) {
	assert.NoError(t, ValidateLines(lines("100", "100")))
	assert.True(t, IsBalanced(lines("100", "100")))
}

func TestValidateLines_Unbalanced(t *testing.T) {
	err := ValidateLines(lines("100", "99"))
	var balanceErr *BalanceError
	require.ErrorAs(t, err, &balanceErr)
	assert.Equal(t, "100", balanceErr.TotalDebit.String())
	assert.Equal(t, "99", balanceErr.TotalCredit.String())
}

func TestValidateLines_EpsilonBoundary(t *testing.T) {
	// A 0.01 difference is accepted, 0.02 is not.
	assert.NoError(t, ValidateLines(lines("100.01", "100")))
	assert.Error(t, ValidateLines(lines("100.02", "100")))
}

func TestValidateLines_Empty(t *testing.T) {
	err := ValidateLines(nil)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "lines", validationErr.Field)
}

func TestValidateLines_NegativeAmount(t *testing.T) {
	bad := []models.JournalLine{
		{AccountCode: "601", Debit: amount("-5"), Credit: decimal.Zero},
		{AccountCode: "401", Debit: decimal.Zero, Credit: amount("-5")},
	}
	var validationErr *ValidationError
	require.ErrorAs(t, ValidateLines(bad), &validationErr)
	assert.Equal(t, "debit", validationErr.Field)
}

func TestValidateLines_MissingAccountCode(t *testing.T) {
	bad := []models.JournalLine{{Debit: amount("10"), Credit: decimal.Zero}}
	var validationErr *ValidationError
	require.ErrorAs(t, ValidateLines(bad), &validationErr)
	assert.Equal(t, "account_code", validationErr.Field)
}

func TestParseAmount(t *testing.T) {
	value, err := ParseAmount("debit", " 12.50 ")
	require.NoError(t, err)
	assert.Equal(t, "12.5", value.String())

	_, err = ParseAmount("debit", "abc")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "abc", parseErr.Value)

	_, err = ParseAmount("credit", "")
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "credit", validationErr.Field)
}

func TestNewEntry_AssignsIdentifiers(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	entry, err := NewEntry(date, "FA-001", "Achat de marchandises", models.JournalPurchases, "owner-1", lines("250", "250"))
	require.NoError(t, err)

	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "owner-1", entry.OwnerID)
	require.Len(t, entry.Lines, 2)
	for _, line := range entry.Lines {
		assert.NotEmpty(t, line.ID)
		assert.Equal(t, entry.ID, line.EntryID)
	}
	assert.NotEqual(t, entry.Lines[0].ID, entry.Lines[1].ID)
}

func TestNewEntry_RejectsUnbalanced(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	_, err := NewEntry(date, "FA-002", "Déséquilibrée", models.JournalSales, "owner-1", lines("100", "99"))
	var balanceErr *BalanceError
	assert.ErrorAs(t, err, &balanceErr)
}

func TestNewEntry_RejectsUnknownJournal(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	_, err := NewEntry(date, "FA-003", "Mauvais journal", "payroll", "owner-1", lines("10", "10"))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "journal_type", validationErr.Field)
}
