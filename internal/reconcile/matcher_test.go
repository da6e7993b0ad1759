package reconcile

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

func day(d int) time.Time {
	return time.Date(2024, 2, d, 0, 0, 0, 0, time.UTC)
}

func entry(id string, d int, description, debit, credit string) models.JournalEntry {
	return models.JournalEntry{
		ID:          id,
		Date:        day(d),
		Description: description,
		Lines: []models.JournalLine{
			{AccountCode: "511", Debit: amount(debit), Credit: decimal.Zero},
			{AccountCode: "701", Debit: decimal.Zero, Credit: amount(credit)},
		},
	}
}

func pendingTx(id string, d int, description, amt, txType string) models.BankTransaction {
	return models.BankTransaction{
		ID:          id,
		Date:        day(d),
		Description: description,
		Amount:      amount(amt),
		Type:        txType,
		Status:      models.StatusPending,
	}
}

func TestFindMatches_SingleCandidate(t *testing.T) {
	entries := []models.JournalEntry{
		entry("entry-1", 10, "Vente de marchandises", "150", "150"),
		entry("entry-2", 11, "Autre vente", "90", "90"),
	}
	transactions := []models.BankTransaction{
		pendingTx("tx-1", 10, "Vente de marchandises", "150", models.BankTxCredit),
	}

	updated, matches := FindMatches(transactions, entries)

	require.Len(t, updated, 1)
	assert.Equal(t, models.StatusMatched, updated[0].Status)
	require.NotNil(t, updated[0].MatchedEntryID)
	assert.Equal(t, "entry-1", *updated[0].MatchedEntryID)

	require.Len(t, matches, 1)
	assert.Equal(t, "tx-1", matches[0].BankTransactionID)
	assert.Equal(t, "entry-1", matches[0].JournalEntryID)
	// All description words shared: 50 + 30 + 20.
	assert.Equal(t, "100", matches[0].Confidence.String())
}

func TestFindMatches_ConfidenceAtLeast80(t *testing.T) {
	entries := []models.JournalEntry{entry("entry-1", 5, "Règlement facture client", "200", "200")}
	transactions := []models.BankTransaction{
		pendingTx("tx-1", 5, "VIR SEPA 20240205", "200", models.BankTxCredit),
	}

	_, matches := FindMatches(transactions, entries)
	require.Len(t, matches, 1)
	assert.True(t, matches[0].Confidence.GreaterThanOrEqual(decimal.NewFromInt(80)))
	assert.True(t, matches[0].Confidence.LessThanOrEqual(decimal.NewFromInt(100)))
}

func TestFindMatches_NoCandidate(t *testing.T) {
	entries := []models.JournalEntry{entry("entry-1", 3, "Vente", "100", "100")}
	transactions := []models.BankTransaction{
		pendingTx("tx-1", 3, "Vente", "250", models.BankTxCredit),
	}

	updated, matches := FindMatches(transactions, entries)
	assert.Equal(t, models.StatusUnmatched, updated[0].Status)
	assert.Nil(t, updated[0].MatchedEntryID)
	assert.Empty(t, matches)
}

func TestFindMatches_AmbiguityNeverAutoResolved(t *testing.T) {
	entries := []models.JournalEntry{
		entry("entry-1", 7, "Vente A", "80", "80"),
		entry("entry-2", 7, "Vente B", "80", "80"),
	}
	transactions := []models.BankTransaction{
		pendingTx("tx-1", 7, "Vente", "80", models.BankTxCredit),
	}

	updated, matches := FindMatches(transactions, entries)
	assert.Equal(t, models.StatusUnmatched, updated[0].Status)
	assert.Empty(t, matches)
}

func TestFindMatches_DateMustBeExact(t *testing.T) {
	entries := []models.JournalEntry{entry("entry-1", 9, "Vente", "60", "60")}
	transactions := []models.BankTransaction{
		pendingTx("tx-1", 10, "Vente", "60", models.BankTxCredit),
	}

	updated, _ := FindMatches(transactions, entries)
	assert.Equal(t, models.StatusUnmatched, updated[0].Status)
}

func TestFindMatches_DebitSideUsedForDebitTransactions(t *testing.T) {
	// The entry debits 511 for 75; a debit transaction of -75 must match on
	// the debit column and on the absolute amount.
	entries := []models.JournalEntry{entry("entry-1", 12, "Paiement fournisseur", "75", "75")}
	transactions := []models.BankTransaction{
		pendingTx("tx-1", 12, "Paiement fournisseur", "-75", models.BankTxDebit),
	}

	updated, matches := FindMatches(transactions, entries)
	assert.Equal(t, models.StatusMatched, updated[0].Status)
	require.Len(t, matches, 1)
}

func TestFindMatches_NonPendingLeftAlone(t *testing.T) {
	matchedID := "entry-9"
	transactions := []models.BankTransaction{
		{ID: "tx-1", Date: day(1), Amount: amount("10"), Type: models.BankTxCredit, Status: models.StatusMatched, MatchedEntryID: &matchedID},
		{ID: "tx-2", Date: day(1), Amount: amount("10"), Type: models.BankTxCredit, Status: models.StatusUnmatched},
	}

	updated, matches := FindMatches(transactions, nil)
	assert.Equal(t, models.StatusMatched, updated[0].Status)
	assert.Equal(t, &matchedID, updated[0].MatchedEntryID)
	assert.Equal(t, models.StatusUnmatched, updated[1].Status)
	assert.Empty(t, matches)
}

func TestFindMatches_DoesNotMutateInput(t *testing.T) {
	entries := []models.JournalEntry{entry("entry-1", 4, "Vente", "30", "30")}
	transactions := []models.BankTransaction{
		pendingTx("tx-1", 4, "Vente", "30", models.BankTxCredit),
	}

	FindMatches(transactions, entries)
	assert.Equal(t, models.StatusPending, transactions[0].Status)
	assert.Nil(t, transactions[0].MatchedEntryID)
}

func TestDescriptionScore(t *testing.T) {
	// Two of four transaction words appear in the entry description.
	score := descriptionScore("virement loyer mars 2024", "paiement loyer mars")
	assert.Equal(t, "10", score.String())

	assert.True(t, descriptionScore("", "").IsZero())
	assert.Equal(t, "20", descriptionScore("Vente", "vente").String())
}

func TestAmountEpsilonIsStrict(t *testing.T) {
	entries := []models.JournalEntry{entry("entry-1", 2, "Vente", "100", "100")}

	// 0.009 below the entry amount is still a candidate; exactly 0.01 is not.
	near := []models.BankTransaction{pendingTx("tx-1", 2, "Vente", "99.991", models.BankTxCredit)}
	updated, _ := FindMatches(near, entries)
	assert.Equal(t, models.StatusMatched, updated[0].Status)

	edge := []models.BankTransaction{pendingTx("tx-2", 2, "Vente", "99.99", models.BankTxCredit)}
	updated, _ = FindMatches(edge, entries)
	assert.Equal(t, models.StatusUnmatched, updated[0].Status)
}
