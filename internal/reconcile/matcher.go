// Package reconcile matches imported bank transactions against journal
// entries by amount, date and description similarity.
package reconcile

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"comptable/internal/models"
)

// ManualMatchConfidence is assigned when a user confirms a match by hand.
var ManualMatchConfidence = decimal.NewFromInt(100)

// amountEpsilon is the strict tolerance for amount candidacy: the entry
// total must be within 0.01 of the transaction amount.
var amountEpsilon = decimal.New(1, -2)

// FindMatches evaluates every pending bank transaction against the journal
// entries. A transaction with exactly one candidate (same-day entry whose
// relevant line total equals the transaction amount) becomes matched with a
// scored confidence; zero or several candidates leave it unmatched, since
// ambiguity is never auto-resolved. Inputs are not mutated: the updated
// transactions and the new matches are returned to the caller.
func FindMatches(transactions []models.BankTransaction, entries []models.JournalEntry) ([]models.BankTransaction, []models.ReconciliationMatch) {
	updated := make([]models.BankTransaction, 0, len(transactions))
	var matches []models.ReconciliationMatch

	for _, transaction := range transactions {
		if transaction.Status != models.StatusPending {
			updated = append(updated, transaction)
			continue
		}
		var candidates []models.JournalEntry
		for _, entry := range entries {
			if isCandidate(transaction, entry) {
				candidates = append(candidates, entry)
			}
		}
		if len(candidates) == 1 {
			entry := candidates[0]
			transaction.Status = models.StatusMatched
			entryID := entry.ID
			transaction.MatchedEntryID = &entryID
			matches = append(matches, models.ReconciliationMatch{
				BankTransactionID: transaction.ID,
				JournalEntryID:    entry.ID,
				Confidence:        confidence(transaction, entry),
			})
		} else {
			transaction.Status = models.StatusUnmatched
			transaction.MatchedEntryID = nil
		}
		updated = append(updated, transaction)
	}
	return updated, matches
}

// isCandidate requires the entry's relevant line total to be within the
// epsilon of the transaction amount and the dates to fall on the same day.
func isCandidate(transaction models.BankTransaction, entry models.JournalEntry) bool {
	diff := entryAmount(entry, transaction.Type).Sub(transaction.Amount.Abs()).Abs()
	return diff.LessThan(amountEpsilon) && sameDay(entry.Date, transaction.Date)
}

// entryAmount sums the entry's credit column for credit transactions and
// its debit column otherwise.
func entryAmount(entry models.JournalEntry, transactionType string) decimal.Decimal {
	total := decimal.Zero
	for _, line := range entry.Lines {
		if transactionType == models.BankTxCredit {
			total = total.Add(line.Credit)
		} else {
			total = total.Add(line.Debit)
		}
	}
	return total
}

// confidence scores an accepted match: 50 for the amount, 30 for the date
// (both guaranteed for a candidate), plus up to 20 for shared description
// words, capped at 100.
func confidence(transaction models.BankTransaction, entry models.JournalEntry) decimal.Decimal {
	score := decimal.NewFromInt(80)
	score = score.Add(descriptionScore(transaction.Description, entry.Description))
	return decimal.Min(score, ManualMatchConfidence)
}

// descriptionScore is 20 times the fraction of transaction description
// words also present in the entry description, case-insensitively, relative
// to the longer word list.
func descriptionScore(a, b string) decimal.Decimal {
	wordsA := strings.Fields(strings.ToLower(a))
	wordsB := strings.Fields(strings.ToLower(b))
	longest := len(wordsA)
	if len(wordsB) > longest {
		longest = len(wordsB)
	}
	if longest == 0 {
		return decimal.Zero
	}
	present := make(map[string]bool, len(wordsB))
	for _, word := range wordsB {
		present[word] = true
	}
	shared := 0
	for _, word := range wordsA {
		if present[word] {
			shared++
		}
	}
	return decimal.NewFromInt(int64(shared)).
		Div(decimal.NewFromInt(int64(longest))).
		Mul(decimal.NewFromInt(20))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
