package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"comptable/internal/models"
)

// LineSource yields every journal line whose parent entry belongs to the
// owner, whose entry date falls in the inclusive range and whose account
// code starts with the given prefix. The store layer provides the SQL
// implementation; tests supply in-memory ones.
type LineSource interface {
	LinesByPrefix(ctx context.Context, ownerID, codePrefix string, from, to time.Time) ([]models.LedgerLine, error)
}

// Aggregator computes natural, debit-positive account balances over the
// ledger. Balances are recomputed on every call; ledger volumes here are
// small enough that no caching is warranted.
type Aggregator struct {
	lines LineSource
}

func NewAggregator(lines LineSource) *Aggregator {
	return &Aggregator{lines: lines}
}

// AccountBalance returns the sum of (debit - credit) over every ledger line
// under the code prefix for the owner and period. A prefix of "2" therefore
// aggregates every account and subaccount of class 2 transitively.
func (a *Aggregator) AccountBalance(ctx context.Context, codePrefix, ownerID string, from, to time.Time) (decimal.Decimal, error) {
	lines, err := a.lines.LinesByPrefix(ctx, ownerID, codePrefix, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	balance := decimal.Zero
	for _, line := range lines {
		balance = balance.Add(line.Debit.Sub(line.Credit))
	}
	return balance, nil
}
