package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"comptable/internal/db"
	"comptable/internal/ledger"
	"comptable/internal/models"
	"comptable/internal/reconcile"
	"comptable/internal/store"
	"comptable/internal/websocket"
)

type BankTxRepository interface {
	Insert(ctx context.Context, tx store.Execer, transactions []models.BankTransaction) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.BankTransaction, error)
	GetByID(ctx context.Context, ownerID, id string) (models.BankTransaction, error)
	UpdateStatus(ctx context.Context, tx store.Execer, id, status string, matchedEntryID *string) (int64, error)
	UpsertMatch(ctx context.Context, tx store.Execer, match models.ReconciliationMatch) error
	DeleteMatch(ctx context.Context, tx store.Execer, bankTransactionID string) error
}

type JournalReader interface {
	ListWithLines(ctx context.Context, ownerID string) ([]models.JournalEntry, error)
	GetEntry(ctx context.Context, ownerID, entryID string) (models.JournalEntry, error)
}

// ReconciliationService imports bank statements, runs the matcher over the
// owner's pending transactions and persists the outcome in one transaction.
type ReconciliationService struct {
	txRunner db.TxRunner
	bankTxs  BankTxRepository
	journals JournalReader
	hub      EventHub
}

func NewReconciliationService(txRunner db.TxRunner, bankTxs BankTxRepository, journals JournalReader, hub EventHub) *ReconciliationService {
	return &ReconciliationService{
		txRunner: txRunner,
		bankTxs:  bankTxs,
		journals: journals,
		hub:      hub,
	}
}

// Import stores freshly parsed statement rows as pending transactions.
func (s *ReconciliationService) Import(ctx context.Context, ownerID string, transactions []models.BankTransaction) ([]models.BankTransaction, error) {
	prepared := make([]models.BankTransaction, len(transactions))
	for i, transaction := range transactions {
		transaction.ID = uuid.NewString()
		transaction.Status = models.StatusPending
		transaction.MatchedEntryID = nil
		transaction.OwnerID = ownerID
		prepared[i] = transaction
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.bankTxs.Insert(ctx, tx, prepared)
	})
	if err != nil {
		return nil, err
	}
	return prepared, nil
}

type ReconciliationResult struct {
	Transactions []models.BankTransaction     `json:"transactions"`
	Matches      []models.ReconciliationMatch `json:"matches"`
}

// Run matches the owner's pending transactions against their journal and
// persists every status change and match atomically.
func (s *ReconciliationService) Run(ctx context.Context, ownerID string) (ReconciliationResult, error) {
	transactions, err := s.bankTxs.ListByOwner(ctx, ownerID)
	if err != nil {
		return ReconciliationResult{}, err
	}
	entries, err := s.journals.ListWithLines(ctx, ownerID)
	if err != nil {
		return ReconciliationResult{}, err
	}
	updated, matches := reconcile.FindMatches(transactions, entries)

	matchByTx := make(map[string]models.ReconciliationMatch, len(matches))
	for _, match := range matches {
		matchByTx[match.BankTransactionID] = match
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		for i, transaction := range updated {
			if transaction.Status == transactions[i].Status {
				continue
			}
			if _, err := s.bankTxs.UpdateStatus(ctx, tx, transaction.ID, transaction.Status, transaction.MatchedEntryID); err != nil {
				return err
			}
			if match, ok := matchByTx[transaction.ID]; ok {
				if err := s.bankTxs.UpsertMatch(ctx, tx, match); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return ReconciliationResult{}, err
	}
	s.hub.Broadcast(ownerID, websocket.Event{
		Type: "reconciliation_completed",
		Payload: map[string]int{
			"matched": len(matches),
			"total":   len(updated),
		},
	})
	return ReconciliationResult{Transactions: updated, Matches: matches}, nil
}

// Confirm records a manual match between a bank transaction and a journal
// entry. Both must belong to the owner; a manual match always has full
// confidence.
func (s *ReconciliationService) Confirm(ctx context.Context, ownerID, bankTransactionID, entryID string) error {
	if _, err := s.bankTxs.GetByID(ctx, ownerID, bankTransactionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &ledger.NotFoundError{Kind: "bank transaction", Key: bankTransactionID}
		}
		return err
	}
	if _, err := s.journals.GetEntry(ctx, ownerID, entryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &ledger.NotFoundError{Kind: "journal entry", Key: entryID}
		}
		return err
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := s.bankTxs.UpdateStatus(ctx, tx, bankTransactionID, models.StatusMatched, &entryID); err != nil {
			return err
		}
		return s.bankTxs.UpsertMatch(ctx, tx, models.ReconciliationMatch{
			BankTransactionID: bankTransactionID,
			JournalEntryID:    entryID,
			Confidence:        reconcile.ManualMatchConfidence,
		})
	})
	if err != nil {
		return err
	}
	s.hub.Broadcast(ownerID, websocket.Event{
		Type: "match_confirmed",
		Payload: map[string]string{
			"bank_transaction_id": bankTransactionID,
			"journal_entry_id":    entryID,
		},
	})
	return nil
}

// Unmatch reverts a transaction to unmatched and removes its match record.
// It does not rejoin the pending pool: a transaction a user explicitly
// unlinked is not offered to the matcher again.
func (s *ReconciliationService) Unmatch(ctx context.Context, ownerID, bankTransactionID string) error {
	if _, err := s.bankTxs.GetByID(ctx, ownerID, bankTransactionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &ledger.NotFoundError{Kind: "bank transaction", Key: bankTransactionID}
		}
		return err
	}
	err := s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := s.bankTxs.UpdateStatus(ctx, tx, bankTransactionID, models.StatusUnmatched, nil); err != nil {
			return err
		}
		return s.bankTxs.DeleteMatch(ctx, tx, bankTransactionID)
	})
	if err != nil {
		return err
	}
	s.hub.Broadcast(ownerID, websocket.Event{
		Type: "match_removed",
		Payload: map[string]string{
			"bank_transaction_id": bankTransactionID,
		},
	})
	return nil
}
