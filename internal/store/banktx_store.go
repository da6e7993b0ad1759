package store

import (
	"context"

	"comptable/internal/models"
)

type BankTxStore struct {
	db DB
}

func NewBankTxStore(db DB) *BankTxStore {
	return &BankTxStore{db: db}
}

func (s *BankTxStore) Insert(ctx context.Context, tx Execer, transactions []models.BankTransaction) error {
	query := `
		INSERT INTO bank_transactions (id, date, description, amount, type, status, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, transaction := range transactions {
		if _, err := tx.ExecContext(ctx, query, transaction.ID, transaction.Date, transaction.Description, transaction.Amount, transaction.Type, transaction.Status, transaction.OwnerID); err != nil {
			return err
		}
	}
	return nil
}

func (s *BankTxStore) ListByOwner(ctx context.Context, ownerID string) ([]models.BankTransaction, error) {
	var rows []models.BankTransaction
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, date, description, amount, type, status, matched_entry_id, owner_id
		FROM bank_transactions
		WHERE owner_id = $1
		ORDER BY date DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *BankTxStore) GetByID(ctx context.Context, ownerID, id string) (models.BankTransaction, error) {
	var row models.BankTransaction
	err := s.db.GetContext(ctx, &row, `
		SELECT id, date, description, amount, type, status, matched_entry_id, owner_id
		FROM bank_transactions
		WHERE owner_id = $1 AND id = $2
	`, ownerID, id)
	if err != nil {
		return models.BankTransaction{}, err
	}
	return row, nil
}

func (s *BankTxStore) UpdateStatus(ctx context.Context, tx Execer, id, status string, matchedEntryID *string) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE bank_transactions
		SET status = $1, matched_entry_id = $2
		WHERE id = $3
	`, status, matchedEntryID, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *BankTxStore) ListMatches(ctx context.Context, ownerID string) ([]models.ReconciliationMatch, error) {
	var rows []models.ReconciliationMatch
	err := s.db.SelectContext(ctx, &rows, `
		SELECT m.bank_transaction_id, m.journal_entry_id, m.confidence
		FROM reconciliation_matches m
		JOIN bank_transactions bt ON bt.id = m.bank_transaction_id
		WHERE bt.owner_id = $1
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpsertMatch keeps one match per transaction: confirming a new entry
// replaces the previous record.
func (s *BankTxStore) UpsertMatch(ctx context.Context, tx Execer, match models.ReconciliationMatch) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO reconciliation_matches (bank_transaction_id, journal_entry_id, confidence)
		VALUES ($1, $2, $3)
		ON CONFLICT (bank_transaction_id) DO UPDATE
		SET journal_entry_id = EXCLUDED.journal_entry_id,
		    confidence = EXCLUDED.confidence
	`, match.BankTransactionID, match.JournalEntryID, match.Confidence)
	return err
}

func (s *BankTxStore) DeleteMatch(ctx context.Context, tx Execer, bankTransactionID string) error {
	_, err := tx.ExecContext(ctx, `
		DELETE FROM reconciliation_matches
		WHERE bank_transaction_id = $1
	`, bankTransactionID)
	return err
}
