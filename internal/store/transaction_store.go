package store

import (
	"context"

	"comptable/internal/models"
)

type TransactionStore struct {
	db DB
}

func NewTransactionStore(db DB) *TransactionStore {
	return &TransactionStore{db: db}
}

func (s *TransactionStore) Create(ctx context.Context, tx Execer, transaction models.Transaction) error {
	query := `
		INSERT INTO transactions (id, date, description, amount, type, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := tx.ExecContext(ctx, query, transaction.ID, transaction.Date, transaction.Description, transaction.Amount, transaction.Type, transaction.OwnerID)
	return err
}

func (s *TransactionStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	var rows []models.Transaction
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, date, description, amount, type, owner_id, created_at
		FROM transactions
		WHERE owner_id = $1
		ORDER BY date DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *TransactionStore) GetByID(ctx context.Context, ownerID, id string) (models.Transaction, error) {
	var row models.Transaction
	err := s.db.GetContext(ctx, &row, `
		SELECT id, date, description, amount, type, owner_id, created_at
		FROM transactions
		WHERE owner_id = $1 AND id = $2
	`, ownerID, id)
	if err != nil {
		return models.Transaction{}, err
	}
	return row, nil
}

// Update rewrites the mutable columns and reports how many rows matched so
// callers can distinguish not-found from success.
func (s *TransactionStore) Update(ctx context.Context, tx Execer, transaction models.Transaction) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE transactions
		SET date = $1, description = $2, amount = $3, type = $4, updated_at = NOW()
		WHERE id = $5 AND owner_id = $6
	`, transaction.Date, transaction.Description, transaction.Amount, transaction.Type, transaction.ID, transaction.OwnerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *TransactionStore) Delete(ctx context.Context, tx Execer, ownerID, id string) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		DELETE FROM transactions
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
