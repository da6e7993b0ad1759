package store

import (
	"context"

	"comptable/internal/models"
)

type AccountStore struct {
	db DB
}

func NewAccountStore(db DB) *AccountStore {
	return &AccountStore{db: db}
}

// Upsert inserts the account or, when the (code, owner) pair already exists,
// updates its label and metadata.
func (s *AccountStore) Upsert(ctx context.Context, tx Execer, account models.Account) error {
	query := `
		INSERT INTO accounts (id, code, label, category, normal_balance, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (code, owner_id) DO UPDATE
		SET label = EXCLUDED.label,
		    category = EXCLUDED.category,
		    normal_balance = EXCLUDED.normal_balance,
		    updated_at = NOW()
	`
	_, err := tx.ExecContext(ctx, query, account.ID, account.Code, account.Label, account.Category, account.NormalBalance, account.OwnerID)
	return err
}

// AccountsByOwner returns the owner's flat chart ordered by code. It
// satisfies ledger.AccountLister.
func (s *AccountStore) AccountsByOwner(ctx context.Context, ownerID string) ([]models.Account, error) {
	var rows []models.Account
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, code, label, category, normal_balance, owner_id, created_at
		FROM accounts
		WHERE owner_id = $1
		ORDER BY code ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *AccountStore) GetByCode(ctx context.Context, ownerID, code string) (models.Account, error) {
	var row models.Account
	err := s.db.GetContext(ctx, &row, `
		SELECT id, code, label, category, normal_balance, owner_id, created_at
		FROM accounts
		WHERE owner_id = $1 AND code = $2
	`, ownerID, code)
	if err != nil {
		return models.Account{}, err
	}
	return row, nil
}
