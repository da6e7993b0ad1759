package store

import (
	"context"

	"comptable/internal/models"
)

type UserStore struct {
	db DB
}

func NewUserStore(db DB) *UserStore {
	return &UserStore{db: db}
}

func (s *UserStore) Create(ctx context.Context, tx Execer, id, email, name, passwordHash, role string) error {
	query := `
		INSERT INTO users (id, email, name, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := tx.ExecContext(ctx, query, id, email, name, passwordHash, role)
	return err
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var row models.User
	err := s.db.GetContext(ctx, &row, `
		SELECT id, email, name, password_hash, role, preferences, created_at
		FROM users
		WHERE email = $1
	`, email)
	if err != nil {
		return models.User{}, err
	}
	return row, nil
}

func (s *UserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	var row models.User
	err := s.db.GetContext(ctx, &row, `
		SELECT id, email, name, password_hash, role, preferences, created_at
		FROM users
		WHERE id = $1
	`, userID)
	if err != nil {
		return models.User{}, err
	}
	return row, nil
}

func (s *UserStore) RoleOf(ctx context.Context, userID string) (string, error) {
	var role string
	err := s.db.GetContext(ctx, &role, `SELECT role FROM users WHERE id = $1`, userID)
	if err != nil {
		return "", err
	}
	return role, nil
}

func (s *UserStore) UpdateProfile(ctx context.Context, tx Execer, userID, name string, preferences *string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE users
		SET name = $1, preferences = $2, updated_at = NOW()
		WHERE id = $3
	`, name, preferences, userID)
	return err
}

func (s *UserStore) UpdatePassword(ctx context.Context, tx Execer, userID, passwordHash string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE users
		SET password_hash = $1, updated_at = NOW()
		WHERE id = $2
	`, passwordHash, userID)
	return err
}

func (s *UserStore) ListAll(ctx context.Context, limit, offset int) ([]models.User, error) {
	var rows []models.User
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, email, name, password_hash, role, preferences, created_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return rows, nil
}
