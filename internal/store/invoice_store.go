package store

import (
	"context"

	"comptable/internal/models"
)

type InvoiceStore struct {
	db DB
}

func NewInvoiceStore(db DB) *InvoiceStore {
	return &InvoiceStore{db: db}
}

func (s *InvoiceStore) Create(ctx context.Context, tx Execer, invoice models.Invoice) error {
	query := `
		INSERT INTO invoices (id, type, number, date, due_date, client_name, client_email, items, subtotal, tax_total, total, status, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	_, err := tx.ExecContext(ctx, query, invoice.ID, invoice.Type, invoice.Number, invoice.Date, invoice.DueDate,
		invoice.ClientName, invoice.ClientEmail, invoice.Items, invoice.Subtotal, invoice.TaxTotal, invoice.Total,
		invoice.Status, invoice.OwnerID)
	return err
}

// CountByType is read inside the creation transaction to derive the next
// sequential invoice number for the owner.
func (s *InvoiceStore) CountByType(ctx context.Context, tx Getter, ownerID, invoiceType string) (int64, error) {
	var count int64
	err := tx.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM invoices
		WHERE owner_id = $1 AND type = $2
	`, ownerID, invoiceType)
	return count, err
}

func (s *InvoiceStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Invoice, error) {
	var rows []models.Invoice
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, type, number, date, due_date, client_name, client_email, items, subtotal, tax_total, total, status, owner_id, created_at
		FROM invoices
		WHERE owner_id = $1
		ORDER BY date DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *InvoiceStore) GetByID(ctx context.Context, ownerID, id string) (models.Invoice, error) {
	var row models.Invoice
	err := s.db.GetContext(ctx, &row, `
		SELECT id, type, number, date, due_date, client_name, client_email, items, subtotal, tax_total, total, status, owner_id, created_at
		FROM invoices
		WHERE owner_id = $1 AND id = $2
	`, ownerID, id)
	if err != nil {
		return models.Invoice{}, err
	}
	return row, nil
}

func (s *InvoiceStore) UpdateStatus(ctx context.Context, tx Execer, ownerID, id, status string) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		UPDATE invoices
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND owner_id = $3
	`, status, id, ownerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (s *InvoiceStore) Delete(ctx context.Context, tx Execer, ownerID, id string) (int64, error) {
	res, err := tx.ExecContext(ctx, `
		DELETE FROM invoices
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
