package store

import (
	"context"
	"time"

	"comptable/internal/models"
)

type JournalStore struct {
	db DB
}

func NewJournalStore(db DB) *JournalStore {
	return &JournalStore{db: db}
}

// CreateEntry persists a validated entry and its lines as one logical unit.
// Callers run it inside a transaction so the write is all-or-nothing.
func (s *JournalStore) CreateEntry(ctx context.Context, tx Execer, entry models.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (id, date, reference, description, journal_type, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := tx.ExecContext(ctx, query, entry.ID, entry.Date, entry.Reference, entry.Description, entry.JournalType, entry.OwnerID); err != nil {
		return err
	}
	lineQuery := `
		INSERT INTO journal_lines (id, entry_id, account_code, label, debit, credit)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, line := range entry.Lines {
		if _, err := tx.ExecContext(ctx, lineQuery, line.ID, line.EntryID, line.AccountCode, line.Label, line.Debit, line.Credit); err != nil {
			return err
		}
	}
	return nil
}

func (s *JournalStore) ListByType(ctx context.Context, ownerID, journalType string) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	err := s.db.SelectContext(ctx, &entries, `
		SELECT id, date, reference, description, journal_type, owner_id, created_at
		FROM journal_entries
		WHERE owner_id = $1 AND journal_type = $2
		ORDER BY date DESC
	`, ownerID, journalType)
	if err != nil {
		return nil, err
	}
	return s.attachLines(ctx, ownerID, entries)
}

// ListWithLines returns every entry of the owner with its lines, newest
// first. The reconciliation run consumes this.
func (s *JournalStore) ListWithLines(ctx context.Context, ownerID string) ([]models.JournalEntry, error) {
	var entries []models.JournalEntry
	err := s.db.SelectContext(ctx, &entries, `
		SELECT id, date, reference, description, journal_type, owner_id, created_at
		FROM journal_entries
		WHERE owner_id = $1
		ORDER BY date DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return s.attachLines(ctx, ownerID, entries)
}

func (s *JournalStore) GetEntry(ctx context.Context, ownerID, entryID string) (models.JournalEntry, error) {
	var entry models.JournalEntry
	err := s.db.GetContext(ctx, &entry, `
		SELECT id, date, reference, description, journal_type, owner_id, created_at
		FROM journal_entries
		WHERE owner_id = $1 AND id = $2
	`, ownerID, entryID)
	if err != nil {
		return models.JournalEntry{}, err
	}
	var lines []models.JournalLine
	err = s.db.SelectContext(ctx, &lines, `
		SELECT id, entry_id, account_code, label, debit, credit
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY id ASC
	`, entryID)
	if err != nil {
		return models.JournalEntry{}, err
	}
	entry.Lines = lines
	return entry, nil
}

// LinesByPrefix implements ledger.LineSource: every line of the owner whose
// entry date falls in the inclusive range and whose account code starts
// with the prefix.
func (s *JournalStore) LinesByPrefix(ctx context.Context, ownerID, codePrefix string, from, to time.Time) ([]models.LedgerLine, error) {
	var rows []models.LedgerLine
	err := s.db.SelectContext(ctx, &rows, `
		SELECT jl.account_code, jl.debit, jl.credit, je.date AS entry_date
		FROM journal_lines jl
		JOIN journal_entries je ON je.id = jl.entry_id
		WHERE je.owner_id = $1
		  AND je.date BETWEEN $2 AND $3
		  AND jl.account_code LIKE $4
	`, ownerID, from, to, codePrefix+"%")
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// attachLines loads every line belonging to the owner's entries in one query
// and groups them in memory.
func (s *JournalStore) attachLines(ctx context.Context, ownerID string, entries []models.JournalEntry) ([]models.JournalEntry, error) {
	if len(entries) == 0 {
		return entries, nil
	}
	var lines []models.JournalLine
	err := s.db.SelectContext(ctx, &lines, `
		SELECT jl.id, jl.entry_id, jl.account_code, jl.label, jl.debit, jl.credit
		FROM journal_lines jl
		JOIN journal_entries je ON je.id = jl.entry_id
		WHERE je.owner_id = $1
		ORDER BY jl.id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	byEntry := make(map[string][]models.JournalLine, len(entries))
	for _, line := range lines {
		byEntry[line.EntryID] = append(byEntry[line.EntryID], line)
	}
	for i := range entries {
		entries[i].Lines = byEntry[entries[i].ID]
	}
	return entries, nil
}
