package services

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"comptable/internal/db"
	"comptable/internal/ledger"
	"comptable/internal/models"
	"comptable/internal/store"
	"comptable/internal/websocket"
)

type JournalWriter interface {
	CreateEntry(ctx context.Context, tx store.Execer, entry models.JournalEntry) error
}

type EventHub interface {
	Broadcast(userID string, event websocket.Event)
}

// JournalService records validated journal entries atomically: the entry and
// all of its lines land in one transaction or not at all.
type JournalService struct {
	txRunner db.TxRunner
	journals JournalWriter
	hub      EventHub
}

func NewJournalService(txRunner db.TxRunner, journals JournalWriter, hub EventHub) *JournalService {
	return &JournalService{
		txRunner: txRunner,
		journals: journals,
		hub:      hub,
	}
}

type RecordEntryRequest struct {
	OwnerID     string
	Date        time.Time
	Reference   string
	Description string
	JournalType string
	Lines       []models.JournalLine
}

func (s *JournalService) Record(ctx context.Context, req RecordEntryRequest) (models.JournalEntry, error) {
	entry, err := ledger.NewEntry(req.Date, req.Reference, req.Description, req.JournalType, req.OwnerID, req.Lines)
	if err != nil {
		return models.JournalEntry{}, err
	}
	err = s.txRunner.WithTx(ctx, func(tx *sqlx.Tx) error {
		return s.journals.CreateEntry(ctx, tx, entry)
	})
	if err != nil {
		return models.JournalEntry{}, err
	}
	s.hub.Broadcast(req.OwnerID, websocket.Event{
		Type: "journal_entry_created",
		Payload: map[string]string{
			"entry_id":     entry.ID,
			"journal_type": entry.JournalType,
		},
	})
	return entry, nil
}
