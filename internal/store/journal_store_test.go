package store

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"comptable/internal/models"
)

func TestJournalStoreCreateEntry(t *testing.T) {
	ctx := context.Background()
	var inserts []string
	execer := stubExecer{
		execFn: func(_ context.Context, query string, args ...any) (sql.Result, error) {
			inserts = append(inserts, query)
			return stubResult{rows: 1}, nil
		},
	}
	store := NewJournalStore(stubDB{})
	entry := models.JournalEntry{
		ID:          "entry-1",
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Reference:   "FA-001",
		Description: "Achat",
		JournalType: models.JournalPurchases,
		OwnerID:     "owner-1",
		Lines: []models.JournalLine{
			{ID: "line-1", EntryID: "entry-1", AccountCode: "601", Debit: decimal.NewFromInt(100)},
			{ID: "line-2", EntryID: "entry-1", AccountCode: "401", Credit: decimal.NewFromInt(100)},
		},
	}
	if err := store.CreateEntry(ctx, execer, entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inserts) != 3 {
		t.Fatalf("expected 3 inserts (entry + 2 lines), got %d", len(inserts))
	}
	if !strings.Contains(inserts[0], "INSERT INTO journal_entries") {
		t.Fatalf("unexpected first insert: %s", inserts[0])
	}
	if !strings.Contains(inserts[1], "INSERT INTO journal_lines") {
		t.Fatalf("unexpected line insert: %s", inserts[1])
	}
}

func TestJournalStoreListByTypeAttachesLines(t *testing.T) {
	ctx := context.Background()
	store := NewJournalStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			switch d := dest.(type) {
			case *[]models.JournalEntry:
				if !strings.Contains(query, "WHERE owner_id = $1 AND journal_type = $2") {
					t.Fatalf("unexpected entry query: %s", query)
				}
				*d = []models.JournalEntry{{ID: "entry-1"}, {ID: "entry-2"}}
			case *[]models.JournalLine:
				*d = []models.JournalLine{
					{ID: "line-1", EntryID: "entry-1"},
					{ID: "line-2", EntryID: "entry-1"},
					{ID: "line-3", EntryID: "entry-2"},
				}
			default:
				t.Fatalf("unexpected dest type %T", dest)
			}
			return nil
		},
	})
	entries, err := store.ListByType(ctx, "owner-1", models.JournalSales)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("unexpected entries: %#v", entries)
	}
	if len(entries[0].Lines) != 2 || len(entries[1].Lines) != 1 {
		t.Fatalf("lines not grouped by entry: %#v", entries)
	}
}

func TestJournalStoreLinesByPrefix(t *testing.T) {
	ctx := context.Background()
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	store := NewJournalStore(stubDB{
		selectFn: func(_ context.Context, dest any, query string, args ...any) error {
			if !strings.Contains(query, "JOIN journal_entries je ON je.id = jl.entry_id") {
				t.Fatalf("unexpected query: %s", query)
			}
			if !strings.Contains(query, "jl.account_code LIKE $4") {
				t.Fatalf("prefix match missing: %s", query)
			}
			if len(args) != 4 || args[0] != "owner-1" || args[3] != "2%" {
				t.Fatalf("unexpected args: %#v", args)
			}
			*dest.(*[]models.LedgerLine) = []models.LedgerLine{{AccountCode: "211"}}
			return nil
		},
	})
	rows, err := store.LinesByPrefix(ctx, "owner-1", "2", from, to)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 || rows[0].AccountCode != "211" {
		t.Fatalf("unexpected rows: %#v", rows)
	}
}
