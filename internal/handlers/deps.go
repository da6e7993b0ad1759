package handlers

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"comptable/internal/ledger"
	"comptable/internal/models"
	"comptable/internal/services"
	"comptable/internal/store"
)

type UserStore interface {
	Create(ctx context.Context, tx store.Execer, id, email, name, passwordHash, role string) error
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, userID string) (models.User, error)
	UpdateProfile(ctx context.Context, tx store.Execer, userID, name string, preferences *string) error
	UpdatePassword(ctx context.Context, tx store.Execer, userID, passwordHash string) error
	ListAll(ctx context.Context, limit, offset int) ([]models.User, error)
}

type AccountStore interface {
	Upsert(ctx context.Context, tx store.Execer, account models.Account) error
	AccountsByOwner(ctx context.Context, ownerID string) ([]models.Account, error)
	GetByCode(ctx context.Context, ownerID, code string) (models.Account, error)
}

type JournalStore interface {
	ListByType(ctx context.Context, ownerID, journalType string) ([]models.JournalEntry, error)
	GetEntry(ctx context.Context, ownerID, entryID string) (models.JournalEntry, error)
}

type TransactionStore interface {
	Create(ctx context.Context, tx store.Execer, transaction models.Transaction) error
	ListByOwner(ctx context.Context, ownerID string) ([]models.Transaction, error)
	GetByID(ctx context.Context, ownerID, id string) (models.Transaction, error)
	Update(ctx context.Context, tx store.Execer, transaction models.Transaction) (int64, error)
	Delete(ctx context.Context, tx store.Execer, ownerID, id string) (int64, error)
}

type BankTxStore interface {
	ListByOwner(ctx context.Context, ownerID string) ([]models.BankTransaction, error)
	ListMatches(ctx context.Context, ownerID string) ([]models.ReconciliationMatch, error)
}

type InvoiceStore interface {
	Create(ctx context.Context, tx store.Execer, invoice models.Invoice) error
	CountByType(ctx context.Context, tx store.Getter, ownerID, invoiceType string) (int64, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Invoice, error)
	GetByID(ctx context.Context, ownerID, id string) (models.Invoice, error)
	UpdateStatus(ctx context.Context, tx store.Execer, ownerID, id, status string) (int64, error)
	Delete(ctx context.Context, tx store.Execer, ownerID, id string) (int64, error)
}

type JournalService interface {
	Record(ctx context.Context, req services.RecordEntryRequest) (models.JournalEntry, error)
}

type ReconciliationService interface {
	Import(ctx context.Context, ownerID string, transactions []models.BankTransaction) ([]models.BankTransaction, error)
	Run(ctx context.Context, ownerID string) (services.ReconciliationResult, error)
	Confirm(ctx context.Context, ownerID, bankTransactionID, entryID string) error
	Unmatch(ctx context.Context, ownerID, bankTransactionID string) error
}

type BalanceSource interface {
	AccountBalance(ctx context.Context, codePrefix, ownerID string, from, to time.Time) (decimal.Decimal, error)
}

type StatementSource interface {
	BalanceSheet(ctx context.Context, ownerID string, from, to time.Time) (ledger.BalanceSheet, error)
	IncomeStatement(ctx context.Context, ownerID string, from, to time.Time) (ledger.IncomeStatement, error)
}
