package handlers

import (
	"context"
	"time"

	"comptable/internal/config"
	"comptable/internal/ledger"
	"comptable/internal/models"
	"comptable/internal/services"
	"comptable/internal/store"
	"comptable/internal/websocket"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type fakeTxRunner struct {
	withTxFn func(ctx context.Context, fn func(*sqlx.Tx) error) error
}

func (f fakeTxRunner) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	if f.withTxFn != nil {
		return f.withTxFn(ctx, fn)
	}
	return fn(nil)
}

type stubUserStore struct {
	createFn         func(ctx context.Context, tx store.Execer, id, email, name, passwordHash, role string) error
	getByEmailFn     func(ctx context.Context, email string) (models.User, error)
	getByIDFn        func(ctx context.Context, userID string) (models.User, error)
	updateProfileFn  func(ctx context.Context, tx store.Execer, userID, name string, preferences *string) error
	updatePasswordFn func(ctx context.Context, tx store.Execer, userID, passwordHash string) error
	listAllFn        func(ctx context.Context, limit, offset int) ([]models.User, error)
}

func (s stubUserStore) Create(ctx context.Context, tx store.Execer, id, email, name, passwordHash, role string) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, id, email, name, passwordHash, role)
}

func (s stubUserStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	if s.getByEmailFn == nil {
		return models.User{}, nil
	}
	return s.getByEmailFn(ctx, email)
}

func (s stubUserStore) GetByID(ctx context.Context, userID string) (models.User, error) {
	if s.getByIDFn == nil {
		return models.User{}, nil
	}
	return s.getByIDFn(ctx, userID)
}

func (s stubUserStore) UpdateProfile(ctx context.Context, tx store.Execer, userID, name string, preferences *string) error {
	if s.updateProfileFn == nil {
		return nil
	}
	return s.updateProfileFn(ctx, tx, userID, name, preferences)
}

func (s stubUserStore) UpdatePassword(ctx context.Context, tx store.Execer, userID, passwordHash string) error {
	if s.updatePasswordFn == nil {
		return nil
	}
	return s.updatePasswordFn(ctx, tx, userID, passwordHash)
}

func (s stubUserStore) ListAll(ctx context.Context, limit, offset int) ([]models.User, error) {
	if s.listAllFn == nil {
		return nil, nil
	}
	return s.listAllFn(ctx, limit, offset)
}

type stubAccountStore struct {
	upsertFn          func(ctx context.Context, tx store.Execer, account models.Account) error
	accountsByOwnerFn func(ctx context.Context, ownerID string) ([]models.Account, error)
	getByCodeFn       func(ctx context.Context, ownerID, code string) (models.Account, error)
}

func (s stubAccountStore) Upsert(ctx context.Context, tx store.Execer, account models.Account) error {
	if s.upsertFn == nil {
		return nil
	}
	return s.upsertFn(ctx, tx, account)
}

func (s stubAccountStore) AccountsByOwner(ctx context.Context, ownerID string) ([]models.Account, error) {
	if s.accountsByOwnerFn == nil {
		return nil, nil
	}
	return s.accountsByOwnerFn(ctx, ownerID)
}

func (s stubAccountStore) GetByCode(ctx context.Context, ownerID, code string) (models.Account, error) {
	if s.getByCodeFn == nil {
		return models.Account{}, nil
	}
	return s.getByCodeFn(ctx, ownerID, code)
}

type stubJournalStore struct {
	listByTypeFn func(ctx context.Context, ownerID, journalType string) ([]models.JournalEntry, error)
	getEntryFn   func(ctx context.Context, ownerID, entryID string) (models.JournalEntry, error)
}

func (s stubJournalStore) ListByType(ctx context.Context, ownerID, journalType string) ([]models.JournalEntry, error) {
	if s.listByTypeFn == nil {
		return nil, nil
	}
	return s.listByTypeFn(ctx, ownerID, journalType)
}

func (s stubJournalStore) GetEntry(ctx context.Context, ownerID, entryID string) (models.JournalEntry, error) {
	if s.getEntryFn == nil {
		return models.JournalEntry{}, nil
	}
	return s.getEntryFn(ctx, ownerID, entryID)
}

type stubTransactionStore struct {
	createFn      func(ctx context.Context, tx store.Execer, transaction models.Transaction) error
	listByOwnerFn func(ctx context.Context, ownerID string) ([]models.Transaction, error)
	getByIDFn     func(ctx context.Context, ownerID, id string) (models.Transaction, error)
	updateFn      func(ctx context.Context, tx store.Execer, transaction models.Transaction) (int64, error)
	deleteFn      func(ctx context.Context, tx store.Execer, ownerID, id string) (int64, error)
}

func (s stubTransactionStore) Create(ctx context.Context, tx store.Execer, transaction models.Transaction) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, transaction)
}

func (s stubTransactionStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Transaction, error) {
	if s.listByOwnerFn == nil {
		return nil, nil
	}
	return s.listByOwnerFn(ctx, ownerID)
}

func (s stubTransactionStore) GetByID(ctx context.Context, ownerID, id string) (models.Transaction, error) {
	if s.getByIDFn == nil {
		return models.Transaction{}, nil
	}
	return s.getByIDFn(ctx, ownerID, id)
}

func (s stubTransactionStore) Update(ctx context.Context, tx store.Execer, transaction models.Transaction) (int64, error) {
	if s.updateFn == nil {
		return 1, nil
	}
	return s.updateFn(ctx, tx, transaction)
}

func (s stubTransactionStore) Delete(ctx context.Context, tx store.Execer, ownerID, id string) (int64, error) {
	if s.deleteFn == nil {
		return 1, nil
	}
	return s.deleteFn(ctx, tx, ownerID, id)
}

type stubBankTxStore struct {
	listByOwnerFn func(ctx context.Context, ownerID string) ([]models.BankTransaction, error)
	listMatchesFn func(ctx context.Context, ownerID string) ([]models.ReconciliationMatch, error)
}

func (s stubBankTxStore) ListByOwner(ctx context.Context, ownerID string) ([]models.BankTransaction, error) {
	if s.listByOwnerFn == nil {
		return nil, nil
	}
	return s.listByOwnerFn(ctx, ownerID)
}

func (s stubBankTxStore) ListMatches(ctx context.Context, ownerID string) ([]models.ReconciliationMatch, error) {
	if s.listMatchesFn == nil {
		return nil, nil
	}
	return s.listMatchesFn(ctx, ownerID)
}

type stubInvoiceStore struct {
	createFn       func(ctx context.Context, tx store.Execer, invoice models.Invoice) error
	countByTypeFn  func(ctx context.Context, tx store.Getter, ownerID, invoiceType string) (int64, error)
	listByOwnerFn  func(ctx context.Context, ownerID string) ([]models.Invoice, error)
	getByIDFn      func(ctx context.Context, ownerID, id string) (models.Invoice, error)
	updateStatusFn func(ctx context.Context, tx store.Execer, ownerID, id, status string) (int64, error)
	deleteFn       func(ctx context.Context, tx store.Execer, ownerID, id string) (int64, error)
}

func (s stubInvoiceStore) Create(ctx context.Context, tx store.Execer, invoice models.Invoice) error {
	if s.createFn == nil {
		return nil
	}
	return s.createFn(ctx, tx, invoice)
}

func (s stubInvoiceStore) CountByType(ctx context.Context, tx store.Getter, ownerID, invoiceType string) (int64, error) {
	if s.countByTypeFn == nil {
		return 0, nil
	}
	return s.countByTypeFn(ctx, tx, ownerID, invoiceType)
}

func (s stubInvoiceStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Invoice, error) {
	if s.listByOwnerFn == nil {
		return nil, nil
	}
	return s.listByOwnerFn(ctx, ownerID)
}

func (s stubInvoiceStore) GetByID(ctx context.Context, ownerID, id string) (models.Invoice, error) {
	if s.getByIDFn == nil {
		return models.Invoice{}, nil
	}
	return s.getByIDFn(ctx, ownerID, id)
}

func (s stubInvoiceStore) UpdateStatus(ctx context.Context, tx store.Execer, ownerID, id, status string) (int64, error) {
	if s.updateStatusFn == nil {
		return 1, nil
	}
	return s.updateStatusFn(ctx, tx, ownerID, id, status)
}

func (s stubInvoiceStore) Delete(ctx context.Context, tx store.Execer, ownerID, id string) (int64, error) {
	if s.deleteFn == nil {
		return 1, nil
	}
	return s.deleteFn(ctx, tx, ownerID, id)
}

type stubJournalService struct {
	recordFn func(ctx context.Context, req services.RecordEntryRequest) (models.JournalEntry, error)
}

func (s stubJournalService) Record(ctx context.Context, req services.RecordEntryRequest) (models.JournalEntry, error) {
	if s.recordFn == nil {
		return models.JournalEntry{}, nil
	}
	return s.recordFn(ctx, req)
}

type stubReconciliationService struct {
	importFn  func(ctx context.Context, ownerID string, transactions []models.BankTransaction) ([]models.BankTransaction, error)
	runFn     func(ctx context.Context, ownerID string) (services.ReconciliationResult, error)
	confirmFn func(ctx context.Context, ownerID, bankTransactionID, entryID string) error
	unmatchFn func(ctx context.Context, ownerID, bankTransactionID string) error
}

func (s stubReconciliationService) Import(ctx context.Context, ownerID string, transactions []models.BankTransaction) ([]models.BankTransaction, error) {
	if s.importFn == nil {
		return transactions, nil
	}
	return s.importFn(ctx, ownerID, transactions)
}

func (s stubReconciliationService) Run(ctx context.Context, ownerID string) (services.ReconciliationResult, error) {
	if s.runFn == nil {
		return services.ReconciliationResult{}, nil
	}
	return s.runFn(ctx, ownerID)
}

func (s stubReconciliationService) Confirm(ctx context.Context, ownerID, bankTransactionID, entryID string) error {
	if s.confirmFn == nil {
		return nil
	}
	return s.confirmFn(ctx, ownerID, bankTransactionID, entryID)
}

func (s stubReconciliationService) Unmatch(ctx context.Context, ownerID, bankTransactionID string) error {
	if s.unmatchFn == nil {
		return nil
	}
	return s.unmatchFn(ctx, ownerID, bankTransactionID)
}

type stubBalanceSource struct {
	balanceFn func(ctx context.Context, codePrefix, ownerID string, from, to time.Time) (decimal.Decimal, error)
}

func (s stubBalanceSource) AccountBalance(ctx context.Context, codePrefix, ownerID string, from, to time.Time) (decimal.Decimal, error) {
	if s.balanceFn == nil {
		return decimal.Zero, nil
	}
	return s.balanceFn(ctx, codePrefix, ownerID, from, to)
}

type stubStatementSource struct {
	balanceSheetFn    func(ctx context.Context, ownerID string, from, to time.Time) (ledger.BalanceSheet, error)
	incomeStatementFn func(ctx context.Context, ownerID string, from, to time.Time) (ledger.IncomeStatement, error)
}

func (s stubStatementSource) BalanceSheet(ctx context.Context, ownerID string, from, to time.Time) (ledger.BalanceSheet, error) {
	if s.balanceSheetFn == nil {
		return ledger.BalanceSheet{}, nil
	}
	return s.balanceSheetFn(ctx, ownerID, from, to)
}

func (s stubStatementSource) IncomeStatement(ctx context.Context, ownerID string, from, to time.Time) (ledger.IncomeStatement, error) {
	if s.incomeStatementFn == nil {
		return ledger.IncomeStatement{}, nil
	}
	return s.incomeStatementFn(ctx, ownerID, from, to)
}

type stubRoleSource struct {
	roleOfFn func(ctx context.Context, userID string) (string, error)
}

func (s stubRoleSource) RoleOf(ctx context.Context, userID string) (string, error) {
	if s.roleOfFn == nil {
		return "USER", nil
	}
	return s.roleOfFn(ctx, userID)
}

type handlerDeps struct {
	txRunner     fakeTxRunner
	users        stubUserStore
	accounts     stubAccountStore
	journals     stubJournalStore
	transactions stubTransactionStore
	bankTxs      stubBankTxStore
	invoices     stubInvoiceStore
	balances     stubBalanceSource
	statements   stubStatementSource
	journalSvc   stubJournalService
	reconcileSvc stubReconciliationService
	roles        stubRoleSource
}

func newTestHandler(deps handlerDeps) *Handler {
	cfg := config.Config{
		AppEnv:         "test",
		Port:           "0",
		DatabaseURL:    "",
		JWTSecret:      "secret",
		TokenTTL:       time.Minute,
		AllowedOrigins: "*",
	}
	return New(deps.txRunner, cfg, deps.users, deps.accounts, deps.journals, deps.transactions, deps.bankTxs, deps.invoices, deps.balances, deps.statements, deps.journalSvc, deps.reconcileSvc, deps.roles, websocket.NewHub())
}
