package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Name         string    `db:"name" json:"name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	Preferences  *string   `db:"preferences" json:"preferences,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Account is one row of the chart of accounts. The hierarchy level is
// derived from the code length: 1 digit = class, 2 digits = account,
// 3 or more = subaccount. Codes are unique per owner.
type Account struct {
	ID            string    `db:"id" json:"id,omitempty"`
	Code          string    `db:"code" json:"code"`
	Label         string    `db:"label" json:"label"`
	Category      *string   `db:"category" json:"category,omitempty"`
	NormalBalance *string   `db:"normal_balance" json:"normal_balance,omitempty"`
	OwnerID       string    `db:"owner_id" json:"-"`
	CreatedAt     time.Time `db:"created_at" json:"created_at,omitempty"`
	Children      []Account `db:"-" json:"children,omitempty"`
}

type JournalEntry struct {
	ID          string        `db:"id" json:"id"`
	Date        time.Time     `db:"date" json:"date"`
	Reference   string        `db:"reference" json:"reference"`
	Description string        `db:"description" json:"description"`
	JournalType string        `db:"journal_type" json:"journal_type"`
	OwnerID     string        `db:"owner_id" json:"-"`
	CreatedAt   time.Time     `db:"created_at" json:"created_at"`
	Lines       []JournalLine `db:"-" json:"lines"`
}

type JournalLine struct {
	ID          string          `db:"id" json:"id"`
	EntryID     string          `db:"entry_id" json:"entry_id"`
	AccountCode string          `db:"account_code" json:"account_code"`
	Label       string          `db:"label" json:"label"`
	Debit       decimal.Decimal `db:"debit" json:"debit"`
	Credit      decimal.Decimal `db:"credit" json:"credit"`
}

// LedgerLine is a journal line joined with its parent entry's date, the
// shape the balance aggregator consumes.
type LedgerLine struct {
	AccountCode string          `db:"account_code"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	EntryDate   time.Time       `db:"entry_date"`
}

// Transaction is a simple income/expense record, separate from the
// double-entry journal.
type Transaction struct {
	ID          string          `db:"id" json:"id"`
	Date        time.Time       `db:"date" json:"date"`
	Description string          `db:"description" json:"description"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	Type        string          `db:"type" json:"type"`
	OwnerID     string          `db:"owner_id" json:"-"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

type BankTransaction struct {
	ID             string          `db:"id" json:"id"`
	Date           time.Time       `db:"date" json:"date"`
	Description    string          `db:"description" json:"description"`
	Amount         decimal.Decimal `db:"amount" json:"amount"`
	Type           string          `db:"type" json:"type"`
	Status         string          `db:"status" json:"status"`
	MatchedEntryID *string         `db:"matched_entry_id" json:"matched_entry_id,omitempty"`
	OwnerID        string          `db:"owner_id" json:"-"`
}

type ReconciliationMatch struct {
	BankTransactionID string          `db:"bank_transaction_id" json:"bank_transaction_id"`
	JournalEntryID    string          `db:"journal_entry_id" json:"journal_entry_id"`
	Confidence        decimal.Decimal `db:"confidence" json:"confidence"`
}

type Invoice struct {
	ID          string          `db:"id" json:"id"`
	Type        string          `db:"type" json:"type"`
	Number      string          `db:"number" json:"number"`
	Date        time.Time       `db:"date" json:"date"`
	DueDate     time.Time       `db:"due_date" json:"due_date"`
	ClientName  string          `db:"client_name" json:"client_name"`
	ClientEmail string          `db:"client_email" json:"client_email"`
	Items       string          `db:"items" json:"-"`
	Subtotal    decimal.Decimal `db:"subtotal" json:"subtotal"`
	TaxTotal    decimal.Decimal `db:"tax_total" json:"tax_total"`
	Total       decimal.Decimal `db:"total" json:"total"`
	Status      string          `db:"status" json:"status"`
	OwnerID     string          `db:"owner_id" json:"-"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

type InvoiceItem struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	Total       decimal.Decimal `json:"total"`
}

const (
	JournalPurchases = "purchases"
	JournalSales     = "sales"
	JournalBank      = "bank"
	JournalCash      = "cash"
)

const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

const (
	BankTxCredit = "credit"
	BankTxDebit  = "debit"
)

const (
	StatusPending   = "pending"
	StatusMatched   = "matched"
	StatusUnmatched = "unmatched"
)

const (
	InvoiceSale     = "sale"
	InvoicePurchase = "purchase"
)
