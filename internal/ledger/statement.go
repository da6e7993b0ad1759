package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"comptable/internal/models"
)

// Class is an OHADA account class, the leading digit of an account code.
type Class int

const (
	ClassEquity      Class = 1
	ClassFixedAssets Class = 2
	ClassStocks      Class = 3
	ClassThirdParty  Class = 4
	ClassTreasury    Class = 5
	ClassExpenses    Class = 6
	ClassRevenues    Class = 7
)

// Bucket is a financial-statement grouping.
type Bucket int

const (
	BucketNone Bucket = iota
	BucketAssets
	BucketLiabilities
	BucketEquity
	BucketExpenses
	BucketRevenues
)

// classBuckets is the single point of configuration for statement bucketing.
// Classes 4 and 5 are ambiguous in practice (receivables vs payables mix in
// class 4, overdrafts in class 5); this table follows the convention of
// listing third-party accounts under assets and treasury under liabilities.
var classBuckets = map[Class]Bucket{
	ClassEquity:      BucketEquity,
	ClassFixedAssets: BucketAssets,
	ClassStocks:      BucketAssets,
	ClassThirdParty:  BucketAssets,
	ClassTreasury:    BucketLiabilities,
	ClassExpenses:    BucketExpenses,
	ClassRevenues:    BucketRevenues,
}

// ClassOf returns the class of an account code, or false when the code does
// not start with a digit in 1..7.
func ClassOf(code string) (Class, bool) {
	if code == "" {
		return 0, false
	}
	digit := int(code[0] - '0')
	if digit < 1 || digit > 7 {
		return 0, false
	}
	return Class(digit), true
}

// StatementAccount is one reported line of a statement.
type StatementAccount struct {
	Code    string          `json:"code"`
	Label   string          `json:"label"`
	Balance decimal.Decimal `json:"balance"`
}

type BalanceSheet struct {
	Assets           []StatementAccount `json:"assets"`
	Liabilities      []StatementAccount `json:"liabilities"`
	Equity           []StatementAccount `json:"equity"`
	TotalAssets      decimal.Decimal    `json:"total_assets"`
	TotalLiabilities decimal.Decimal    `json:"total_liabilities"`
	TotalEquity      decimal.Decimal    `json:"total_equity"`
}

type IncomeStatement struct {
	Revenues      []StatementAccount `json:"revenues"`
	Expenses      []StatementAccount `json:"expenses"`
	TotalRevenues decimal.Decimal    `json:"total_revenues"`
	TotalExpenses decimal.Decimal    `json:"total_expenses"`
	NetIncome     decimal.Decimal    `json:"net_income"`
}

// AccountLister returns the owner's flat chart of accounts.
type AccountLister interface {
	AccountsByOwner(ctx context.Context, ownerID string) ([]models.Account, error)
}

// StatementBuilder derives financial statements from the chart of accounts
// and the ledger aggregator. Only account-level codes (two digits) are
// listed; their subaccount activity is already captured because the
// aggregator matches by code prefix.
type StatementBuilder struct {
	accounts AccountLister
	agg      *Aggregator
}

func NewStatementBuilder(accounts AccountLister, agg *Aggregator) *StatementBuilder {
	return &StatementBuilder{accounts: accounts, agg: agg}
}

func (b *StatementBuilder) BalanceSheet(ctx context.Context, ownerID string, from, to time.Time) (BalanceSheet, error) {
	sheet := BalanceSheet{
		Assets:           []StatementAccount{},
		Liabilities:      []StatementAccount{},
		Equity:           []StatementAccount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	err := b.walk(ctx, ownerID, from, to, func(bucket Bucket, account StatementAccount) {
		switch bucket {
		case BucketAssets:
			sheet.Assets = append(sheet.Assets, account)
			sheet.TotalAssets = sheet.TotalAssets.Add(account.Balance)
		case BucketLiabilities:
			sheet.Liabilities = append(sheet.Liabilities, account)
			sheet.TotalLiabilities = sheet.TotalLiabilities.Add(account.Balance)
		case BucketEquity:
			sheet.Equity = append(sheet.Equity, account)
			sheet.TotalEquity = sheet.TotalEquity.Add(account.Balance)
		}
	})
	if err != nil {
		return BalanceSheet{}, err
	}
	return sheet, nil
}

func (b *StatementBuilder) IncomeStatement(ctx context.Context, ownerID string, from, to time.Time) (IncomeStatement, error) {
	statement := IncomeStatement{
		Revenues:      []StatementAccount{},
		Expenses:      []StatementAccount{},
		TotalRevenues: decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	err := b.walk(ctx, ownerID, from, to, func(bucket Bucket, account StatementAccount) {
		switch bucket {
		case BucketRevenues:
			statement.Revenues = append(statement.Revenues, account)
			statement.TotalRevenues = statement.TotalRevenues.Add(account.Balance)
		case BucketExpenses:
			statement.Expenses = append(statement.Expenses, account)
			statement.TotalExpenses = statement.TotalExpenses.Add(account.Balance)
		}
	})
	if err != nil {
		return IncomeStatement{}, err
	}
	statement.NetIncome = statement.TotalRevenues.Sub(statement.TotalExpenses)
	return statement, nil
}

// walk aggregates every account-level code of the owner's chart, using the
// account's own code as the prefix, and hands each balance to the visitor
// with its bucket.
func (b *StatementBuilder) walk(ctx context.Context, ownerID string, from, to time.Time, visit func(Bucket, StatementAccount)) error {
	accounts, err := b.accounts.AccountsByOwner(ctx, ownerID)
	if err != nil {
		return err
	}
	for _, account := range accounts {
		if Level(account.Code) != LevelAccount {
			continue
		}
		class, ok := ClassOf(account.Code)
		if !ok {
			continue
		}
		bucket := classBuckets[class]
		if bucket == BucketNone {
			continue
		}
		balance, err := b.agg.AccountBalance(ctx, account.Code, ownerID, from, to)
		if err != nil {
			return err
		}
		visit(bucket, StatementAccount{Code: account.Code, Label: account.Label, Balance: balance})
	}
	return nil
}
