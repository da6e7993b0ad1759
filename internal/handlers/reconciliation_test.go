package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"comptable/internal/ledger"
	"comptable/internal/models"
	"comptable/internal/services"
)

func TestImportBankTransactions(t *testing.T) {
	var imported []models.BankTransaction
	handler := newTestHandler(handlerDeps{
		reconcileSvc: stubReconciliationService{
			importFn: func(_ context.Context, ownerID string, transactions []models.BankTransaction) ([]models.BankTransaction, error) {
				if ownerID != "user-1" {
					t.Fatalf("unexpected owner: %q", ownerID)
				}
				imported = transactions
				return transactions, nil
			},
		},
	})
	body := `{"transactions":[
		{"date":"2024-03-05","description":"Virement loyer","amount":100,"type":"credit"},
		{"date":"2024-03-06","description":"Frais bancaires","amount":12.50,"type":"debit"}
	]}`
	rr := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rr, authedRequest(t, http.MethodPost, "/reconciliation/import", body, "user-1"))
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if len(imported) != 2 {
		t.Fatalf("unexpected rows: %#v", imported)
	}
	if !imported[1].Amount.Equal(decimal.NewFromFloat(12.50)) || imported[1].Type != models.BankTxDebit {
		t.Fatalf("row not parsed: %#v", imported[1])
	}
}

func TestImportBankTransactionsBadType(t *testing.T) {
	handler := newTestHandler(handlerDeps{
		reconcileSvc: stubReconciliationService{
			importFn: func(context.Context, string, []models.BankTransaction) ([]models.BankTransaction, error) {
				t.Fatalf("invalid rows must not be imported")
				return nil, nil
			},
		},
	})
	body := `{"transactions":[{"date":"2024-03-05","description":"Virement","amount":100,"type":"wire"}]}`
	rr := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rr, authedRequest(t, http.MethodPost, "/reconciliation/import", body, "user-1"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestImportBankTransactionsEmpty(t *testing.T) {
	handler := newTestHandler(handlerDeps{})
	rr := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rr, authedRequest(t, http.MethodPost, "/reconciliation/import",
		`{"transactions":[]}`, "user-1"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestRunReconciliation(t *testing.T) {
	handler := newTestHandler(handlerDeps{
		reconcileSvc: stubReconciliationService{
			runFn: func(_ context.Context, ownerID string) (services.ReconciliationResult, error) {
				return services.ReconciliationResult{
					Transactions: []models.BankTransaction{{ID: "tx-1", Status: models.StatusMatched}},
					Matches:      []models.ReconciliationMatch{{BankTransactionID: "tx-1", JournalEntryID: "entry-1"}},
				}, nil
			},
		},
	})
	rr := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rr, authedRequest(t, http.MethodPost, "/reconciliation/run", "", "user-1"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp services.ReconciliationResult
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	if len(resp.Matches) != 1 || resp.Matches[0].JournalEntryID != "entry-1" {
		t.Fatalf("unexpected result: %s", rr.Body.String())
	}
}

func TestConfirmMatchMissingFields(t *testing.T) {
	handler := newTestHandler(handlerDeps{})
	rr := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rr, authedRequest(t, http.MethodPost, "/reconciliation/confirm",
		`{"bank_transaction_id":"tx-1"}`, "user-1"))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}

func TestConfirmMatchNotFound(t *testing.T) {
	handler := newTestHandler(handlerDeps{
		reconcileSvc: stubReconciliationService{
			confirmFn: func(context.Context, string, string, string) error {
				return &ledger.NotFoundError{Kind: "bank transaction", Key: "tx-404"}
			},
		},
	})
	rr := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rr, authedRequest(t, http.MethodPost, "/reconciliation/confirm",
		`{"bank_transaction_id":"tx-404","journal_entry_id":"entry-1"}`, "user-1"))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestUnmatchTransaction(t *testing.T) {
	var unmatchedID string
	handler := newTestHandler(handlerDeps{
		reconcileSvc: stubReconciliationService{
			unmatchFn: func(_ context.Context, ownerID, bankTransactionID string) error {
				if ownerID != "user-1" {
					t.Fatalf("unexpected owner: %q", ownerID)
				}
				unmatchedID = bankTransactionID
				return nil
			},
		},
	})
	rr := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rr, authedRequest(t, http.MethodPost, "/reconciliation/unmatch",
		`{"bank_transaction_id":"tx-1"}`, "user-1"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if unmatchedID != "tx-1" {
		t.Fatalf("unexpected id: %q", unmatchedID)
	}
	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil || resp["status"] != models.StatusUnmatched {
		t.Fatalf("unexpected response: %s", rr.Body.String())
	}
}

func TestListMatches(t *testing.T) {
	handler := newTestHandler(handlerDeps{
		bankTxs: stubBankTxStore{
			listMatchesFn: func(_ context.Context, ownerID string) ([]models.ReconciliationMatch, error) {
				return []models.ReconciliationMatch{{BankTransactionID: "tx-1", Confidence: decimal.NewFromInt(90)}}, nil
			},
		},
	})
	rr := httptest.NewRecorder()
	handler.Routes().ServeHTTP(rr, authedRequest(t, http.MethodGet, "/reconciliation/matches", "", "user-1"))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var resp []models.ReconciliationMatch
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil || len(resp) != 1 {
		t.Fatalf("unexpected response: %s", rr.Body.String())
	}
}
