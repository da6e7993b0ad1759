package handlers

import (
	"encoding/json"
	"net/http"

	"comptable/internal/middleware"
	"comptable/internal/models"
)

type importTransactionRequest struct {
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Type        string      `json:"type"`
}

type importRequest struct {
	Transactions []importTransactionRequest `json:"transactions"`
}

// ImportBankTransactions accepts parsed statement rows and stores them as
// pending. Rows that fail to parse reject the whole import; a partial
// statement is worse than none.
func (h *Handler) ImportBankTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if len(req.Transactions) == 0 {
		respondError(w, http.StatusBadRequest, "transactions are required")
		return
	}
	rows := make([]models.BankTransaction, len(req.Transactions))
	for i, row := range req.Transactions {
		date, err := parseDate("date", row.Date)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		amount, err := parseRequiredAmount("amount", row.Amount)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		if row.Type != models.BankTxCredit && row.Type != models.BankTxDebit {
			respondError(w, http.StatusBadRequest, "type must be credit or debit")
			return
		}
		rows[i] = models.BankTransaction{
			Date:        date,
			Description: row.Description,
			Amount:      amount,
			Type:        row.Type,
		}
	}
	imported, err := h.reconcileSvc.Import(r.Context(), userID, rows)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to import transactions")
		return
	}
	respondJSON(w, http.StatusCreated, imported)
}

func (h *Handler) RunReconciliation(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	result, err := h.reconcileSvc.Run(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "reconciliation failed")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) ListBankTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	transactions, err := h.bankTxs.ListByOwner(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load transactions")
		return
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filtered := make([]models.BankTransaction, 0, len(transactions))
		for _, transaction := range transactions {
			if transaction.Status == status {
				filtered = append(filtered, transaction)
			}
		}
		transactions = filtered
	}
	respondJSON(w, http.StatusOK, transactions)
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	matches, err := h.bankTxs.ListMatches(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load matches")
		return
	}
	respondJSON(w, http.StatusOK, matches)
}

type confirmMatchRequest struct {
	BankTransactionID string `json:"bank_transaction_id"`
	JournalEntryID    string `json:"journal_entry_id"`
}

func (h *Handler) ConfirmMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req confirmMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.BankTransactionID == "" || req.JournalEntryID == "" {
		respondError(w, http.StatusBadRequest, "bank_transaction_id and journal_entry_id are required")
		return
	}
	if err := h.reconcileSvc.Confirm(r.Context(), userID, req.BankTransactionID, req.JournalEntryID); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "matched"})
}

type unmatchRequest struct {
	BankTransactionID string `json:"bank_transaction_id"`
}

func (h *Handler) UnmatchTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req unmatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.BankTransactionID == "" {
		respondError(w, http.StatusBadRequest, "bank_transaction_id is required")
		return
	}
	if err := h.reconcileSvc.Unmatch(r.Context(), userID, req.BankTransactionID); err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": models.StatusUnmatched})
}
