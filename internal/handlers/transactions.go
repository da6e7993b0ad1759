package handlers

import (
	"encoding/json"
	"net/http"

	"comptable/internal/middleware"
	"comptable/internal/models"
	"comptable/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type transactionRequest struct {
	Date        string      `json:"date"`
	Description string      `json:"description"`
	Amount      json.Number `json:"amount"`
	Type        string      `json:"type"`
}

func validTransactionType(transactionType string) bool {
	return transactionType == models.TransactionIncome || transactionType == models.TransactionExpense
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	amount, err := parseRequiredAmount("amount", req.Amount)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if !validTransactionType(req.Type) {
		respondError(w, http.StatusBadRequest, "type must be income or expense")
		return
	}
	transaction := models.Transaction{
		ID:          uuid.NewString(),
		Date:        date,
		Description: req.Description,
		Amount:      amount,
		Type:        req.Type,
		OwnerID:     userID,
	}
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		return h.transactions.Create(r.Context(), tx, transaction)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to save transaction")
		return
	}
	h.hub.Broadcast(userID, websocket.Event{Type: "transaction_created", Payload: transaction})
	respondJSON(w, http.StatusCreated, transaction)
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	transactions, err := h.transactions.ListByOwner(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load transactions")
		return
	}
	respondJSON(w, http.StatusOK, transactions)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	amount, err := parseRequiredAmount("amount", req.Amount)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	if !validTransactionType(req.Type) {
		respondError(w, http.StatusBadRequest, "type must be income or expense")
		return
	}
	transaction := models.Transaction{
		ID:          chi.URLParam(r, "id"),
		Date:        date,
		Description: req.Description,
		Amount:      amount,
		Type:        req.Type,
		OwnerID:     userID,
	}
	var rows int64
	err = h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		affected, err := h.transactions.Update(r.Context(), tx, transaction)
		rows = affected
		return err
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to update transaction")
		return
	}
	if rows == 0 {
		respondError(w, http.StatusNotFound, "not found")
		return
	}
	h.hub.Broadcast(userID, websocket.Event{Type: "transaction_updated", Payload: transaction})
	respondJSON(w, http.StatusOK, transaction)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var rows int64
	err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		affected, err := h.transactions.Delete(r.Context(), tx, userID, chi.URLParam(r, "id"))
		rows = affected
		return err
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete transaction")
		return
	}
	if rows == 0 {
		respondError(w, http.StatusNotFound, "not found")
		return
	}
	h.hub.Broadcast(userID, websocket.Event{Type: "transaction_deleted", Payload: map[string]string{"id": chi.URLParam(r, "id")}})
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
