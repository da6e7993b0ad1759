package handlers

import (
	"encoding/json"
	"net/http"

	"comptable/internal/ledger"
	"comptable/internal/middleware"
	"comptable/internal/models"
	"comptable/internal/validator"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ListAccounts returns the owner's chart as a class -> account -> subaccount
// tree. Codes whose parent is missing are reported separately instead of
// being dropped silently.
func (h *Handler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	accounts, err := h.accounts.AccountsByOwner(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load accounts")
		return
	}
	tree, orphans := ledger.BuildTree(accounts)
	respondJSON(w, http.StatusOK, map[string]any{
		"accounts": tree,
		"orphans":  orphans,
	})
}

type upsertAccountRequest struct {
	Code          string  `json:"code"`
	Label         string  `json:"label"`
	Category      *string `json:"category"`
	NormalBalance *string `json:"normal_balance"`
}

func (h *Handler) UpsertAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req upsertAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if err := validator.ValidateAccountCode(req.Code); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Label == "" {
		respondError(w, http.StatusBadRequest, "label is required")
		return
	}
	if req.Category != nil {
		if err := validator.ValidateCategory(*req.Category); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.NormalBalance != nil {
		if err := validator.ValidateNormalBalance(*req.NormalBalance); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	account := models.Account{
		ID:            uuid.NewString(),
		Code:          req.Code,
		Label:         req.Label,
		Category:      req.Category,
		NormalBalance: req.NormalBalance,
		OwnerID:       userID,
	}
	err := h.txRunner.WithTx(r.Context(), func(tx *sqlx.Tx) error {
		return h.accounts.Upsert(r.Context(), tx, account)
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to save account")
		return
	}
	respondJSON(w, http.StatusCreated, account)
}

func (h *Handler) SearchAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	query := r.URL.Query().Get("q")
	if query == "" {
		respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	accounts, err := h.accounts.AccountsByOwner(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load accounts")
		return
	}
	tree, _ := ledger.BuildTree(accounts)
	respondJSON(w, http.StatusOK, ledger.SearchAccounts(tree, query))
}

// AccountBalance aggregates (debit - credit) over every line whose account
// code starts with the requested code, within the optional date range.
func (h *Handler) AccountBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	code := chi.URLParam(r, "code")
	if err := validator.ValidateAccountCode(code); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	from, to, err := parseDateRange(r.URL.Query())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	balance, err := h.balances.AccountBalance(r.Context(), code, userID, from, to)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to compute balance")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"code":    code,
		"balance": balance,
	})
}
