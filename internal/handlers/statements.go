package handlers

import (
	"net/http"

	"comptable/internal/middleware"
)

func (h *Handler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	from, to, err := parseDateRange(r.URL.Query())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	sheet, err := h.statements.BalanceSheet(r.Context(), userID, from, to)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to build balance sheet")
		return
	}
	respondJSON(w, http.StatusOK, sheet)
}

func (h *Handler) IncomeStatement(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	from, to, err := parseDateRange(r.URL.Query())
	if err != nil {
		respondDomainError(w, err)
		return
	}
	statement, err := h.statements.IncomeStatement(r.Context(), userID, from, to)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to build income statement")
		return
	}
	respondJSON(w, http.StatusOK, statement)
}
