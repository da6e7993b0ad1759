package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"comptable/internal/ledger"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError translates the ledger's typed errors into HTTP statuses.
// Anything unrecognized is reported as a 500 without leaking internals.
func respondDomainError(w http.ResponseWriter, err error) {
	var validationErr *ledger.ValidationError
	var parseErr *ledger.ParseError
	var balanceErr *ledger.BalanceError
	var notFoundErr *ledger.NotFoundError
	var ownershipErr *ledger.OwnershipError
	switch {
	case errors.As(err, &validationErr), errors.As(err, &parseErr), errors.As(err, &balanceErr):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &notFoundErr), errors.Is(err, sql.ErrNoRows):
		respondError(w, http.StatusNotFound, "not found")
	case errors.As(err, &ownershipErr):
		respondError(w, http.StatusForbidden, "forbidden")
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
