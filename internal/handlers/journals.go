package handlers

import (
	"encoding/json"
	"net/http"

	"comptable/internal/ledger"
	"comptable/internal/middleware"
	"comptable/internal/models"
	"comptable/internal/services"

	"github.com/go-chi/chi/v5"
)

type journalLineRequest struct {
	AccountCode string      `json:"account_code"`
	Label       string      `json:"label"`
	Debit       json.Number `json:"debit"`
	Credit      json.Number `json:"credit"`
}

type createEntryRequest struct {
	Date        string               `json:"date"`
	Reference   string               `json:"reference"`
	Description string               `json:"description"`
	JournalType string               `json:"journal_type"`
	Lines       []journalLineRequest `json:"lines"`
}

func (h *Handler) CreateJournalEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req createEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	lines := make([]models.JournalLine, len(req.Lines))
	for i, line := range req.Lines {
		debit, err := parseOptionalAmount("debit", line.Debit)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		credit, err := parseOptionalAmount("credit", line.Credit)
		if err != nil {
			respondDomainError(w, err)
			return
		}
		lines[i] = models.JournalLine{
			AccountCode: line.AccountCode,
			Label:       line.Label,
			Debit:       debit,
			Credit:      credit,
		}
	}
	entry, err := h.journalSvc.Record(r.Context(), services.RecordEntryRequest{
		OwnerID:     userID,
		Date:        date,
		Reference:   req.Reference,
		Description: req.Description,
		JournalType: req.JournalType,
		Lines:       lines,
	})
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, entry)
}

func (h *Handler) ListJournalEntries(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	journalType := chi.URLParam(r, "type")
	if !ledger.ValidJournalType(journalType) {
		respondError(w, http.StatusBadRequest, "unknown journal type")
		return
	}
	entries, err := h.journals.ListByType(r.Context(), userID, journalType)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to load entries")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

func (h *Handler) GetJournalEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	entry, err := h.journals.GetEntry(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, entry)
}
