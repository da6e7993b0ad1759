package handlers

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"comptable/internal/ledger"
)

const dateLayout = "2006-01-02"

func parseDate(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, &ledger.ValidationError{Field: field, Reason: "required"}
	}
	if parsed, err := time.Parse(dateLayout, raw); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, &ledger.ValidationError{Field: field, Reason: "must be YYYY-MM-DD"}
	}
	return parsed, nil
}

// parseDateRange reads optional startDate/endDate query parameters. Absent
// bounds fall back to an all-time range ending today.
func parseDateRange(query url.Values) (time.Time, time.Time, error) {
	from := time.Time{}
	to := time.Now()
	if raw := query.Get("startDate"); raw != "" {
		parsed, err := parseDate("startDate", raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if raw := query.Get("endDate"); raw != "" {
		parsed, err := parseDate("endDate", raw)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed
	}
	return from, to, nil
}

// parseOptionalAmount treats an absent value as zero; a present value must
// parse as a number. Journal lines carry either a debit or a credit, so one
// side is legitimately empty.
func parseOptionalAmount(field string, raw json.Number) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return ledger.ParseAmount(field, raw.String())
}

func parseRequiredAmount(field string, raw json.Number) (decimal.Decimal, error) {
	return ledger.ParseAmount(field, raw.String())
}

func parseInt(raw string, fallback int) int {
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
