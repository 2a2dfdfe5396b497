package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sahelretail/compta/internal/adapter/http/dto"
	"github.com/sahelretail/compta/internal/domain"
	"github.com/sahelretail/compta/internal/usecase"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrJournalNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAccountNumber),
		errors.Is(err, domain.ErrInvalidJournalCode),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidPeriod),
		errors.Is(err, domain.ErrInvalidReferenceType),
		errors.Is(err, domain.ErrUnknownBankOperation),
		errors.Is(err, domain.ErrUnknownCashMovement),
		errors.Is(err, domain.ErrMissingPostingUser),
		errors.Is(err, domain.ErrOneSidedEntry),
		errors.Is(err, domain.ErrEmptyPosting),
		errors.Is(err, domain.ErrUnbalancedPosting):
		return http.StatusBadRequest
	case errors.Is(err, usecase.ErrUnbalancedLedger):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// parseDateQuery parses a date query parameter, accepting YYYY-MM-DD
// or RFC 3339.
func parseDateQuery(r *http.Request, key string) (time.Time, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return time.Time{}, errMissingParam(key)
	}

	if t, err := time.Parse("2006-01-02", val); err == nil {
		return t, nil
	}

	return time.Parse(time.RFC3339, val)
}

type missingParamError string

func errMissingParam(key string) error {
	return missingParamError(key)
}

func (e missingParamError) Error() string {
	return "missing query parameter: " + string(e)
}
