package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sahelretail/compta/internal/domain"
	"github.com/sahelretail/compta/internal/usecase"
)

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"journal not found", domain.ErrJournalNotFound, http.StatusNotFound},
		{"invalid account number", domain.ErrInvalidAccountNumber, http.StatusBadRequest},
		{"invalid amount", domain.ErrInvalidAmount, http.StatusBadRequest},
		{"invalid reference type", domain.ErrInvalidReferenceType, http.StatusBadRequest},
		{"unknown bank operation", domain.ErrUnknownBankOperation, http.StatusBadRequest},
		{"unbalanced posting", domain.ErrUnbalancedPosting, http.StatusBadRequest},
		{"unbalanced ledger", usecase.ErrUnbalancedLedger, http.StatusConflict},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.want {
				t.Errorf("mapDomainError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestParseDateQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?start=2026-03-01&end=2026-03-31T23:59:59Z", nil)

	start, err := parseDateQuery(req, "start")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !start.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected start: %s", start)
	}

	end, err := parseDateQuery(req, "end")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if end.Hour() != 23 || end.Minute() != 59 {
		t.Errorf("unexpected end: %s", end)
	}

	if _, err := parseDateQuery(req, "missing"); err == nil {
		t.Error("expected error for missing parameter")
	}

	bad := httptest.NewRequest(http.MethodGet, "/?start=hier", nil)
	if _, err := parseDateQuery(bad, "start"); err == nil {
		t.Error("expected error for unparseable date")
	}
}

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?limit=25&offset=abc", nil)

	if got := parseIntQuery(req, "limit", 50); got != 25 {
		t.Errorf("expected 25, got %d", got)
	}

	if got := parseIntQuery(req, "offset", 0); got != 0 {
		t.Errorf("expected fallback 0, got %d", got)
	}

	if got := parseIntQuery(req, "absent", 50); got != 50 {
		t.Errorf("expected default 50, got %d", got)
	}
}
