package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahelretail/compta/internal/adapter/http/dto"
	"github.com/sahelretail/compta/internal/domain"
	"github.com/sahelretail/compta/internal/usecase"
	"github.com/sahelretail/compta/internal/usecase/mocks"
)

func newReportHandler(t *testing.T, entries []*domain.Entry) *ReportHandler {
	t.Helper()

	entryRepo := mocks.NewMockEntryRepository()
	accountRepo := mocks.NewMockAccountRepository()

	for _, e := range entries {
		if err := entryRepo.Create(context.Background(), nil, e); err != nil {
			t.Fatalf("failed to seed entry: %v", err)
		}
	}

	ledgerUC := usecase.NewLedgerUseCase(entryRepo, accountRepo)
	balanceUC := usecase.NewBalanceUseCase(mocks.NewMockBalanceRepository(entryRepo, accountRepo), mocks.NewMockCache())

	return NewReportHandler(ledgerUC, balanceUC, nil)
}

func saleEntries(date time.Time) []*domain.Entry {
	amount := decimal.NewFromInt(15000)

	return []*domain.Entry{
		{
			ID:            "e-1",
			EntryDate:     date,
			JournalCode:   "VE",
			AccountNumber: "411",
			Debit:         amount,
			Credit:        decimal.Zero,
		},
		{
			ID:            "e-2",
			EntryDate:     date,
			JournalCode:   "VE",
			AccountNumber: "701",
			Debit:         decimal.Zero,
			Credit:        amount,
		},
	}
}

func TestReportHandlerLedger(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	h := newReportHandler(t, saleEntries(date))

	req := httptest.NewRequest(http.MethodGet, "/reports/ledger?start=2026-03-01&end=2026-03-31", nil)
	rec := httptest.NewRecorder()

	h.Ledger(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp []dto.LedgerAccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp) != 2 {
		t.Fatalf("expected 2 ledger accounts, got %d", len(resp))
	}

	if resp[0].AccountNumber != "411" || resp[1].AccountNumber != "701" {
		t.Fatalf("unexpected account order: %s, %s", resp[0].AccountNumber, resp[1].AccountNumber)
	}
}

func TestReportHandlerLedgerMissingDates(t *testing.T) {
	h := newReportHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/reports/ledger?end=2026-03-31", nil)
	rec := httptest.NewRecorder()

	h.Ledger(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestReportHandlerBalance(t *testing.T) {
	date := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	h := newReportHandler(t, saleEntries(date))

	req := httptest.NewRequest(http.MethodGet, "/reports/balance?start=2026-03-01&end=2026-03-31", nil)
	rec := httptest.NewRecorder()

	h.Balance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp usecase.TrialBalance
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if !resp.Balanced {
		t.Fatalf("expected balanced trial balance, ecart=%s", resp.Ecart)
	}

	if !resp.TotalDebit.Equal(decimal.NewFromInt(15000)) {
		t.Fatalf("expected total debit 15000, got %s", resp.TotalDebit)
	}

	if !resp.TotalDebit.Equal(resp.TotalCredit) {
		t.Fatalf("debit %s != credit %s", resp.TotalDebit, resp.TotalCredit)
	}
}

func TestReportHandlerBalanceInvalidDate(t *testing.T) {
	h := newReportHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/reports/balance?start=mars&end=2026-03-31", nil)
	rec := httptest.NewRecorder()

	h.Balance(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
