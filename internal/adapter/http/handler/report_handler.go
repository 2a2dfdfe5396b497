package handler

import (
	"net/http"

	"github.com/sahelretail/compta/internal/adapter/http/dto"
	"github.com/sahelretail/compta/internal/infrastructure/metrics"
	"github.com/sahelretail/compta/internal/usecase"
)

// ReportHandler handles report HTTP requests: grand livre and trial
// balance.
type ReportHandler struct {
	ledgerUC  *usecase.LedgerUseCase
	balanceUC *usecase.BalanceUseCase
	metrics   *metrics.Metrics
}

// NewReportHandler creates a new ReportHandler. Metrics are optional.
func NewReportHandler(ledgerUC *usecase.LedgerUseCase, balanceUC *usecase.BalanceUseCase, m *metrics.Metrics) *ReportHandler {
	return &ReportHandler{
		ledgerUC:  ledgerUC,
		balanceUC: balanceUC,
		metrics:   m,
	}
}

// Ledger returns the grand livre for a period, optionally filtered to
// one account.
func (h *ReportHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	start, err := parseDateQuery(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date", err.Error())
		return
	}

	end, err := parseDateQuery(r, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end date", err.Error())
		return
	}

	sections, err := h.ledgerUC.Ledger(r.Context(), usecase.LedgerInput{
		PeriodStart:   start,
		PeriodEnd:     end,
		AccountNumber: r.URL.Query().Get("account"),
	})
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build ledger", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.LedgerFromUseCase(sections))
}

// Balance returns the trial balance for a period. The écart is always
// included in the response so an unbalanced ledger is visible.
func (h *ReportHandler) Balance(w http.ResponseWriter, r *http.Request) {
	start, err := parseDateQuery(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date", err.Error())
		return
	}

	end, err := parseDateQuery(r, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end date", err.Error())
		return
	}

	balance, err := h.balanceUC.Balance(r.Context(), start, end)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to build balance", err.Error())

		return
	}

	if h.metrics != nil {
		h.metrics.BalanceChecks.Inc()
		ecart, _ := balance.Ecart.Float64()
		h.metrics.BalanceEcart.Set(ecart)
		if !balance.Balanced {
			h.metrics.BalanceUnbalanced.Inc()
		}
	}

	writeJSON(w, http.StatusOK, balance)
}
