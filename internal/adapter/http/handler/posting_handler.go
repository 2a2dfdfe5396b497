package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sahelretail/compta/internal/adapter/http/dto"
	"github.com/sahelretail/compta/internal/domain"
	"github.com/sahelretail/compta/internal/infrastructure/metrics"
	"github.com/sahelretail/compta/internal/usecase"
)

// PostingHandler handles posting-related HTTP requests.
type PostingHandler struct {
	postingUC *usecase.PostingUseCase
	metrics   *metrics.Metrics
}

// NewPostingHandler creates a new PostingHandler. Metrics are optional.
func NewPostingHandler(postingUC *usecase.PostingUseCase, m *metrics.Metrics) *PostingHandler {
	return &PostingHandler{postingUC: postingUC, metrics: m}
}

// PostSale posts the entries for a sale.
func (h *PostingHandler) PostSale(w http.ResponseWriter, r *http.Request) {
	var req dto.PostSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entries, err := h.postingUC.PostSale(r.Context(), req.ToUseCaseInput())
	h.respond(w, "sale", entries, err)
}

// PostPurchase posts the entries for a purchase.
func (h *PostingHandler) PostPurchase(w http.ResponseWriter, r *http.Request) {
	var req dto.PostPurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entries, err := h.postingUC.PostPurchase(r.Context(), req.ToUseCaseInput())
	h.respond(w, "purchase", entries, err)
}

// PostExpense posts the entries for an expense.
func (h *PostingHandler) PostExpense(w http.ResponseWriter, r *http.Request) {
	var req dto.PostExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entries, err := h.postingUC.PostExpense(r.Context(), req.ToUseCaseInput())
	h.respond(w, "expense", entries, err)
}

// PostCharge posts the entries for a recurring charge.
func (h *PostingHandler) PostCharge(w http.ResponseWriter, r *http.Request) {
	var req dto.PostChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entries, err := h.postingUC.PostCharge(r.Context(), req.ToUseCaseInput())
	h.respond(w, "charge", entries, err)
}

// PostCashMovement posts the entries for a cash-register movement.
func (h *PostingHandler) PostCashMovement(w http.ResponseWriter, r *http.Request) {
	var req dto.PostCashMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entries, err := h.postingUC.PostCashMovement(r.Context(), req.ToUseCaseInput())
	h.respond(w, "cash_movement", entries, err)
}

// PostBankOperation posts the entries for a bank operation.
func (h *PostingHandler) PostBankOperation(w http.ResponseWriter, r *http.Request) {
	var req dto.PostBankOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entries, err := h.postingUC.PostBankOperation(r.Context(), req.ToUseCaseInput())
	h.respond(w, "bank_operation", entries, err)
}

// PostTransfer posts the entries for an inter-store stock transfer.
// A zero-value transfer posts nothing and returns an empty set.
func (h *PostingHandler) PostTransfer(w http.ResponseWriter, r *http.Request) {
	var req dto.PostTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	entries, err := h.postingUC.PostTransfer(r.Context(), req.ToUseCaseInput())
	h.respond(w, "transfer", entries, err)
}

// DeleteByReference deletes every entry posted for a source record,
// identified by the reference_type and reference_id query parameters.
func (h *PostingHandler) DeleteByReference(w http.ResponseWriter, r *http.Request) {
	refType := domain.ReferenceType(r.URL.Query().Get("reference_type"))
	refID := r.URL.Query().Get("reference_id")

	deleted, err := h.postingUC.DeleteEntriesByReference(r.Context(), refType, refID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to delete entries", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.EntriesDeleted.Add(float64(deleted))
	}

	writeJSON(w, http.StatusOK, dto.DeleteEntriesResponse{Deleted: deleted})
}

func (h *PostingHandler) respond(w http.ResponseWriter, kind string, entries []*domain.Entry, err error) {
	if err != nil {
		if h.metrics != nil {
			h.metrics.PostingErrors.WithLabelValues(kind).Inc()
		}

		status := mapDomainError(err)
		writeError(w, status, "failed to post "+kind, err.Error())

		return
	}

	if h.metrics != nil && len(entries) > 0 {
		h.metrics.PostingsCreated.WithLabelValues(kind).Inc()
	}

	writeJSON(w, http.StatusCreated, dto.PostingFromDomain(entries))
}
