package handler

import (
	"encoding/json"
	"net/http"

	"github.com/sahelretail/compta/internal/adapter/http/dto"
	"github.com/sahelretail/compta/internal/usecase"
)

// AdminHandler handles bootstrap and reconciliation requests.
type AdminHandler struct {
	bootstrapUC *usecase.BootstrapUseCase
	backfillUC  *usecase.BackfillUseCase
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(bootstrapUC *usecase.BootstrapUseCase, backfillUC *usecase.BackfillUseCase) *AdminHandler {
	return &AdminHandler{
		bootstrapUC: bootstrapUC,
		backfillUC:  backfillUC,
	}
}

// InitializeDefaults seeds the standard journals and core accounts.
// Idempotent, safe to call repeatedly.
func (h *AdminHandler) InitializeDefaults(w http.ResponseWriter, r *http.Request) {
	if err := h.bootstrapUC.InitializeDefaults(r.Context()); err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to seed defaults", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// MissingReferences reports which of the submitted source records have
// no accounting entries.
func (h *AdminHandler) MissingReferences(w http.ResponseWriter, r *http.Request) {
	var req dto.MissingReferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	missing, err := h.backfillUC.MissingReferences(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to check references", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.MissingFromUseCase(missing))
}
