package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sahelretail/compta/internal/adapter/http/dto"
	"github.com/sahelretail/compta/internal/usecase"
)

// CatalogHandler handles chart-of-accounts and journal registry
// requests.
type CatalogHandler struct {
	catalogUC *usecase.CatalogUseCase
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogUC *usecase.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{catalogUC: catalogUC}
}

// ListAccounts lists accounts with pagination.
func (h *CatalogHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	accounts, err := h.catalogUC.ListAccounts(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountsFromDomain(accounts))
}

// GetAccount retrieves one account by number.
func (h *CatalogHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	account, err := h.catalogUC.GetAccount(r.Context(), number)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get account", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// ListJournals lists journals with pagination.
func (h *CatalogHandler) ListJournals(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 50)
	offset := parseIntQuery(r, "offset", 0)

	journals, err := h.catalogUC.ListJournals(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list journals", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.JournalsFromDomain(journals))
}

// GetJournal retrieves one journal by code.
func (h *CatalogHandler) GetJournal(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	journal, err := h.catalogUC.GetJournal(r.Context(), code)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get journal", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.JournalFromDomain(journal))
}
