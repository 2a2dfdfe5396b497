package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahelretail/compta/internal/domain"
	"github.com/sahelretail/compta/internal/usecase"
)

// EntryResponse represents an entry in API responses.
type EntryResponse struct {
	ID            string          `json:"id"`
	EntryDate     time.Time       `json:"entry_date"`
	JournalCode   string          `json:"journal_code"`
	Piece         string          `json:"piece,omitempty"`
	Label         string          `json:"label"`
	AccountNumber string          `json:"account_number"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	PostedBy      string          `json:"posted_by"`
	CreatedAt     time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) *EntryResponse {
	return &EntryResponse{
		ID:            e.ID,
		EntryDate:     e.EntryDate,
		JournalCode:   e.JournalCode,
		Piece:         e.Piece,
		Label:         e.Label,
		AccountNumber: e.AccountNumber,
		Debit:         e.Debit,
		Credit:        e.Credit,
		ReferenceType: string(e.ReferenceType),
		ReferenceID:   e.ReferenceID,
		PostedBy:      e.PostedBy,
		CreatedAt:     e.CreatedAt,
	}
}

// EntriesFromDomain converts domain entries to responses.
func EntriesFromDomain(entries []*domain.Entry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// PostingResponse wraps the entries created by one posting.
type PostingResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Count   int              `json:"count"`
}

// PostingFromDomain converts the created entries to a response.
func PostingFromDomain(entries []*domain.Entry) *PostingResponse {
	return &PostingResponse{
		Entries: EntriesFromDomain(entries),
		Count:   len(entries),
	}
}

// DeleteEntriesResponse reports how many entries were removed.
type DeleteEntriesResponse struct {
	Deleted int64 `json:"deleted"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	Number    string    `json:"number"`
	Label     string    `json:"label"`
	Class     string    `json:"class"`
	Type      string    `json:"type"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		Number:    a.Number,
		Label:     a.Label,
		Class:     a.Class,
		Type:      string(a.Type),
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// JournalResponse represents a journal in API responses.
type JournalResponse struct {
	Code      string    `json:"code"`
	Label     string    `json:"label"`
	Type      string    `json:"type"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JournalFromDomain converts a domain journal to a response.
func JournalFromDomain(j *domain.Journal) *JournalResponse {
	return &JournalResponse{
		Code:      j.Code,
		Label:     j.Label,
		Type:      string(j.Type),
		Active:    j.Active,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}

// JournalsFromDomain converts domain journals to responses.
func JournalsFromDomain(journals []*domain.Journal) []*JournalResponse {
	result := make([]*JournalResponse, len(journals))
	for i, j := range journals {
		result[i] = JournalFromDomain(j)
	}
	return result
}

// LedgerAccountResponse is one account section of the grand livre.
type LedgerAccountResponse struct {
	AccountNumber string           `json:"account_number"`
	AccountLabel  string           `json:"account_label"`
	Class         string           `json:"class"`
	Entries       []*EntryResponse `json:"entries"`
	SoldeDebit    decimal.Decimal  `json:"solde_debit"`
	SoldeCredit   decimal.Decimal  `json:"solde_credit"`
	Solde         decimal.Decimal  `json:"solde"`
}

// LedgerFromUseCase converts ledger sections to responses.
func LedgerFromUseCase(sections []*usecase.LedgerAccount) []*LedgerAccountResponse {
	result := make([]*LedgerAccountResponse, len(sections))
	for i, s := range sections {
		result[i] = &LedgerAccountResponse{
			AccountNumber: s.AccountNumber,
			AccountLabel:  s.AccountLabel,
			Class:         s.Class,
			Entries:       EntriesFromDomain(s.Entries),
			SoldeDebit:    s.SoldeDebit,
			SoldeCredit:   s.SoldeCredit,
			Solde:         s.Solde,
		}
	}
	return result
}

// MissingReferencesResponse lists source records without entries.
type MissingReferencesResponse struct {
	Missing []ReferenceItem `json:"missing"`
	Count   int             `json:"count"`
}

// MissingFromUseCase converts missing references to a response.
func MissingFromUseCase(refs []usecase.SourceRef) *MissingReferencesResponse {
	missing := make([]ReferenceItem, len(refs))
	for i, ref := range refs {
		missing[i] = ReferenceItem{
			Type: string(ref.Type),
			ID:   ref.ID,
		}
	}
	return &MissingReferencesResponse{
		Missing: missing,
		Count:   len(missing),
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
