package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahelretail/compta/internal/domain"
	"github.com/sahelretail/compta/internal/usecase"
)

// PostSaleRequest represents a request to post a sale.
type PostSaleRequest struct {
	SaleID      string          `json:"sale_id"`
	Piece       string          `json:"piece"`
	Date        *time.Time      `json:"date,omitempty"`
	Total       decimal.Decimal `json:"total"`
	PaymentMode string          `json:"payment_mode"`
	ClientID    string          `json:"client_id,omitempty"`
	Label       string          `json:"label,omitempty"`
	PostedBy    string          `json:"posted_by"`
}

// ToUseCaseInput converts to use case input.
func (r *PostSaleRequest) ToUseCaseInput() usecase.PostSaleInput {
	return usecase.PostSaleInput{
		SaleID:      r.SaleID,
		Piece:       r.Piece,
		Date:        derefTime(r.Date),
		Total:       r.Total,
		PaymentMode: domain.PaymentMode(r.PaymentMode),
		ClientID:    r.ClientID,
		Label:       r.Label,
		PostedBy:    r.PostedBy,
	}
}

// PostPurchaseRequest represents a request to post a purchase.
type PostPurchaseRequest struct {
	PurchaseID  string          `json:"purchase_id"`
	Piece       string          `json:"piece"`
	Date        *time.Time      `json:"date,omitempty"`
	Total       decimal.Decimal `json:"total"`
	PaymentMode string          `json:"payment_mode"`
	SupplierID  string          `json:"supplier_id,omitempty"`
	Label       string          `json:"label,omitempty"`
	PostedBy    string          `json:"posted_by"`
}

// ToUseCaseInput converts to use case input.
func (r *PostPurchaseRequest) ToUseCaseInput() usecase.PostPurchaseInput {
	return usecase.PostPurchaseInput{
		PurchaseID:  r.PurchaseID,
		Piece:       r.Piece,
		Date:        derefTime(r.Date),
		Total:       r.Total,
		PaymentMode: domain.PaymentMode(r.PaymentMode),
		SupplierID:  r.SupplierID,
		Label:       r.Label,
		PostedBy:    r.PostedBy,
	}
}

// PostExpenseRequest represents a request to post an expense.
type PostExpenseRequest struct {
	ExpenseID string          `json:"expense_id"`
	Piece     string          `json:"piece"`
	Date      *time.Time      `json:"date,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	Category  string          `json:"category"`
	Label     string          `json:"label,omitempty"`
	PostedBy  string          `json:"posted_by"`
}

// ToUseCaseInput converts to use case input.
func (r *PostExpenseRequest) ToUseCaseInput() usecase.PostExpenseInput {
	return usecase.PostExpenseInput{
		ExpenseID: r.ExpenseID,
		Piece:     r.Piece,
		Date:      derefTime(r.Date),
		Amount:    r.Amount,
		Category:  r.Category,
		Label:     r.Label,
		PostedBy:  r.PostedBy,
	}
}

// PostChargeRequest represents a request to post a recurring charge.
type PostChargeRequest struct {
	ChargeID string          `json:"charge_id"`
	Piece    string          `json:"piece"`
	Date     *time.Time      `json:"date,omitempty"`
	Amount   decimal.Decimal `json:"amount"`
	Rubric   string          `json:"rubric"`
	Label    string          `json:"label,omitempty"`
	PostedBy string          `json:"posted_by"`
}

// ToUseCaseInput converts to use case input.
func (r *PostChargeRequest) ToUseCaseInput() usecase.PostChargeInput {
	return usecase.PostChargeInput{
		ChargeID: r.ChargeID,
		Piece:    r.Piece,
		Date:     derefTime(r.Date),
		Amount:   r.Amount,
		Rubric:   r.Rubric,
		Label:    r.Label,
		PostedBy: r.PostedBy,
	}
}

// PostCashMovementRequest represents a request to post a cash movement.
type PostCashMovementRequest struct {
	MovementID string          `json:"movement_id"`
	Piece      string          `json:"piece"`
	Date       *time.Time      `json:"date,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Direction  string          `json:"direction"`
	Label      string          `json:"label,omitempty"`
	PostedBy   string          `json:"posted_by"`
}

// ToUseCaseInput converts to use case input.
func (r *PostCashMovementRequest) ToUseCaseInput() usecase.PostCashMovementInput {
	return usecase.PostCashMovementInput{
		MovementID: r.MovementID,
		Piece:      r.Piece,
		Date:       derefTime(r.Date),
		Amount:     r.Amount,
		Direction:  domain.CashMovementDirection(r.Direction),
		Label:      r.Label,
		PostedBy:   r.PostedBy,
	}
}

// PostBankOperationRequest represents a request to post a bank operation.
type PostBankOperationRequest struct {
	OperationID       string          `json:"operation_id"`
	Piece             string          `json:"piece"`
	Date              *time.Time      `json:"date,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Type              string          `json:"type"`
	BankAccountNumber string          `json:"bank_account_number,omitempty"`
	Label             string          `json:"label,omitempty"`
	PostedBy          string          `json:"posted_by"`
}

// ToUseCaseInput converts to use case input.
func (r *PostBankOperationRequest) ToUseCaseInput() usecase.PostBankOperationInput {
	return usecase.PostBankOperationInput{
		OperationID:       r.OperationID,
		Piece:             r.Piece,
		Date:              derefTime(r.Date),
		Amount:            r.Amount,
		Type:              domain.BankOperationType(r.Type),
		BankAccountNumber: r.BankAccountNumber,
		Label:             r.Label,
		PostedBy:          r.PostedBy,
	}
}

// PostTransferRequest represents a request to post an inter-store
// stock transfer.
type PostTransferRequest struct {
	TransferID string          `json:"transfer_id"`
	Piece      string          `json:"piece"`
	Date       *time.Time      `json:"date,omitempty"`
	Value      decimal.Decimal `json:"value"`
	FromStore  string          `json:"from_store"`
	ToStore    string          `json:"to_store"`
	PostedBy   string          `json:"posted_by"`
}

// ToUseCaseInput converts to use case input.
func (r *PostTransferRequest) ToUseCaseInput() usecase.PostTransferInput {
	return usecase.PostTransferInput{
		TransferID: r.TransferID,
		Piece:      r.Piece,
		Date:       derefTime(r.Date),
		Value:      r.Value,
		FromStore:  r.FromStore,
		ToStore:    r.ToStore,
		PostedBy:   r.PostedBy,
	}
}

// ReferenceItem identifies one source record.
type ReferenceItem struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

// MissingReferencesRequest asks which source records lack entries.
type MissingReferencesRequest struct {
	References []ReferenceItem `json:"references"`
}

// ToUseCaseInput converts to use case input.
func (r *MissingReferencesRequest) ToUseCaseInput() []usecase.SourceRef {
	refs := make([]usecase.SourceRef, len(r.References))
	for i, item := range r.References {
		refs[i] = usecase.SourceRef{
			Type: domain.ReferenceType(item.Type),
			ID:   item.ID,
		}
	}
	return refs
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
