package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahelretail/compta/internal/domain"
)

// JournalRef is a fixed journal reference resolved through
// get-or-create at posting time.
type JournalRef struct {
	Code  string
	Label string
	Type  domain.JournalType
}

// Fixed journals used by the posting engine.
var (
	JournalVentes = JournalRef{Code: domain.JournalCodeVentes, Label: "Journal des ventes", Type: domain.JournalTypeVentes}
	JournalAchats = JournalRef{Code: domain.JournalCodeAchats, Label: "Journal des achats", Type: domain.JournalTypeAchats}
	JournalCaisse = JournalRef{Code: domain.JournalCodeCaisse, Label: "Journal de caisse", Type: domain.JournalTypeCaisse}
	JournalBanque = JournalRef{Code: domain.JournalCodeBanque, Label: "Journal de banque", Type: domain.JournalTypeBanque}
	JournalDivers = JournalRef{Code: domain.JournalCodeDivers, Label: "Opérations diverses", Type: domain.JournalTypeOD}
)

// PostingUseCase converts business events into balanced accounting
// entries. Every posting runs in a single transaction: either all legs
// of an event are committed, or none are.
type PostingUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	journalRepo JournalRepository
	entryRepo   EntryRepository
	idGen       IDGenerator
	retrier     Retrier
}

// NewPostingUseCase creates a new PostingUseCase.
func NewPostingUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	journalRepo JournalRepository,
	entryRepo EntryRepository,
	idGen IDGenerator,
	retrier Retrier,
) *PostingUseCase {
	return &PostingUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		entryRepo:   entryRepo,
		idGen:       idGen,
		retrier:     retrier,
	}
}

type leg struct {
	account AccountRef
	debit   decimal.Decimal
	credit  decimal.Decimal
}

func debitLeg(account AccountRef, amount decimal.Decimal) leg {
	return leg{account: account, debit: amount, credit: decimal.Zero}
}

func creditLeg(account AccountRef, amount decimal.Decimal) leg {
	return leg{account: account, debit: decimal.Zero, credit: amount}
}

type postingSpec struct {
	journal   JournalRef
	date      time.Time
	piece     string
	label     string
	reference string
	refType   domain.ReferenceType
	refID     string
	postedBy  string
	legs      []leg
}

// post resolves the journal and accounts, builds the entry legs and
// inserts them atomically. The balanced-set invariant is verified
// before anything touches storage.
func (uc *PostingUseCase) post(ctx context.Context, spec postingSpec) ([]*domain.Entry, error) {
	if spec.postedBy == "" {
		return nil, domain.ErrMissingPostingUser
	}

	now := time.Now().UTC()

	date := spec.date
	if date.IsZero() {
		date = now
	}

	entries := make([]*domain.Entry, 0, len(spec.legs))
	for _, l := range spec.legs {
		entries = append(entries, &domain.Entry{
			ID:            uc.idGen.Generate(),
			EntryDate:     date,
			JournalCode:   spec.journal.Code,
			Piece:         spec.piece,
			Label:         spec.label,
			AccountNumber: l.account.Number,
			Debit:         l.debit,
			Credit:        l.credit,
			Reference:     spec.reference,
			ReferenceType: spec.refType,
			ReferenceID:   spec.refID,
			PostedBy:      spec.postedBy,
			CreatedAt:     now,
		})
	}

	if err := domain.ValidateBalancedSet(entries); err != nil {
		return nil, err
	}

	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		journal, err := domain.NewJournal(spec.journal.Code, spec.journal.Label, spec.journal.Type, now)
		if err != nil {
			return err
		}

		if _, err := uc.journalRepo.GetOrCreate(ctx, tx, journal); err != nil {
			return fmt.Errorf("resolve journal %s: %w", spec.journal.Code, err)
		}

		seen := make(map[string]bool)
		for _, l := range spec.legs {
			if seen[l.account.Number] {
				continue
			}
			seen[l.account.Number] = true

			account, err := domain.NewAccount(l.account.Number, l.account.Label, l.account.Type, now)
			if err != nil {
				return err
			}

			if _, err := uc.accountRepo.GetOrCreate(ctx, tx, account); err != nil {
				return fmt.Errorf("resolve account %s: %w", l.account.Number, err)
			}
		}

		for _, entry := range entries {
			if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
				return fmt.Errorf("insert entry %s: %w", entry.ID, err)
			}
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (uc *PostingUseCase) retry(ctx context.Context, operation func() error) error {
	if uc.retrier == nil {
		return operation()
	}

	return uc.retrier.Retry(ctx, operation)
}

// PostSaleInput represents a sale to post.
type PostSaleInput struct {
	SaleID      string
	Piece       string
	Date        time.Time
	Total       decimal.Decimal
	PaymentMode domain.PaymentMode
	ClientID    string
	Label       string
	PostedBy    string
}

// PostSale posts a sale: debit the settlement account, credit sales
// revenue (701).
func (uc *PostingUseCase) PostSale(ctx context.Context, input PostSaleInput) ([]*domain.Entry, error) {
	if err := domain.ValidateAmount(input.Total); err != nil {
		return nil, err
	}

	settlement := SaleSettlementAccount(input.PaymentMode, input.ClientID != "")

	label := input.Label
	if label == "" {
		label = fmt.Sprintf("Vente %s", input.Piece)
	}

	return uc.post(ctx, postingSpec{
		journal:  JournalVentes,
		date:     input.Date,
		piece:    input.Piece,
		label:    label,
		refType:  domain.ReferenceVente,
		refID:    input.SaleID,
		postedBy: input.PostedBy,
		legs: []leg{
			debitLeg(settlement, input.Total),
			creditLeg(AccountVentes, input.Total),
		},
	})
}

// PostPurchaseInput represents a purchase to post.
type PostPurchaseInput struct {
	PurchaseID  string
	Piece       string
	Date        time.Time
	Total       decimal.Decimal
	PaymentMode domain.PaymentMode
	SupplierID  string
	Label       string
	PostedBy    string
}

// PostPurchase posts a purchase, mirrored from the sale: debit
// purchases (601), credit the settlement account.
func (uc *PostingUseCase) PostPurchase(ctx context.Context, input PostPurchaseInput) ([]*domain.Entry, error) {
	if err := domain.ValidateAmount(input.Total); err != nil {
		return nil, err
	}

	settlement := PurchaseSettlementAccount(input.PaymentMode, input.SupplierID != "")

	label := input.Label
	if label == "" {
		label = fmt.Sprintf("Achat %s", input.Piece)
	}

	return uc.post(ctx, postingSpec{
		journal:  JournalAchats,
		date:     input.Date,
		piece:    input.Piece,
		label:    label,
		refType:  domain.ReferenceAchat,
		refID:    input.PurchaseID,
		postedBy: input.PostedBy,
		legs: []leg{
			debitLeg(AccountAchats, input.Total),
			creditLeg(settlement, input.Total),
		},
	})
}

// PostExpenseInput represents an expense to post.
type PostExpenseInput struct {
	ExpenseID string
	Piece     string
	Date      time.Time
	Amount    decimal.Decimal
	Category  string
	Label     string
	PostedBy  string
}

// PostExpense posts an expense: debit the charge account selected from
// the category keywords, credit cash.
func (uc *PostingUseCase) PostExpense(ctx context.Context, input PostExpenseInput) ([]*domain.Entry, error) {
	return uc.postCharge(ctx, domain.ReferenceDepense, input.ExpenseID, input.Piece,
		input.Date, input.Amount, input.Category, input.Label, input.PostedBy)
}

// PostChargeInput represents a recurring charge to post.
type PostChargeInput struct {
	ChargeID string
	Piece    string
	Date     time.Time
	Amount   decimal.Decimal
	Rubric   string
	Label    string
	PostedBy string
}

// PostCharge posts a recurring charge; same shape as an expense but
// tagged with its own reference type.
func (uc *PostingUseCase) PostCharge(ctx context.Context, input PostChargeInput) ([]*domain.Entry, error) {
	return uc.postCharge(ctx, domain.ReferenceCharge, input.ChargeID, input.Piece,
		input.Date, input.Amount, input.Rubric, input.Label, input.PostedBy)
}

func (uc *PostingUseCase) postCharge(
	ctx context.Context,
	refType domain.ReferenceType,
	refID, piece string,
	date time.Time,
	amount decimal.Decimal,
	rubric, label, postedBy string,
) ([]*domain.Entry, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return nil, err
	}

	chargeAccount := ClassifyCharge(rubric)

	if label == "" {
		label = rubric
	}

	return uc.post(ctx, postingSpec{
		journal:  JournalCaisse,
		date:     date,
		piece:    piece,
		label:    label,
		refType:  refType,
		refID:    refID,
		postedBy: postedBy,
		legs: []leg{
			debitLeg(chargeAccount, amount),
			creditLeg(AccountCaisse, amount),
		},
	})
}

// PostCashMovementInput represents a cash-register movement to post.
type PostCashMovementInput struct {
	MovementID string
	Piece      string
	Date       time.Time
	Amount     decimal.Decimal
	Direction  domain.CashMovementDirection
	Label      string
	PostedBy   string
}

// PostCashMovement posts a cash entry or exit: ENTREE debits cash
// against sundry income, SORTIE debits other charges against cash.
func (uc *PostingUseCase) PostCashMovement(ctx context.Context, input PostCashMovementInput) ([]*domain.Entry, error) {
	if !input.Direction.Valid() {
		return nil, domain.ErrUnknownCashMovement
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	var legs []leg
	switch input.Direction {
	case domain.CashEntree:
		legs = []leg{
			debitLeg(AccountCaisse, input.Amount),
			creditLeg(AccountProduitsDivers, input.Amount),
		}
	case domain.CashSortie:
		legs = []leg{
			debitLeg(AccountAutresCharges, input.Amount),
			creditLeg(AccountCaisse, input.Amount),
		}
	}

	label := input.Label
	if label == "" {
		label = fmt.Sprintf("Mouvement de caisse %s", input.Direction)
	}

	return uc.post(ctx, postingSpec{
		journal:  JournalCaisse,
		date:     input.Date,
		piece:    input.Piece,
		label:    label,
		refType:  domain.ReferenceCaisse,
		refID:    input.MovementID,
		postedBy: input.PostedBy,
		legs:     legs,
	})
}

// PostBankOperationInput represents a bank operation to post.
type PostBankOperationInput struct {
	OperationID       string
	Piece             string
	Date              time.Time
	Amount            decimal.Decimal
	Type              domain.BankOperationType
	BankAccountNumber string
	Label             string
	PostedBy          string
}

// PostBankOperation posts a bank operation. One leg is always the bank
// account (512 by default, or the account linked to the bank record);
// the counter-account depends on the operation type.
func (uc *PostingUseCase) PostBankOperation(ctx context.Context, input PostBankOperationInput) ([]*domain.Entry, error) {
	if !input.Type.Valid() {
		return nil, domain.ErrUnknownBankOperation
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if input.BankAccountNumber != "" {
		if err := domain.ValidateAccountNumber(input.BankAccountNumber); err != nil {
			return nil, err
		}
	}

	bank := BankAccountRef(input.BankAccountNumber)

	debitAccount, creditAccount, err := BankOperationLegs(input.Type, bank)
	if err != nil {
		return nil, err
	}

	label := input.Label
	if label == "" {
		label = fmt.Sprintf("Opération bancaire %s", input.Type)
	}

	return uc.post(ctx, postingSpec{
		journal:  JournalBanque,
		date:     input.Date,
		piece:    input.Piece,
		label:    label,
		refType:  domain.ReferenceBanque,
		refID:    input.OperationID,
		postedBy: input.PostedBy,
		legs: []leg{
			debitLeg(debitAccount, input.Amount),
			creditLeg(creditAccount, input.Amount),
		},
	})
}

// PostTransferInput represents an inter-store stock transfer to post.
type PostTransferInput struct {
	TransferID string
	Piece      string
	Date       time.Time
	Value      decimal.Decimal
	FromStore  string
	ToStore    string
	PostedBy   string
}

// PostTransfer records an inter-store movement as a debit/credit pair
// on the same stock account (31). Net effect on the stock balance is
// zero; the pair only leaves a journal trace between the two stores.
// Zero-value transfers post nothing.
func (uc *PostingUseCase) PostTransfer(ctx context.Context, input PostTransferInput) ([]*domain.Entry, error) {
	if input.Value.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	if input.Value.IsZero() {
		return nil, nil
	}

	label := fmt.Sprintf("Transfert de %s vers %s", input.FromStore, input.ToStore)

	return uc.post(ctx, postingSpec{
		journal:  JournalDivers,
		date:     input.Date,
		piece:    input.Piece,
		label:    label,
		refType:  domain.ReferenceTransfert,
		refID:    input.TransferID,
		postedBy: input.PostedBy,
		legs: []leg{
			debitLeg(AccountStock, input.Value),
			creditLeg(AccountStock, input.Value),
		},
	})
}

// DeleteEntriesByReference removes every entry tied to a source
// business record. It is idempotent: deleting a reference that has no
// entries returns 0 and no error.
func (uc *PostingUseCase) DeleteEntriesByReference(ctx context.Context, refType domain.ReferenceType, refID string) (int64, error) {
	if !refType.Valid() {
		return 0, domain.ErrInvalidReferenceType
	}

	if refID == "" {
		return 0, fmt.Errorf("%w: empty reference id", domain.ErrInvalidReferenceType)
	}

	var deleted int64

	err := uc.retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		n, err := uc.entryRepo.DeleteByReference(ctx, tx, refType, refID)
		if err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		deleted = n

		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}
