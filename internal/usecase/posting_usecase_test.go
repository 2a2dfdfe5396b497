package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahelretail/compta/internal/domain"
	"github.com/sahelretail/compta/internal/usecase"
	"github.com/sahelretail/compta/internal/usecase/mocks"
)

type postingFixture struct {
	txManager   *mocks.MockTransactionManager
	accountRepo *mocks.MockAccountRepository
	journalRepo *mocks.MockJournalRepository
	entryRepo   *mocks.MockEntryRepository
	uc          *usecase.PostingUseCase
}

func newPostingFixture() *postingFixture {
	f := &postingFixture{
		txManager:   mocks.NewMockTransactionManager(),
		accountRepo: mocks.NewMockAccountRepository(),
		journalRepo: mocks.NewMockJournalRepository(),
		entryRepo:   mocks.NewMockEntryRepository(),
	}

	f.uc = usecase.NewPostingUseCase(
		f.txManager,
		f.accountRepo,
		f.journalRepo,
		f.entryRepo,
		mocks.NewMockIDGenerator(),
		mocks.NewMockRetrier(),
	)

	return f
}

func assertBalanced(t *testing.T, entries []*domain.Entry, amount decimal.Decimal) {
	t.Helper()

	totalDebit, totalCredit := domain.SumEntries(entries)
	assert.True(t, totalDebit.Equal(amount), "total debit %s, want %s", totalDebit, amount)
	assert.True(t, totalCredit.Equal(amount), "total credit %s, want %s", totalCredit, amount)
}

func findLeg(entries []*domain.Entry, account string, debit bool) *domain.Entry {
	for _, e := range entries {
		if e.AccountNumber != account {
			continue
		}

		if debit && !e.Debit.IsZero() {
			return e
		}

		if !debit && !e.Credit.IsZero() {
			return e
		}
	}

	return nil
}

func TestPostSaleCash(t *testing.T) {
	// Scenario: sale of 10,000 paid cash posts debit Caisse(531),
	// credit Ventes(701).
	f := newPostingFixture()

	entries, err := f.uc.PostSale(context.Background(), usecase.PostSaleInput{
		SaleID:      "sale-1",
		Piece:       "FV-2025-001",
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Total:       decimal.NewFromInt(10000),
		PaymentMode: domain.PaymentEspeces,
		PostedBy:    "user-1",
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assertBalanced(t, entries, decimal.NewFromInt(10000))

	debit := findLeg(entries, "531", true)
	require.NotNil(t, debit, "expected a debit on 531")
	assert.True(t, debit.Debit.Equal(decimal.NewFromInt(10000)))

	credit := findLeg(entries, "701", false)
	require.NotNil(t, credit, "expected a credit on 701")
	assert.True(t, credit.Credit.Equal(decimal.NewFromInt(10000)))

	for _, e := range entries {
		assert.Equal(t, domain.JournalCodeVentes, e.JournalCode)
		assert.Equal(t, "FV-2025-001", e.Piece)
		assert.Equal(t, domain.ReferenceVente, e.ReferenceType)
		assert.Equal(t, "sale-1", e.ReferenceID)
		assert.Equal(t, "user-1", e.PostedBy)
	}

	// Entries are committed, not just staged.
	assert.Len(t, f.entryRepo.Entries(), 2)
}

func TestPostSaleOnCredit(t *testing.T) {
	f := newPostingFixture()

	entries, err := f.uc.PostSale(context.Background(), usecase.PostSaleInput{
		SaleID:      "sale-2",
		Total:       decimal.NewFromInt(7500),
		PaymentMode: domain.PaymentCredit,
		ClientID:    "client-9",
		PostedBy:    "user-1",
	})
	require.NoError(t, err)

	require.NotNil(t, findLeg(entries, "411", true), "credit sale should debit Clients(411)")
	require.NotNil(t, findLeg(entries, "701", false))
}

func TestPostPurchaseOnCredit(t *testing.T) {
	// Scenario: purchase of 5,000 on credit posts debit Achats(601),
	// credit Fournisseurs(401).
	f := newPostingFixture()

	entries, err := f.uc.PostPurchase(context.Background(), usecase.PostPurchaseInput{
		PurchaseID:  "purchase-1",
		Piece:       "FA-2025-017",
		Total:       decimal.NewFromInt(5000),
		PaymentMode: domain.PaymentCredit,
		SupplierID:  "supplier-3",
		PostedBy:    "user-2",
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assertBalanced(t, entries, decimal.NewFromInt(5000))
	require.NotNil(t, findLeg(entries, "601", true))
	require.NotNil(t, findLeg(entries, "401", false))

	for _, e := range entries {
		assert.Equal(t, domain.JournalCodeAchats, e.JournalCode)
		assert.Equal(t, domain.ReferenceAchat, e.ReferenceType)
	}
}

func TestPostExpenseLoyer(t *testing.T) {
	// Scenario: expense categorized "Loyer boutique" posts debit 613,
	// credit Caisse(531).
	f := newPostingFixture()

	entries, err := f.uc.PostExpense(context.Background(), usecase.PostExpenseInput{
		ExpenseID: "expense-1",
		Amount:    decimal.NewFromInt(2000),
		Category:  "Loyer boutique",
		PostedBy:  "user-1",
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assertBalanced(t, entries, decimal.NewFromInt(2000))
	require.NotNil(t, findLeg(entries, "613", true))
	require.NotNil(t, findLeg(entries, "531", false))

	// The charge account is created on first reference.
	acc, err := f.accountRepo.GetByNumber(context.Background(), "613")
	require.NoError(t, err)
	assert.Equal(t, "Loyers", acc.Label)
	assert.Equal(t, domain.AccountTypeCharges, acc.Type)
}

func TestPostChargeFallback(t *testing.T) {
	f := newPostingFixture()

	entries, err := f.uc.PostCharge(context.Background(), usecase.PostChargeInput{
		ChargeID: "charge-1",
		Amount:   decimal.NewFromInt(300),
		Rubric:   "Fournitures diverses",
		PostedBy: "user-1",
	})
	require.NoError(t, err)

	require.NotNil(t, findLeg(entries, "658", true), "unmatched rubric should debit 658")

	for _, e := range entries {
		assert.Equal(t, domain.ReferenceCharge, e.ReferenceType)
	}
}

func TestPostCashMovement(t *testing.T) {
	f := newPostingFixture()

	entree, err := f.uc.PostCashMovement(context.Background(), usecase.PostCashMovementInput{
		MovementID: "mv-1",
		Amount:     decimal.NewFromInt(1200),
		Direction:  domain.CashEntree,
		PostedBy:   "user-1",
	})
	require.NoError(t, err)
	require.NotNil(t, findLeg(entree, "531", true))
	require.NotNil(t, findLeg(entree, "758", false))

	sortie, err := f.uc.PostCashMovement(context.Background(), usecase.PostCashMovementInput{
		MovementID: "mv-2",
		Amount:     decimal.NewFromInt(800),
		Direction:  domain.CashSortie,
		PostedBy:   "user-1",
	})
	require.NoError(t, err)
	require.NotNil(t, findLeg(sortie, "658", true))
	require.NotNil(t, findLeg(sortie, "531", false))

	_, err = f.uc.PostCashMovement(context.Background(), usecase.PostCashMovementInput{
		MovementID: "mv-3",
		Amount:     decimal.NewFromInt(100),
		Direction:  "LATERAL",
		PostedBy:   "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownCashMovement)
}

func TestPostBankOperationDepot(t *testing.T) {
	// Scenario: bank DEPOT of 3,000 posts debit bank, credit Produits
	// divers(758).
	f := newPostingFixture()

	entries, err := f.uc.PostBankOperation(context.Background(), usecase.PostBankOperationInput{
		OperationID: "op-1",
		Amount:      decimal.NewFromInt(3000),
		Type:        domain.BankDepot,
		PostedBy:    "user-1",
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assertBalanced(t, entries, decimal.NewFromInt(3000))
	require.NotNil(t, findLeg(entries, "512", true))
	require.NotNil(t, findLeg(entries, "758", false))

	for _, e := range entries {
		assert.Equal(t, domain.JournalCodeBanque, e.JournalCode)
		assert.Equal(t, domain.ReferenceBanque, e.ReferenceType)
	}
}

func TestPostBankOperationLinkedAccount(t *testing.T) {
	f := newPostingFixture()

	entries, err := f.uc.PostBankOperation(context.Background(), usecase.PostBankOperationInput{
		OperationID:       "op-2",
		Amount:            decimal.NewFromInt(500),
		Type:              domain.BankRetrait,
		BankAccountNumber: "514",
		PostedBy:          "user-1",
	})
	require.NoError(t, err)

	require.NotNil(t, findLeg(entries, "531", true))
	require.NotNil(t, findLeg(entries, "514", false), "linked bank account should carry the credit leg")
}

func TestPostBankOperationUnknownType(t *testing.T) {
	f := newPostingFixture()

	_, err := f.uc.PostBankOperation(context.Background(), usecase.PostBankOperationInput{
		OperationID: "op-3",
		Amount:      decimal.NewFromInt(500),
		Type:        "CHEQUE",
		PostedBy:    "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrUnknownBankOperation)
	assert.Empty(t, f.entryRepo.Entries())
}

func TestPostTransfer(t *testing.T) {
	// Scenario: transfer of 1,500 between stores posts debit 31 and
	// credit 31 for the same amount: net zero, two rows, same piece.
	f := newPostingFixture()

	entries, err := f.uc.PostTransfer(context.Background(), usecase.PostTransferInput{
		TransferID: "tr-1",
		Piece:      "TR-2025-004",
		Value:      decimal.NewFromInt(1500),
		FromStore:  "Boutique Centre",
		ToStore:    "Boutique Marché",
		PostedBy:   "user-1",
	})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assertBalanced(t, entries, decimal.NewFromInt(1500))
	require.NotNil(t, findLeg(entries, "31", true))
	require.NotNil(t, findLeg(entries, "31", false))

	for _, e := range entries {
		assert.Equal(t, "TR-2025-004", e.Piece)
		assert.Contains(t, e.Label, "Boutique Centre")
		assert.Contains(t, e.Label, "Boutique Marché")
	}
}

func TestPostTransferZeroValue(t *testing.T) {
	f := newPostingFixture()

	entries, err := f.uc.PostTransfer(context.Background(), usecase.PostTransferInput{
		TransferID: "tr-2",
		Value:      decimal.Zero,
		PostedBy:   "user-1",
	})
	require.NoError(t, err)
	assert.Nil(t, entries, "zero-value transfer should post nothing")
	assert.Empty(t, f.entryRepo.Entries())

	_, err = f.uc.PostTransfer(context.Background(), usecase.PostTransferInput{
		TransferID: "tr-3",
		Value:      decimal.NewFromInt(-10),
		PostedBy:   "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestPostingRejectsInvalidInput(t *testing.T) {
	f := newPostingFixture()

	_, err := f.uc.PostSale(context.Background(), usecase.PostSaleInput{
		SaleID:   "sale-x",
		Total:    decimal.Zero,
		PostedBy: "user-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.uc.PostSale(context.Background(), usecase.PostSaleInput{
		SaleID: "sale-y",
		Total:  decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrMissingPostingUser)

	assert.Empty(t, f.entryRepo.Entries())
}

func TestPostingAtomicity(t *testing.T) {
	// A failure on the second leg must leave no committed entries.
	f := newPostingFixture()

	insertErr := errors.New("insert failed")
	calls := 0
	f.entryRepo.CreateFunc = func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
		calls++
		if calls == 2 {
			return insertErr
		}

		if mtx, ok := tx.(*mocks.MockTransaction); ok {
			mtx.OnCommit(func() {})
		}

		return nil
	}

	_, err := f.uc.PostSale(context.Background(), usecase.PostSaleInput{
		SaleID:   "sale-fail",
		Total:    decimal.NewFromInt(100),
		PostedBy: "user-1",
	})
	require.ErrorIs(t, err, insertErr)

	assert.Empty(t, f.entryRepo.Entries())

	require.Len(t, f.txManager.Transactions, 1)
	tx := f.txManager.Transactions[0]
	assert.False(t, tx.Committed)
	assert.True(t, tx.RolledBack)
}

func TestDeleteEntriesByReference(t *testing.T) {
	// Scenario: cancelling a sale removes exactly its two entries; the
	// second delete is a no-op.
	f := newPostingFixture()
	ctx := context.Background()

	_, err := f.uc.PostSale(ctx, usecase.PostSaleInput{
		SaleID:   "sale-1",
		Total:    decimal.NewFromInt(10000),
		PostedBy: "user-1",
	})
	require.NoError(t, err)

	_, err = f.uc.PostSale(ctx, usecase.PostSaleInput{
		SaleID:   "sale-2",
		Total:    decimal.NewFromInt(4000),
		PostedBy: "user-1",
	})
	require.NoError(t, err)

	deleted, err := f.uc.DeleteEntriesByReference(ctx, domain.ReferenceVente, "sale-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	deleted, err = f.uc.DeleteEntriesByReference(ctx, domain.ReferenceVente, "sale-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted, "second delete should be a no-op")

	// The other sale's entries are untouched.
	assert.Len(t, f.entryRepo.Entries(), 2)

	_, err = f.uc.DeleteEntriesByReference(ctx, "FACTURE", "sale-1")
	assert.ErrorIs(t, err, domain.ErrInvalidReferenceType)

	_, err = f.uc.DeleteEntriesByReference(ctx, domain.ReferenceVente, "")
	assert.ErrorIs(t, err, domain.ErrInvalidReferenceType)
}

func TestEveryPostingKindBalances(t *testing.T) {
	f := newPostingFixture()
	ctx := context.Background()
	amount := decimal.NewFromInt(2500)

	postings := []struct {
		name string
		post func() ([]*domain.Entry, error)
	}{
		{"sale", func() ([]*domain.Entry, error) {
			return f.uc.PostSale(ctx, usecase.PostSaleInput{SaleID: "s", Total: amount, PostedBy: "u"})
		}},
		{"purchase", func() ([]*domain.Entry, error) {
			return f.uc.PostPurchase(ctx, usecase.PostPurchaseInput{PurchaseID: "p", Total: amount, PostedBy: "u"})
		}},
		{"expense", func() ([]*domain.Entry, error) {
			return f.uc.PostExpense(ctx, usecase.PostExpenseInput{ExpenseID: "e", Amount: amount, Category: "Transport", PostedBy: "u"})
		}},
		{"charge", func() ([]*domain.Entry, error) {
			return f.uc.PostCharge(ctx, usecase.PostChargeInput{ChargeID: "c", Amount: amount, Rubric: "Salaire", PostedBy: "u"})
		}},
		{"cash movement", func() ([]*domain.Entry, error) {
			return f.uc.PostCashMovement(ctx, usecase.PostCashMovementInput{MovementID: "m", Amount: amount, Direction: domain.CashEntree, PostedBy: "u"})
		}},
		{"bank operation", func() ([]*domain.Entry, error) {
			return f.uc.PostBankOperation(ctx, usecase.PostBankOperationInput{OperationID: "b", Amount: amount, Type: domain.BankVirementSortant, PostedBy: "u"})
		}},
		{"transfer", func() ([]*domain.Entry, error) {
			return f.uc.PostTransfer(ctx, usecase.PostTransferInput{TransferID: "t", Value: amount, FromStore: "A", ToStore: "B", PostedBy: "u"})
		}},
	}

	for _, tt := range postings {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := tt.post()
			require.NoError(t, err)
			assertBalanced(t, entries, amount)
		})
	}
}
