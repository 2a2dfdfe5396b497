package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahelretail/compta/internal/domain"
	"github.com/sahelretail/compta/internal/usecase"
	"github.com/sahelretail/compta/internal/usecase/mocks"
)

func seedLedgerEntries(t *testing.T, repo *mocks.MockEntryRepository) {
	t.Helper()

	entries := []*domain.Entry{
		{
			ID: "e1", EntryDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			JournalCode: "VE", AccountNumber: "531", Label: "Vente 1",
			Debit: decimal.NewFromInt(10000), Credit: decimal.Zero,
		},
		{
			ID: "e2", EntryDate: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC),
			JournalCode: "VE", AccountNumber: "701", Label: "Vente 1",
			Debit: decimal.Zero, Credit: decimal.NewFromInt(10000),
		},
		{
			ID: "e3", EntryDate: time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
			JournalCode: "CA", AccountNumber: "531", Label: "Dépense loyer",
			Debit: decimal.Zero, Credit: decimal.NewFromInt(2000),
		},
		{
			ID: "e4", EntryDate: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
			JournalCode: "VE", AccountNumber: "531", Label: "Hors période",
			Debit: decimal.NewFromInt(999), Credit: decimal.Zero,
		},
	}

	for _, e := range entries {
		require.NoError(t, repo.Create(context.Background(), nil, e))
	}
}

func TestLedger(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	accountRepo := mocks.NewMockAccountRepository()
	seedLedgerEntries(t, entryRepo)

	now := time.Now().UTC()
	caisse, _ := domain.NewAccount("531", "Caisse", domain.AccountTypeActif, now)
	_, err := accountRepo.GetOrCreate(context.Background(), nil, caisse)
	require.NoError(t, err)

	uc := usecase.NewLedgerUseCase(entryRepo, accountRepo)

	sections, err := uc.Ledger(context.Background(), usecase.LedgerInput{
		PeriodStart: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, sections, 2, "only accounts with activity in range appear")

	// Sections sorted by account number: 531 then 701.
	caisseSection := sections[0]
	assert.Equal(t, "531", caisseSection.AccountNumber)
	assert.Equal(t, "Caisse", caisseSection.AccountLabel)
	assert.Equal(t, "5", caisseSection.Class)
	require.Len(t, caisseSection.Entries, 2)

	// Entries sorted by date ascending.
	assert.Equal(t, "e3", caisseSection.Entries[0].ID)
	assert.Equal(t, "e1", caisseSection.Entries[1].ID)

	assert.True(t, caisseSection.SoldeDebit.Equal(decimal.NewFromInt(10000)))
	assert.True(t, caisseSection.SoldeCredit.Equal(decimal.NewFromInt(2000)))
	assert.True(t, caisseSection.Solde.Equal(decimal.NewFromInt(8000)), "solde is debit-positive")

	ventes := sections[1]
	assert.Equal(t, "701", ventes.AccountNumber)
	assert.True(t, ventes.Solde.Equal(decimal.NewFromInt(-10000)))
}

func TestLedgerAccountFilter(t *testing.T) {
	entryRepo := mocks.NewMockEntryRepository()
	accountRepo := mocks.NewMockAccountRepository()
	seedLedgerEntries(t, entryRepo)

	uc := usecase.NewLedgerUseCase(entryRepo, accountRepo)

	sections, err := uc.Ledger(context.Background(), usecase.LedgerInput{
		PeriodStart:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		AccountNumber: "701",
	})
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "701", sections[0].AccountNumber)
}

func TestLedgerInvalidInput(t *testing.T) {
	uc := usecase.NewLedgerUseCase(mocks.NewMockEntryRepository(), mocks.NewMockAccountRepository())

	_, err := uc.Ledger(context.Background(), usecase.LedgerInput{
		PeriodStart: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidPeriod)

	_, err = uc.Ledger(context.Background(), usecase.LedgerInput{
		PeriodStart:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:     time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		AccountNumber: "ABC",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAccountNumber)
}
