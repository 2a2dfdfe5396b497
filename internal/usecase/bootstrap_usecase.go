package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/sahelretail/compta/internal/domain"
)

// DefaultJournals are the standard journals seeded at startup.
var DefaultJournals = []JournalRef{
	JournalVentes,
	JournalAchats,
	JournalCaisse,
	JournalBanque,
	JournalDivers,
}

// DefaultAccounts are the core chart-of-accounts entries the posting
// rules reference, seeded so fixed references always resolve.
var DefaultAccounts = []AccountRef{
	AccountStock,
	AccountFournisseur,
	AccountClient,
	AccountBanque,
	{Number: "513", Label: "Chèques postaux", Type: domain.AccountTypeActif},
	{Number: "514", Label: "Autres établissements financiers", Type: domain.AccountTypeActif},
	AccountCaisse,
	AccountAchats,
	AccountAutresCharges,
	AccountVentes,
	AccountProduitsDivers,
}

// BootstrapUseCase seeds the standard journals and core accounts.
type BootstrapUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	journalRepo JournalRepository
}

// NewBootstrapUseCase creates a new BootstrapUseCase.
func NewBootstrapUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	journalRepo JournalRepository,
) *BootstrapUseCase {
	return &BootstrapUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

// InitializeDefaults get-or-creates the standard journals (VE, AC, CA,
// BA, OD) and core accounts. Idempotent: re-running changes nothing.
func (uc *BootstrapUseCase) InitializeDefaults(ctx context.Context) error {
	now := time.Now().UTC()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, ref := range DefaultJournals {
		journal, err := domain.NewJournal(ref.Code, ref.Label, ref.Type, now)
		if err != nil {
			return err
		}

		if _, err := uc.journalRepo.GetOrCreate(ctx, tx, journal); err != nil {
			return fmt.Errorf("seed journal %s: %w", ref.Code, err)
		}
	}

	for _, ref := range DefaultAccounts {
		account, err := domain.NewAccount(ref.Number, ref.Label, ref.Type, now)
		if err != nil {
			return err
		}

		if _, err := uc.accountRepo.GetOrCreate(ctx, tx, account); err != nil {
			return fmt.Errorf("seed account %s: %w", ref.Number, err)
		}
	}

	return tx.Commit(ctx)
}
