package usecase

import (
	"context"

	"github.com/sahelretail/compta/internal/domain"
)

// CatalogUseCase exposes read access to the chart of accounts and the
// journal registry. Writes only happen through get-or-create during
// posting and bootstrap.
type CatalogUseCase struct {
	accountRepo AccountRepository
	journalRepo JournalRepository
}

// NewCatalogUseCase creates a new CatalogUseCase.
func NewCatalogUseCase(accountRepo AccountRepository, journalRepo JournalRepository) *CatalogUseCase {
	return &CatalogUseCase{
		accountRepo: accountRepo,
		journalRepo: journalRepo,
	}
}

// ListAccounts lists accounts ordered by number.
func (uc *CatalogUseCase) ListAccounts(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.accountRepo.List(ctx, limit, offset)
}

// GetAccount retrieves one account by number.
func (uc *CatalogUseCase) GetAccount(ctx context.Context, number string) (*domain.Account, error) {
	if err := domain.ValidateAccountNumber(number); err != nil {
		return nil, err
	}

	return uc.accountRepo.GetByNumber(ctx, number)
}

// ListJournals lists journals ordered by code.
func (uc *CatalogUseCase) ListJournals(ctx context.Context, limit, offset int) ([]*domain.Journal, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	return uc.journalRepo.List(ctx, limit, offset)
}

// GetJournal retrieves one journal by code.
func (uc *CatalogUseCase) GetJournal(ctx context.Context, code string) (*domain.Journal, error) {
	if code == "" {
		return nil, domain.ErrInvalidJournalCode
	}

	return uc.journalRepo.GetByCode(ctx, code)
}
