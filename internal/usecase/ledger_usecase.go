package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahelretail/compta/internal/domain"
)

// LedgerUseCase builds the grand livre: per-account chronological
// entry listings with period totals.
type LedgerUseCase struct {
	entryRepo   EntryRepository
	accountRepo AccountRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(entryRepo EntryRepository, accountRepo AccountRepository) *LedgerUseCase {
	return &LedgerUseCase{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
	}
}

// LedgerInput represents a grand livre query.
type LedgerInput struct {
	PeriodStart   time.Time
	PeriodEnd     time.Time
	AccountNumber string
}

// LedgerAccount is one account's section of the grand livre: entries
// sorted by date with the period's debit/credit totals. Solde is
// debit-positive; sign is not flipped per account type.
type LedgerAccount struct {
	AccountNumber string
	AccountLabel  string
	Class         string
	Entries       []*domain.Entry
	SoldeDebit    decimal.Decimal
	SoldeCredit   decimal.Decimal
	Solde         decimal.Decimal
}

// Ledger returns one section per account with at least one entry in
// the period, sorted by account number. Accounts without activity are
// omitted.
func (uc *LedgerUseCase) Ledger(ctx context.Context, input LedgerInput) ([]*LedgerAccount, error) {
	if err := domain.ValidatePeriod(input.PeriodStart, input.PeriodEnd); err != nil {
		return nil, err
	}

	if input.AccountNumber != "" {
		if err := domain.ValidateAccountNumber(input.AccountNumber); err != nil {
			return nil, err
		}
	}

	entries, err := uc.entryRepo.ListByPeriod(ctx, input.PeriodStart, input.PeriodEnd, input.AccountNumber)
	if err != nil {
		return nil, err
	}

	labels, err := uc.accountLabels(ctx)
	if err != nil {
		return nil, err
	}

	sections := make(map[string]*LedgerAccount)

	var numbers []string
	for _, entry := range entries {
		section, ok := sections[entry.AccountNumber]
		if !ok {
			section = &LedgerAccount{
				AccountNumber: entry.AccountNumber,
				AccountLabel:  labels[entry.AccountNumber],
				Class:         domain.AccountClass(entry.AccountNumber),
				SoldeDebit:    decimal.Zero,
				SoldeCredit:   decimal.Zero,
			}
			sections[entry.AccountNumber] = section
			numbers = append(numbers, entry.AccountNumber)
		}

		section.Entries = append(section.Entries, entry)
		section.SoldeDebit = section.SoldeDebit.Add(entry.Debit)
		section.SoldeCredit = section.SoldeCredit.Add(entry.Credit)
	}

	sort.Strings(numbers)

	result := make([]*LedgerAccount, 0, len(numbers))
	for _, number := range numbers {
		section := sections[number]
		section.Solde = section.SoldeDebit.Sub(section.SoldeCredit)

		sort.SliceStable(section.Entries, func(i, j int) bool {
			return section.Entries[i].EntryDate.Before(section.Entries[j].EntryDate)
		})

		result = append(result, section)
	}

	return result, nil
}

func (uc *LedgerUseCase) accountLabels(ctx context.Context) (map[string]string, error) {
	limit, offset := domain.ValidatePagination(1000, 0)

	accounts, err := uc.accountRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	labels := make(map[string]string, len(accounts))
	for _, a := range accounts {
		labels[a.Number] = a.Label
	}

	return labels, nil
}
