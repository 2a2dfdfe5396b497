package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahelretail/compta/internal/domain"
)

// ErrUnbalancedLedger is returned when the trial balance does not
// reconcile to zero. It always indicates a posting defect: an
// unbalanced event was committed.
var ErrUnbalancedLedger = errors.New("trial balance is not balanced: debits do not equal credits")

// balanceCacheTTL bounds staleness of cached trial balances.
const balanceCacheTTL = 30 * time.Second

// BalanceUseCase builds the trial balance (balance générale) over a
// period.
type BalanceUseCase struct {
	balanceRepo BalanceRepository
	cache       Cache
}

// NewBalanceUseCase creates a new BalanceUseCase. The cache is
// optional; pass nil to disable report caching.
func NewBalanceUseCase(balanceRepo BalanceRepository, cache Cache) *BalanceUseCase {
	return &BalanceUseCase{
		balanceRepo: balanceRepo,
		cache:       cache,
	}
}

// BalanceRow is one account's line of the trial balance. Solde uses
// the same debit-positive convention as the grand livre.
type BalanceRow struct {
	AccountNumber string          `json:"account_number"`
	AccountLabel  string          `json:"account_label"`
	Class         string          `json:"class"`
	SoldeDebit    decimal.Decimal `json:"solde_debit"`
	SoldeCredit   decimal.Decimal `json:"solde_credit"`
	Solde         decimal.Decimal `json:"solde"`
}

// ClassTotals aggregates balance rows per SYSCOHADA class digit.
type ClassTotals struct {
	Class       string          `json:"class"`
	SoldeDebit  decimal.Decimal `json:"solde_debit"`
	SoldeCredit decimal.Decimal `json:"solde_credit"`
	Solde       decimal.Decimal `json:"solde"`
}

// TrialBalance is the full balance over a period. Ecart is the global
// debit/credit difference; a nonzero value is surfaced, never silently
// dropped.
type TrialBalance struct {
	Rows        []BalanceRow    `json:"rows"`
	Classes     []ClassTotals   `json:"classes"`
	TotalDebit  decimal.Decimal `json:"total_debit"`
	TotalCredit decimal.Decimal `json:"total_credit"`
	Ecart       decimal.Decimal `json:"ecart"`
	Balanced    bool            `json:"balanced"`
}

// Balance computes the trial balance for the period: one row per
// account with nonzero activity, class subtotals, and the global
// debit/credit totals.
func (uc *BalanceUseCase) Balance(ctx context.Context, start, end time.Time) (*TrialBalance, error) {
	if err := domain.ValidatePeriod(start, end); err != nil {
		return nil, err
	}

	cacheKey := balanceCacheKey(start, end)

	if cached := uc.fromCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	activities, err := uc.balanceRepo.AccountTotals(ctx, start, end)
	if err != nil {
		return nil, err
	}

	balance := buildTrialBalance(activities)

	uc.toCache(ctx, cacheKey, balance)

	return balance, nil
}

// CheckConsistency verifies the core invariant totalDebit ==
// totalCredit over the period, returning ErrUnbalancedLedger with the
// écart when it does not hold.
func (uc *BalanceUseCase) CheckConsistency(ctx context.Context, start, end time.Time) error {
	balance, err := uc.Balance(ctx, start, end)
	if err != nil {
		return err
	}

	if !balance.Balanced {
		return fmt.Errorf("%w: écart %s", ErrUnbalancedLedger, balance.Ecart.String())
	}

	return nil
}

func buildTrialBalance(activities []*AccountActivity) *TrialBalance {
	balance := &TrialBalance{
		Rows:        make([]BalanceRow, 0, len(activities)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}

	classes := make(map[string]*ClassTotals)

	var classKeys []string
	for _, activity := range activities {
		row := BalanceRow{
			AccountNumber: activity.AccountNumber,
			AccountLabel:  activity.AccountLabel,
			Class:         activity.Class,
			SoldeDebit:    activity.TotalDebit,
			SoldeCredit:   activity.TotalCredit,
			Solde:         activity.TotalDebit.Sub(activity.TotalCredit),
		}

		balance.Rows = append(balance.Rows, row)
		balance.TotalDebit = balance.TotalDebit.Add(row.SoldeDebit)
		balance.TotalCredit = balance.TotalCredit.Add(row.SoldeCredit)

		totals, ok := classes[row.Class]
		if !ok {
			totals = &ClassTotals{
				Class:       row.Class,
				SoldeDebit:  decimal.Zero,
				SoldeCredit: decimal.Zero,
			}
			classes[row.Class] = totals
			classKeys = append(classKeys, row.Class)
		}

		totals.SoldeDebit = totals.SoldeDebit.Add(row.SoldeDebit)
		totals.SoldeCredit = totals.SoldeCredit.Add(row.SoldeCredit)
	}

	sort.Slice(balance.Rows, func(i, j int) bool {
		return balance.Rows[i].AccountNumber < balance.Rows[j].AccountNumber
	})

	sort.Strings(classKeys)

	for _, key := range classKeys {
		totals := classes[key]
		totals.Solde = totals.SoldeDebit.Sub(totals.SoldeCredit)
		balance.Classes = append(balance.Classes, *totals)
	}

	balance.Ecart = balance.TotalDebit.Sub(balance.TotalCredit)
	balance.Balanced = balance.Ecart.IsZero()

	return balance
}

func balanceCacheKey(start, end time.Time) string {
	return fmt.Sprintf("balance:%d:%d", start.Unix(), end.Unix())
}

func (uc *BalanceUseCase) fromCache(ctx context.Context, key string) *TrialBalance {
	if uc.cache == nil {
		return nil
	}

	raw, err := uc.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return nil
	}

	var balance TrialBalance
	if err := json.Unmarshal([]byte(raw), &balance); err != nil {
		return nil
	}

	return &balance
}

func (uc *BalanceUseCase) toCache(ctx context.Context, key string, balance *TrialBalance) {
	if uc.cache == nil {
		return
	}

	raw, err := json.Marshal(balance)
	if err != nil {
		return
	}

	// Best effort.
	_ = uc.cache.Set(ctx, key, string(raw), balanceCacheTTL)
}
