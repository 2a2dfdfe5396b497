package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahelretail/compta/internal/domain"
)

// AccountRepository defines data access for the chart of accounts.
type AccountRepository interface {
	// GetOrCreate looks up an account by number, creating it with the
	// supplied defaults if absent. A concurrent create racing on the
	// unique number must be resolved by re-reading, never surfaced as
	// a hard error.
	GetOrCreate(ctx context.Context, tx Transaction, account *domain.Account) (*domain.Account, error)
	GetByNumber(ctx context.Context, number string) (*domain.Account, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

// JournalRepository defines data access for journals.
type JournalRepository interface {
	GetOrCreate(ctx context.Context, tx Transaction, journal *domain.Journal) (*domain.Journal, error)
	GetByCode(ctx context.Context, code string) (*domain.Journal, error)
	List(ctx context.Context, limit, offset int) ([]*domain.Journal, error)
}

// EntryRepository defines data access for accounting entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.Entry) error
	ListByPeriod(ctx context.Context, start, end time.Time, accountNumber string) ([]*domain.Entry, error)
	ListByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]*domain.Entry, error)
	ExistsByReference(ctx context.Context, refType domain.ReferenceType, refID string) (bool, error)
	DeleteByReference(ctx context.Context, tx Transaction, refType domain.ReferenceType, refID string) (int64, error)
}

// AccountActivity is one account's aggregated debit and credit totals
// over a period.
type AccountActivity struct {
	AccountNumber string
	AccountLabel  string
	Class         string
	TotalDebit    decimal.Decimal
	TotalCredit   decimal.Decimal
}

// BalanceRepository defines the aggregation queries behind the trial
// balance.
type BalanceRepository interface {
	AccountTotals(ctx context.Context, start, end time.Time) ([]*AccountActivity, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique, time-ordered entry identifiers.
type IDGenerator interface {
	Generate() string
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// Cache defines caching operations for report results.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
