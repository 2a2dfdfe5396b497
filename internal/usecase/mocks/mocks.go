// Package mocks provides hand-rolled in-memory implementations of the
// usecase interfaces for unit tests.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahelretail/compta/internal/domain"
	"github.com/sahelretail/compta/internal/usecase"
)

// MockTransaction tracks commit/rollback state. Writes staged through
// OnCommit are applied only when the transaction commits, so tests can
// verify the all-or-nothing posting contract.
type MockTransaction struct {
	mu          sync.Mutex
	Committed   bool
	RolledBack  bool
	commitHooks []func()

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

// OnCommit registers a hook applied when the transaction commits.
func (t *MockTransaction) OnCommit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.commitHooks = append(t.commitHooks, fn)
}

func (t *MockTransaction) Commit(ctx context.Context) error {
	if t.CommitFunc != nil {
		return t.CommitFunc(ctx)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.Committed = true
	for _, fn := range t.commitHooks {
		fn()
	}
	t.commitHooks = nil

	return nil
}

func (t *MockTransaction) Rollback(ctx context.Context) error {
	if t.RollbackFunc != nil {
		return t.RollbackFunc(ctx)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.Committed {
		t.RolledBack = true
		t.commitHooks = nil
	}

	return nil
}

// MockTransactionManager hands out MockTransactions.
type MockTransactionManager struct {
	mu           sync.Mutex
	Transactions []*MockTransaction

	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}

	tx := &MockTransaction{}

	m.mu.Lock()
	m.Transactions = append(m.Transactions, tx)
	m.mu.Unlock()

	return tx, nil
}

// MockAccountRepository is an in-memory AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	GetOrCreateFunc func(ctx context.Context, tx usecase.Transaction, account *domain.Account) (*domain.Account, error)
	GetByNumberFunc func(ctx context.Context, number string) (*domain.Account, error)
	ListFunc        func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*domain.Account)}
}

func (m *MockAccountRepository) GetOrCreate(ctx context.Context, tx usecase.Transaction, account *domain.Account) (*domain.Account, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, tx, account)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.accounts[account.Number]; ok {
		return existing, nil
	}

	stored := *account
	m.accounts[account.Number] = &stored

	return &stored, nil
}

func (m *MockAccountRepository) GetByNumber(ctx context.Context, number string) (*domain.Account, error) {
	if m.GetByNumberFunc != nil {
		return m.GetByNumberFunc(ctx, number)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if acc, ok := m.accounts[number]; ok {
		return acc, nil
	}

	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	accounts := make([]*domain.Account, 0, len(m.accounts))
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}

	return accounts, nil
}

// MockJournalRepository is an in-memory JournalRepository.
type MockJournalRepository struct {
	mu       sync.RWMutex
	journals map[string]*domain.Journal

	GetOrCreateFunc func(ctx context.Context, tx usecase.Transaction, journal *domain.Journal) (*domain.Journal, error)
	GetByCodeFunc   func(ctx context.Context, code string) (*domain.Journal, error)
	ListFunc        func(ctx context.Context, limit, offset int) ([]*domain.Journal, error)
}

func NewMockJournalRepository() *MockJournalRepository {
	return &MockJournalRepository{journals: make(map[string]*domain.Journal)}
}

func (m *MockJournalRepository) GetOrCreate(ctx context.Context, tx usecase.Transaction, journal *domain.Journal) (*domain.Journal, error) {
	if m.GetOrCreateFunc != nil {
		return m.GetOrCreateFunc(ctx, tx, journal)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.journals[journal.Code]; ok {
		return existing, nil
	}

	stored := *journal
	m.journals[journal.Code] = &stored

	return &stored, nil
}

func (m *MockJournalRepository) GetByCode(ctx context.Context, code string) (*domain.Journal, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if j, ok := m.journals[code]; ok {
		return j, nil
	}

	return nil, domain.ErrJournalNotFound
}

func (m *MockJournalRepository) List(ctx context.Context, limit, offset int) ([]*domain.Journal, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	journals := make([]*domain.Journal, 0, len(m.journals))
	for _, j := range m.journals {
		journals = append(journals, j)
	}

	return journals, nil
}

// MockEntryRepository is an in-memory EntryRepository. Creates and
// deletes made through a MockTransaction are applied on commit only.
type MockEntryRepository struct {
	mu      sync.RWMutex
	entries []*domain.Entry

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error
	ListByPeriodFunc      func(ctx context.Context, start, end time.Time, accountNumber string) ([]*domain.Entry, error)
	ListByReferenceFunc   func(ctx context.Context, refType domain.ReferenceType, refID string) ([]*domain.Entry, error)
	ExistsByReferenceFunc func(ctx context.Context, refType domain.ReferenceType, refID string) (bool, error)
	DeleteByReferenceFunc func(ctx context.Context, tx usecase.Transaction, refType domain.ReferenceType, refID string) (int64, error)
}

func NewMockEntryRepository() *MockEntryRepository {
	return &MockEntryRepository{}
}

// Entries returns a snapshot of the committed entries.
func (m *MockEntryRepository) Entries() []*domain.Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Entry, len(m.entries))
	copy(out, m.entries)

	return out
}

func (m *MockEntryRepository) append(entry *domain.Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
}

func (m *MockEntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}

	if mtx, ok := tx.(*MockTransaction); ok && mtx != nil {
		mtx.OnCommit(func() { m.append(entry) })
		return nil
	}

	m.append(entry)

	return nil
}

func (m *MockEntryRepository) ListByPeriod(ctx context.Context, start, end time.Time, accountNumber string) ([]*domain.Entry, error) {
	if m.ListByPeriodFunc != nil {
		return m.ListByPeriodFunc(ctx, start, end, accountNumber)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Entry
	for _, e := range m.entries {
		if e.EntryDate.Before(start) || e.EntryDate.After(end) {
			continue
		}

		if accountNumber != "" && e.AccountNumber != accountNumber {
			continue
		}

		out = append(out, e)
	}

	return out, nil
}

func (m *MockEntryRepository) ListByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]*domain.Entry, error) {
	if m.ListByReferenceFunc != nil {
		return m.ListByReferenceFunc(ctx, refType, refID)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*domain.Entry
	for _, e := range m.entries {
		if e.ReferenceType == refType && e.ReferenceID == refID {
			out = append(out, e)
		}
	}

	return out, nil
}

func (m *MockEntryRepository) ExistsByReference(ctx context.Context, refType domain.ReferenceType, refID string) (bool, error) {
	if m.ExistsByReferenceFunc != nil {
		return m.ExistsByReferenceFunc(ctx, refType, refID)
	}

	entries, err := m.ListByReference(ctx, refType, refID)
	if err != nil {
		return false, err
	}

	return len(entries) > 0, nil
}

func (m *MockEntryRepository) DeleteByReference(ctx context.Context, tx usecase.Transaction, refType domain.ReferenceType, refID string) (int64, error) {
	if m.DeleteByReferenceFunc != nil {
		return m.DeleteByReferenceFunc(ctx, tx, refType, refID)
	}

	matching, _ := m.ListByReference(ctx, refType, refID)
	count := int64(len(matching))

	remove := func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		kept := m.entries[:0]
		for _, e := range m.entries {
			if e.ReferenceType == refType && e.ReferenceID == refID {
				continue
			}
			kept = append(kept, e)
		}
		m.entries = kept
	}

	if mtx, ok := tx.(*MockTransaction); ok && mtx != nil {
		mtx.OnCommit(remove)
	} else {
		remove()
	}

	return count, nil
}

// MockBalanceRepository derives account totals from a
// MockEntryRepository and MockAccountRepository when linked, so
// balance tests run against the same store as posting tests.
type MockBalanceRepository struct {
	Entries  *MockEntryRepository
	Accounts *MockAccountRepository

	AccountTotalsFunc func(ctx context.Context, start, end time.Time) ([]*usecase.AccountActivity, error)
}

func NewMockBalanceRepository(entries *MockEntryRepository, accounts *MockAccountRepository) *MockBalanceRepository {
	return &MockBalanceRepository{Entries: entries, Accounts: accounts}
}

func (m *MockBalanceRepository) AccountTotals(ctx context.Context, start, end time.Time) ([]*usecase.AccountActivity, error) {
	if m.AccountTotalsFunc != nil {
		return m.AccountTotalsFunc(ctx, start, end)
	}

	entries, err := m.Entries.ListByPeriod(ctx, start, end, "")
	if err != nil {
		return nil, err
	}

	byAccount := make(map[string]*usecase.AccountActivity)

	var numbers []string
	for _, e := range entries {
		activity, ok := byAccount[e.AccountNumber]
		if !ok {
			label := ""
			if m.Accounts != nil {
				if acc, err := m.Accounts.GetByNumber(ctx, e.AccountNumber); err == nil {
					label = acc.Label
				}
			}

			activity = &usecase.AccountActivity{
				AccountNumber: e.AccountNumber,
				AccountLabel:  label,
				Class:         domain.AccountClass(e.AccountNumber),
				TotalDebit:    decimal.Zero,
				TotalCredit:   decimal.Zero,
			}
			byAccount[e.AccountNumber] = activity
			numbers = append(numbers, e.AccountNumber)
		}

		activity.TotalDebit = activity.TotalDebit.Add(e.Debit)
		activity.TotalCredit = activity.TotalCredit.Add(e.Credit)
	}

	out := make([]*usecase.AccountActivity, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, byAccount[n])
	}

	return out, nil
}

// MockIDGenerator generates deterministic sequential IDs.
type MockIDGenerator struct {
	mu   sync.Mutex
	next int

	GenerateFunc func() string
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.next++

	return "entry-" + itoa(m.next)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}

	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}

	return string(buf[i:])
}

// MockRetrier runs the operation once with no retry.
type MockRetrier struct {
	RetryFunc func(ctx context.Context, operation func() error) error
}

func NewMockRetrier() *MockRetrier {
	return &MockRetrier{}
}

func (m *MockRetrier) Retry(ctx context.Context, operation func() error) error {
	if m.RetryFunc != nil {
		return m.RetryFunc(ctx, operation)
	}

	return operation()
}

// MockCache is an in-memory Cache; TTLs are ignored.
type MockCache struct {
	mu    sync.RWMutex
	items map[string]string

	GetFunc func(ctx context.Context, key string) (string, error)
	SetFunc func(ctx context.Context, key, value string, ttl time.Duration) error
}

func NewMockCache() *MockCache {
	return &MockCache{items: make(map[string]string)}
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.items[key], nil
}

func (m *MockCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value

	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)

	return nil
}
