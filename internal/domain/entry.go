package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry represents a single accounting entry leg (debit or credit).
// Entries are append-only: they are never updated, only deleted as a
// unit when the source business record is cancelled.
type Entry struct {
	ID            string
	EntryDate     time.Time
	JournalCode   string
	Piece         string
	Label         string
	AccountNumber string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	Reference     string
	ReferenceType ReferenceType
	ReferenceID   string
	PostedBy      string
	CreatedAt     time.Time
}

// Validate checks the single-leg invariant: exactly one of debit and
// credit is nonzero, and both are non-negative.
func (e *Entry) Validate() error {
	if e.AccountNumber == "" {
		return ErrInvalidAccountNumber
	}

	if e.JournalCode == "" {
		return ErrInvalidJournalCode
	}

	if e.Debit.IsNegative() || e.Credit.IsNegative() {
		return ErrInvalidAmount
	}

	if e.Debit.IsZero() == e.Credit.IsZero() {
		return ErrOneSidedEntry
	}

	if e.ReferenceType != "" && !e.ReferenceType.Valid() {
		return ErrInvalidReferenceType
	}

	return nil
}

// SumEntries returns the debit and credit totals of a set of legs.
func SumEntries(entries []*Entry) (totalDebit, totalCredit decimal.Decimal) {
	totalDebit = decimal.Zero
	totalCredit = decimal.Zero

	for _, e := range entries {
		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
	}

	return totalDebit, totalCredit
}

// ValidateBalancedSet checks the event-level invariant: every leg is
// valid and the debit and credit totals of the set are equal.
func ValidateBalancedSet(entries []*Entry) error {
	if len(entries) == 0 {
		return ErrEmptyPosting
	}

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}

	totalDebit, totalCredit := SumEntries(entries)
	if !totalDebit.Equal(totalCredit) {
		return ErrUnbalancedPosting
	}

	return nil
}
