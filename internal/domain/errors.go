package domain

import "errors"

var (
	// Chart of accounts / journals
	ErrAccountNotFound      = errors.New("account not found")
	ErrJournalNotFound      = errors.New("journal not found")
	ErrInvalidAccountNumber = errors.New("invalid account number")
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrInvalidJournalCode   = errors.New("invalid journal code")
	ErrInvalidJournalType   = errors.New("invalid journal type")

	// Posting
	ErrInvalidAmount         = errors.New("amount must be positive")
	ErrOneSidedEntry         = errors.New("entry must have exactly one of debit or credit set")
	ErrEmptyPosting          = errors.New("posting produced no entries")
	ErrUnbalancedPosting     = errors.New("posting legs are not balanced: debits do not equal credits")
	ErrInvalidReferenceType  = errors.New("unknown reference type")
	ErrUnknownBankOperation  = errors.New("unknown bank operation type")
	ErrUnknownCashMovement   = errors.New("unknown cash movement direction")
	ErrMissingPostingUser    = errors.New("posting user is required")

	// Reporting
	ErrInvalidPeriod = errors.New("period start must not be after period end")
)
