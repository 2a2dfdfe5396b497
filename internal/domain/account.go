package domain

import (
	"time"
)

// AccountType is the SYSCOHADA nature of an account.
type AccountType string

const (
	AccountTypeActif    AccountType = "ACTIF"
	AccountTypePassif   AccountType = "PASSIF"
	AccountTypeCharges  AccountType = "CHARGES"
	AccountTypeProduits AccountType = "PRODUITS"
)

// Account represents one entry of the chart of accounts, keyed by its
// SYSCOHADA number. Class and type are fixed at creation; accounts are
// never deleted, only deactivated.
type Account struct {
	Number    string
	Label     string
	Class     string
	Type      AccountType
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccountClass returns the SYSCOHADA class digit ("1".."8") of an
// account number.
func AccountClass(number string) string {
	if number == "" {
		return ""
	}

	return number[:1]
}

// NewAccount builds an account for the given number with class derived
// from the leading digit.
func NewAccount(number, label string, typ AccountType, now time.Time) (*Account, error) {
	if err := ValidateAccountNumber(number); err != nil {
		return nil, err
	}

	switch typ {
	case AccountTypeActif, AccountTypePassif, AccountTypeCharges, AccountTypeProduits:
	default:
		return nil, ErrInvalidAccountType
	}

	return &Account{
		Number:    number,
		Label:     label,
		Class:     AccountClass(number),
		Type:      typ,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
