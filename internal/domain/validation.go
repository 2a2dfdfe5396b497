package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// MaxPostingAmount caps single-event amounts; anything above it is
// almost certainly an input error in a retail context.
const MaxPostingAmount = "1000000000000"

// ValidateAccountNumber checks that an account number is non-empty,
// numeric, and belongs to a SYSCOHADA class (leading digit 1..8).
func ValidateAccountNumber(number string) error {
	if number == "" {
		return ErrInvalidAccountNumber
	}

	for _, r := range number {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: %q is not numeric", ErrInvalidAccountNumber, number)
		}
	}

	if number[0] < '1' || number[0] > '8' {
		return fmt.Errorf("%w: %q is outside classes 1-8", ErrInvalidAccountNumber, number)
	}

	return nil
}

// ValidateAmount checks that a posting amount is strictly positive and
// below the sanity cap.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	maxAmount, _ := decimal.NewFromString(MaxPostingAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrInvalidAmount, MaxPostingAmount)
	}

	return nil
}

// ValidatePeriod checks that a reporting period is well formed.
func ValidatePeriod(start, end time.Time) error {
	if start.After(end) {
		return ErrInvalidPeriod
	}

	return nil
}

// ValidatePagination bounds pagination parameters.
func ValidatePagination(limit, offset int) (int, int) {
	const maxPageSize = 1000
	const defaultPageSize = 50

	if limit <= 0 {
		limit = defaultPageSize
	}

	if limit > maxPageSize {
		limit = maxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
