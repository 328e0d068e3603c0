package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrIncomeLocked      = errors.New("income is locked by transfers to savings")
)

// InsufficientFundsError rejects a debit or allocation larger than what the
// pot holds.
type InsufficientFundsError struct {
	Pot       string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("%s: only %s available in %s (requested %s)",
		ErrInsufficientFunds, e.Available.StringFixed(2), e.Pot, e.Requested.StringFixed(2))
}

func (e *InsufficientFundsError) Unwrap() error {
	return ErrInsufficientFunds
}

// Shortfall is how much is missing to satisfy the request.
func (e *InsufficientFundsError) Shortfall() decimal.Decimal {
	return e.Requested.Sub(e.Available)
}

// IncomeLockedError rejects an income edit or delete that would leave less
// income than has already been transferred to savings.
type IncomeLockedError struct {
	Transferred decimal.Decimal
	Requested   decimal.Decimal
	Delete      bool
}

func (e *IncomeLockedError) Error() string {
	if e.Delete {
		return fmt.Sprintf("%s: %s has already been transferred, income can be edited but not deleted",
			ErrIncomeLocked, e.Transferred.StringFixed(2))
	}
	return fmt.Sprintf("%s: income cannot be less than %s already transferred (requested %s)",
		ErrIncomeLocked, e.Transferred.StringFixed(2), e.Requested.StringFixed(2))
}

func (e *IncomeLockedError) Unwrap() error {
	return ErrIncomeLocked
}
