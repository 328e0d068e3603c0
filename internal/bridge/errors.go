package bridge

import (
	"errors"
	"fmt"
)

var (
	ErrTransferLeg     = errors.New("transfer leg failed")
	ErrNonPositive     = errors.New("amount must be greater than zero")
	ErrNothingToReturn = errors.New("nothing available to return to expenses")
	ErrNotIncome       = errors.New("transaction is not an income record")
)

const (
	LegExpenses = "expenses"
	LegSavings  = "savings"
)

// LegError names the side of a two-ledger operation that failed.
type LegError struct {
	Leg string
	Err error
}

func (e *LegError) Error() string {
	return fmt.Sprintf("%s: %s leg: %v", ErrTransferLeg, e.Leg, e.Err)
}

func (e *LegError) Unwrap() []error {
	return []error{ErrTransferLeg, e.Err}
}
