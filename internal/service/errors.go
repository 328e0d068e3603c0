package service

import "errors"

var (
	ErrUnknownLedger       = errors.New("unknown ledger")
	ErrUnknownCurrency     = errors.New("currency has no exchange rate")
	ErrNotUserCategory     = errors.New("not a user category")
	ErrBridgeRecord        = errors.New("transfer records can only be removed by clearing a pot")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrAmbiguousID         = errors.New("transaction id prefix is ambiguous")
)
