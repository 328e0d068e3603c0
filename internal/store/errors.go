package store

import "errors"

var (
	ErrRecordNotFound  = errors.New("record not found")
	ErrCorruptState    = errors.New("stored ledger state is corrupted")
	ErrInvalidLedgerID = errors.New("invalid ledger id")
)
