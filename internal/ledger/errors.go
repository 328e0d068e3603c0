package ledger

import "errors"

var (
	ErrPersist          = errors.New("failed to persist ledger")
	ErrUnknownCategory  = errors.New("unknown category")
	ErrReservedCategory = errors.New("category name is reserved")
	ErrEmptyCategory    = errors.New("category name cannot be empty")
)
