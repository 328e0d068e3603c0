package store

import "github.com/hance08/pots/internal/model"

// Repository is the persistence contract shared by every backend. Load
// returns ErrRecordNotFound when nothing was stored for the ledger and
// ErrCorruptState when stored data cannot be decoded. A Load right after a
// successful Save must reflect that Save.
type Repository interface {
	Load(ledgerID string) (*model.State, error)
	Save(ledgerID string, state *model.State) error
	Close() error
}
