package model

import (
	"slices"
	"time"

	"github.com/hance08/pots/internal/currency"
)

// State is the full persisted state of one ledger.
type State struct {
	Currency     string
	Rates        currency.Rates
	Categories   []string
	PresetNotes  map[string][]string
	Transactions []Transaction
	LastUpdated  time.Time
}

func NewState(currencyCode string, categories []string) *State {
	return &State{
		Currency:    currencyCode,
		Rates:       currency.DefaultRates(),
		Categories:  slices.Clone(categories),
		PresetNotes: map[string][]string{},
	}
}

// Clone returns a deep copy; Money values are shared since they are never
// mutated in place.
func (s *State) Clone() *State {
	out := &State{
		Currency:     s.Currency,
		Rates:        s.Rates.Clone(),
		Categories:   slices.Clone(s.Categories),
		PresetNotes:  make(map[string][]string, len(s.PresetNotes)),
		Transactions: slices.Clone(s.Transactions),
		LastUpdated:  s.LastUpdated,
	}
	for cat, notes := range s.PresetNotes {
		out.PresetNotes[cat] = slices.Clone(notes)
	}
	return out
}
