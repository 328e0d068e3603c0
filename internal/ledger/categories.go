package ledger

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/model"
)

// Categories returns the user-visible categories in insertion order.
func (l *Ledger) Categories() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.state.Categories)
}

func (l *Ledger) HasCategory(name string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Contains(l.state.Categories, name)
}

// AddCategory returns false without mutating when name already exists.
// Names are compared exactly.
func (l *Ledger) AddCategory(name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyCategory
	}
	if strings.HasPrefix(name, constants.ReservedPrefix) {
		return false, fmt.Errorf("%w: %q", ErrReservedCategory, name)
	}
	if l.HasCategory(name) {
		return false, nil
	}

	err := l.commit(func(next *model.State) error {
		next.Categories = append(next.Categories, name)
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// DeleteCategory drops the category with its transactions and preset notes.
// Deleting an absent category is a no-op.
func (l *Ledger) DeleteCategory(name string) error {
	if l.isInternal(name) {
		return fmt.Errorf("%w: %q", ErrReservedCategory, name)
	}
	if !l.HasCategory(name) {
		return nil
	}

	return l.commit(func(next *model.State) error {
		next.Categories = slices.DeleteFunc(next.Categories, func(c string) bool { return c == name })
		next.Transactions = slices.DeleteFunc(next.Transactions, func(tx model.Transaction) bool {
			return tx.Category == name
		})
		delete(next.PresetNotes, name)
		return nil
	})
}

func (l *Ledger) PresetNotes(category string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.state.PresetNotes[category])
}

// AddPresetNote returns false for empty or already saved notes.
func (l *Ledger) AddPresetNote(category, note string) (bool, error) {
	note = strings.TrimSpace(note)
	if note == "" || slices.Contains(l.PresetNotes(category), note) {
		return false, nil
	}

	err := l.commit(func(next *model.State) error {
		next.PresetNotes[category] = append(next.PresetNotes[category], note)
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (l *Ledger) RemovePresetNote(category, note string) (bool, error) {
	if !slices.Contains(l.PresetNotes(category), note) {
		return false, nil
	}

	err := l.commit(func(next *model.State) error {
		notes := slices.DeleteFunc(next.PresetNotes[category], func(n string) bool { return n == note })
		if len(notes) == 0 {
			delete(next.PresetNotes, category)
		} else {
			next.PresetNotes[category] = notes
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}
