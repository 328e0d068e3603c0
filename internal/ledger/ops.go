package ledger

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/hance08/pots/internal/model"
	"github.com/shopspring/decimal"
)

// Edit rewrites a transaction in place. Original replaces the stored pair
// (nil clears it); a nil Note leaves the note unchanged.
type Edit struct {
	Amount   decimal.Decimal
	Original *model.Money
	Note     *string
}

// Record appends a transaction stamped with the current time. Balances are
// not checked here; callers guard debits before recording them.
func (l *Ledger) Record(kind model.Kind, category string, amount decimal.Decimal, note string, original *model.Money) (model.Transaction, error) {
	var recorded model.Transaction

	err := l.commit(func(next *model.State) error {
		if !l.isInternal(category) && !slices.Contains(next.Categories, category) {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
		}

		ts := l.now()
		if n := len(next.Transactions); n > 0 {
			if last := next.Transactions[n-1].Timestamp; !ts.After(last) {
				ts = last.Add(1)
			}
		}

		tx, err := model.NewTransaction(uuid.New(), kind, category, amount, ts, note, original)
		if err != nil {
			return err
		}

		next.Transactions = append(next.Transactions, tx)
		recorded = tx
		return nil
	})
	if err != nil {
		return model.Transaction{}, err
	}

	l.log.Debug().
		Str("kind", string(recorded.Kind)).
		Str("category", recorded.Category).
		Str("amount", recorded.Amount.String()).
		Msg("transaction recorded")
	return recorded, nil
}

// EditTransaction reports false when no record has the id.
func (l *Ledger) EditTransaction(id uuid.UUID, edit Edit) (bool, error) {
	found := false

	err := l.commit(func(next *model.State) error {
		i := indexOf(next.Transactions, id)
		if i < 0 {
			return nil
		}
		found = true

		if edit.Amount.IsNegative() {
			return fmt.Errorf("%w (got %s)", model.ErrInvalidAmount, edit.Amount)
		}
		original, err := model.CheckOriginal(edit.Original)
		if err != nil {
			return err
		}

		tx := &next.Transactions[i]
		tx.Amount = edit.Amount
		tx.Original = original
		if edit.Note != nil {
			tx.Note = *edit.Note
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// DeleteTransaction reports false when no record has the id.
func (l *Ledger) DeleteTransaction(id uuid.UUID) (bool, error) {
	if _, ok := l.Transaction(id); !ok {
		return false, nil
	}

	found := false
	err := l.commit(func(next *model.State) error {
		i := indexOf(next.Transactions, id)
		if i < 0 {
			return nil
		}
		found = true
		next.Transactions = slices.Delete(next.Transactions, i, i+1)
		return nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

// ClearCategory removes every record in category; the category stays.
func (l *Ledger) ClearCategory(category string) (int, error) {
	return l.removeWhere(func(tx model.Transaction) bool {
		return tx.Category == category
	})
}

// ClearCategoryTagged removes only the records in category whose note is
// exactly tag.
func (l *Ledger) ClearCategoryTagged(category, tag string) (int, error) {
	return l.removeWhere(func(tx model.Transaction) bool {
		return tx.Category == category && tx.Note == tag
	})
}

// ClearAll removes every record; categories survive.
func (l *Ledger) ClearAll() (int, error) {
	return l.removeWhere(func(model.Transaction) bool { return true })
}

func (l *Ledger) removeWhere(drop func(model.Transaction) bool) (int, error) {
	removed := 0

	err := l.commit(func(next *model.State) error {
		before := len(next.Transactions)
		next.Transactions = slices.DeleteFunc(next.Transactions, drop)
		removed = before - len(next.Transactions)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
