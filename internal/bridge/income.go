package bridge

import (
	"github.com/google/uuid"
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/ledger"
	"github.com/hance08/pots/internal/model"
	"github.com/shopspring/decimal"
)

// EditIncome changes a salary record. Total income may not drop below what
// has already been sent to savings. A nil note keeps the current one. It
// reports false for unknown ids.
func (b *Bridge) EditIncome(id uuid.UUID, amount decimal.Decimal, code string, note *string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, ok := b.expenses.Transaction(id)
	if !ok {
		return false, nil
	}
	if tx.Category != constants.CategorySalary {
		return false, ErrNotIncome
	}

	value, original := b.expenses.Price(amount, code)
	transferred := b.TotalTransferredToSavings()
	after := b.Income().Sub(tx.Amount).Add(value)
	if transferred.IsPositive() && after.LessThan(transferred) {
		return false, &model.IncomeLockedError{Transferred: transferred, Requested: value}
	}

	return b.expenses.EditTransaction(id, ledger.Edit{Amount: value, Original: original, Note: note})
}

// DeleteIncome removes a salary record unless a transfer exists.
func (b *Bridge) DeleteIncome(id uuid.UUID) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	tx, ok := b.expenses.Transaction(id)
	if !ok {
		return false, nil
	}
	if tx.Category != constants.CategorySalary {
		return false, ErrNotIncome
	}

	if transferred := b.TotalTransferredToSavings(); transferred.IsPositive() {
		return false, &model.IncomeLockedError{Transferred: transferred, Delete: true}
	}

	return b.expenses.DeleteTransaction(id)
}

// ClearExpenses empties the expenses ledger and unwinds the transfer markers
// it left in the savings pool.
func (b *Bridge) ClearExpenses() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.expenses.ClearAll(); err != nil {
		return &LegError{Leg: LegExpenses, Err: err}
	}
	for _, tag := range []string{constants.NoteTransfer, constants.NoteTransferBack} {
		if _, err := b.savings.ClearCategoryTagged(constants.CategoryDistributable, tag); err != nil {
			b.log.Error().Err(err).Msg("expenses cleared but savings transfer markers remain")
			return &LegError{Leg: LegSavings, Err: err}
		}
	}
	return nil
}

// ClearSavings empties the savings ledger and the expenses Transfer-Out
// category that mirrored it.
func (b *Bridge) ClearSavings() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := b.savings.ClearAll(); err != nil {
		return &LegError{Leg: LegSavings, Err: err}
	}
	if _, err := b.expenses.ClearCategory(constants.CategoryTransferOut); err != nil {
		b.log.Error().Err(err).Msg("savings cleared but expenses transfer records remain")
		return &LegError{Leg: LegExpenses, Err: err}
	}
	return nil
}
