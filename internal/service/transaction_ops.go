package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/ledger"
	"github.com/hance08/pots/internal/model"
	"github.com/shopspring/decimal"
)

// EditInput is a user edit. An empty Currency means the ledger currency.
type EditInput struct {
	Amount   decimal.Decimal
	Currency string
	Note     *string
}

// FindTransaction looks a record up by id in both ledgers.
func (s *Service) FindTransaction(id uuid.UUID) (*ledger.Ledger, model.Transaction, error) {
	for _, l := range []*ledger.Ledger{s.bridge.Savings(), s.bridge.Expenses()} {
		if tx, ok := l.Transaction(id); ok {
			return l, tx, nil
		}
	}
	return nil, model.Transaction{}, ErrTransactionNotFound
}

// ResolveTransaction accepts a full id or an unambiguous prefix of one, as
// shown by transaction listings.
func (s *Service) ResolveTransaction(ref string) (*ledger.Ledger, model.Transaction, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if id, err := uuid.Parse(ref); err == nil {
		return s.FindTransaction(id)
	}
	if ref == "" {
		return nil, model.Transaction{}, ErrTransactionNotFound
	}

	var (
		found   *ledger.Ledger
		match   model.Transaction
		matches int
	)
	for _, l := range []*ledger.Ledger{s.bridge.Savings(), s.bridge.Expenses()} {
		for _, tx := range l.Transactions() {
			if strings.HasPrefix(tx.ID.String(), ref) {
				found, match = l, tx
				matches++
			}
		}
	}

	switch matches {
	case 0:
		return nil, model.Transaction{}, fmt.Errorf("%w: %q", ErrTransactionNotFound, ref)
	case 1:
		return found, match, nil
	default:
		return nil, model.Transaction{}, fmt.Errorf("%w: %q matches %d transactions", ErrAmbiguousID, ref, matches)
	}
}

// EditTransaction rewrites a record in place. Salary edits go through the
// income lock; transfer legs can not be edited one side at a time.
func (s *Service) EditTransaction(id uuid.UUID, in EditInput) error {
	l, tx, err := s.FindTransaction(id)
	if err != nil {
		return err
	}
	if isBridgeRecord(tx) {
		return ErrBridgeRecord
	}

	if tx.Category == constants.CategorySalary {
		_, err = s.bridge.EditIncome(id, in.Amount, in.Currency, in.Note)
		return err
	}

	value, original := l.Price(in.Amount, in.Currency)
	_, err = l.EditTransaction(id, ledger.Edit{Amount: value, Original: original, Note: in.Note})
	return err
}

// DeleteTransaction removes a single user record.
func (s *Service) DeleteTransaction(id uuid.UUID) error {
	l, tx, err := s.FindTransaction(id)
	if err != nil {
		return err
	}
	if isBridgeRecord(tx) {
		return ErrBridgeRecord
	}

	if tx.Category == constants.CategorySalary {
		_, err = s.bridge.DeleteIncome(id)
		return err
	}

	_, err = l.DeleteTransaction(id)
	return err
}

func isBridgeRecord(tx model.Transaction) bool {
	switch tx.Category {
	case constants.CategoryTransferOut:
		return true
	case constants.CategoryDistributable:
		return tx.Note == constants.NoteTransfer || tx.Note == constants.NoteTransferBack
	}
	return false
}
