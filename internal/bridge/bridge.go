// Package bridge moves value between the expenses and savings ledgers. It is
// the only place that writes to both ledgers in one operation.
package bridge

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/currency"
	"github.com/hance08/pots/internal/ledger"
	"github.com/hance08/pots/internal/model"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type Bridge struct {
	savings  *ledger.Ledger
	expenses *ledger.Ledger
	log      zerolog.Logger

	mu sync.Mutex
}

// Transfer holds both legs of a completed transfer or return.
type Transfer struct {
	Debit  model.Transaction
	Credit model.Transaction
}

// ReturnResult reports the amounts of a return in the savings currency.
// Returned is below Requested when the return was clamped.
type ReturnResult struct {
	Transfer
	Requested decimal.Decimal
	Returned  decimal.Decimal
}

func (r ReturnResult) Clamped() bool {
	return r.Returned.LessThan(r.Requested)
}

func New(savings, expenses *ledger.Ledger, log zerolog.Logger) *Bridge {
	return &Bridge{
		savings:  savings,
		expenses: expenses,
		log:      log.With().Str("component", "bridge").Logger(),
	}
}

func (b *Bridge) Savings() *ledger.Ledger {
	return b.savings
}

func (b *Bridge) Expenses() *ledger.Ledger {
	return b.expenses
}

// Distributable is the savings pool that is available but not yet
// allocated: credits into the pool, less debits from it, less every credit
// into an ordinary savings category.
func (b *Bridge) Distributable() decimal.Decimal {
	in := b.savings.SumWhere(func(tx model.Transaction) bool {
		return tx.Category == constants.CategoryDistributable && tx.Kind == model.Credit
	})
	out := b.savings.SumWhere(func(tx model.Transaction) bool {
		return tx.Category == constants.CategoryDistributable && tx.Kind == model.Debit
	})
	allocated := b.savings.SumWhere(func(tx model.Transaction) bool {
		return tx.Category != constants.CategoryDistributable && tx.Kind == model.Credit
	})
	return in.Sub(out).Sub(allocated)
}

// NetTransferred is what arrived in savings from expenses, net of returns.
func (b *Bridge) NetTransferred() decimal.Decimal {
	in := b.savings.SumWhere(func(tx model.Transaction) bool {
		return tx.Category == constants.CategoryDistributable && tx.Kind == model.Credit && tx.Note == constants.NoteTransfer
	})
	back := b.savings.SumWhere(func(tx model.Transaction) bool {
		return tx.Category == constants.CategoryDistributable && tx.Kind == model.Debit && tx.Note == constants.NoteTransferBack
	})
	return in.Sub(back)
}

// TotalTransferredToSavings is what left expenses for savings, net of
// returns, in the expenses currency.
func (b *Bridge) TotalTransferredToSavings() decimal.Decimal {
	out := b.expenses.SumWhere(func(tx model.Transaction) bool {
		return tx.Category == constants.CategoryTransferOut && tx.Kind == model.Debit
	})
	back := b.expenses.SumWhere(func(tx model.Transaction) bool {
		return tx.Category == constants.CategoryTransferOut && tx.Kind == model.Credit && tx.Note == constants.NoteTransferBack
	})
	return out.Sub(back)
}

// Remaining is what the expenses pot can still spend or send to savings.
func (b *Bridge) Remaining() decimal.Decimal {
	return b.expenses.Total(constants.CategoryTransferOut).Sub(b.TotalTransferredToSavings())
}

// Income is the total recorded salary in the expenses currency.
func (b *Bridge) Income() decimal.Decimal {
	return b.expenses.Balance(constants.CategorySalary)
}

// DirectIncome lists pool credits that did not come from expenses.
func (b *Bridge) DirectIncome() []model.Transaction {
	return b.savings.Filter(func(tx model.Transaction) bool {
		return tx.Category == constants.CategoryDistributable && tx.Kind == model.Credit && tx.Note != constants.NoteTransfer
	})
}

// TransferToSavings debits expenses and credits the savings pool. Amount is
// in code, or in the expenses currency when code is empty. Either both legs
// are stored or neither is.
func (b *Bridge) TransferToSavings(amount decimal.Decimal, code string) (Transfer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !amount.IsPositive() {
		return Transfer{}, ErrNonPositive
	}
	if code == "" {
		code = b.expenses.Currency()
	}

	debitAmount, debitOrig := b.expenses.Price(amount, code)
	if remaining := b.Remaining(); debitAmount.GreaterThan(remaining) {
		return Transfer{}, &model.InsufficientFundsError{
			Pot:       "expenses",
			Requested: debitAmount,
			Available: remaining,
		}
	}
	creditAmount, creditOrig := b.savings.Price(amount, code)

	debit, err := b.expenses.Record(model.Debit, constants.CategoryTransferOut, debitAmount, "", debitOrig)
	if err != nil {
		return Transfer{}, &LegError{Leg: LegExpenses, Err: err}
	}

	credit, err := b.savings.Record(model.Credit, constants.CategoryDistributable, creditAmount, constants.NoteTransfer, creditOrig)
	if err != nil {
		return Transfer{}, b.compensate(b.expenses, debit.ID, &LegError{Leg: LegSavings, Err: err})
	}

	b.log.Info().
		Str("amount", debitAmount.String()).
		Str("debit", debit.ID.String()).
		Str("credit", credit.ID.String()).
		Msg("transferred to savings")
	return Transfer{Debit: debit, Credit: credit}, nil
}

// ReturnToExpenses moves money from the savings pool back to expenses. The
// amount is capped by the pool and by what was transferred net of earlier
// returns; a capped return succeeds and reports the smaller amount.
func (b *Bridge) ReturnToExpenses(amount decimal.Decimal, code string) (ReturnResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !amount.IsPositive() {
		return ReturnResult{}, ErrNonPositive
	}
	savingsCurrency := b.savings.Currency()
	if code == "" {
		code = savingsCurrency
	}
	code = currency.Normalize(code)

	requested, _ := b.savings.Price(amount, code)
	capped := decimal.Min(requested, b.Distributable(), b.NetTransferred())
	if !capped.IsPositive() {
		return ReturnResult{}, ErrNothingToReturn
	}

	input := amount
	if capped.LessThan(requested) {
		input = b.savings.Converter().Convert(capped, savingsCurrency, code)
	}
	_, debitOrig := b.savings.Price(input, code)
	creditAmount, creditOrig := b.expenses.Price(input, code)

	debit, err := b.savings.Record(model.Debit, constants.CategoryDistributable, capped, constants.NoteTransferBack, debitOrig)
	if err != nil {
		return ReturnResult{}, &LegError{Leg: LegSavings, Err: err}
	}

	credit, err := b.expenses.Record(model.Credit, constants.CategoryTransferOut, creditAmount, constants.NoteTransferBack, creditOrig)
	if err != nil {
		return ReturnResult{}, b.compensate(b.savings, debit.ID, &LegError{Leg: LegExpenses, Err: err})
	}

	if capped.LessThan(requested) {
		b.log.Info().Str("requested", requested.String()).Str("returned", capped.String()).Msg("return clamped")
	}
	return ReturnResult{
		Transfer:  Transfer{Debit: debit, Credit: credit},
		Requested: requested,
		Returned:  capped,
	}, nil
}

// compensate removes the first leg after the second failed.
func (b *Bridge) compensate(l *ledger.Ledger, id uuid.UUID, cause *LegError) error {
	if _, err := l.DeleteTransaction(id); err != nil {
		b.log.Error().Err(err).Str("ledger", l.ID()).Str("transaction", id.String()).Msg("rollback failed, ledgers are out of step")
		return errors.Join(cause, fmt.Errorf("rollback of %s leg: %w", l.ID(), err))
	}
	b.log.Warn().Str("ledger", l.ID()).Str("transaction", id.String()).Msg("rolled back first leg")
	return cause
}

// AddDirectIncome credits the savings pool without touching expenses.
func (b *Bridge) AddDirectIncome(amount decimal.Decimal, code string) (model.Transaction, error) {
	if !amount.IsPositive() {
		return model.Transaction{}, ErrNonPositive
	}
	value, original := b.savings.Price(amount, code)
	return b.savings.Record(model.Credit, constants.CategoryDistributable, value, "", original)
}
