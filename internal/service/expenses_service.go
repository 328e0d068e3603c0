package service

import (
	"github.com/hance08/pots/internal/bridge"
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/model"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type ExpensesService struct {
	bridge *bridge.Bridge
	log    zerolog.Logger
}

func NewExpensesService(b *bridge.Bridge, log zerolog.Logger) *ExpensesService {
	return &ExpensesService{bridge: b, log: log}
}

func (es *ExpensesService) AddIncome(amount decimal.Decimal, code, note string) (model.Transaction, error) {
	if !amount.IsPositive() {
		return model.Transaction{}, bridge.ErrNonPositive
	}
	expenses := es.bridge.Expenses()
	value, original := expenses.Price(amount, code)
	return expenses.Record(model.Credit, constants.CategorySalary, value, note, original)
}

// Spend records an expense, limited to what remains in the pot. A note is
// kept as a preset for the category.
func (es *ExpensesService) Spend(category string, amount decimal.Decimal, code, note string) (model.Transaction, error) {
	expenses := es.bridge.Expenses()
	if err := requireUserCategory(expenses.HasCategory(category), category); err != nil {
		return model.Transaction{}, err
	}
	if !amount.IsPositive() {
		return model.Transaction{}, bridge.ErrNonPositive
	}

	value, original := expenses.Price(amount, code)
	if remaining := es.bridge.Remaining(); value.GreaterThan(remaining) {
		return model.Transaction{}, &model.InsufficientFundsError{
			Pot:       "expenses",
			Requested: value,
			Available: remaining,
		}
	}

	tx, err := expenses.Record(model.Debit, category, value, note, original)
	if err != nil {
		return model.Transaction{}, err
	}

	if note != "" {
		if _, err := expenses.AddPresetNote(category, note); err != nil {
			es.log.Warn().Err(err).Str("category", category).Msg("failed to save preset note")
		}
	}
	return tx, nil
}

func (es *ExpensesService) TransferToSavings(amount decimal.Decimal, code string) (bridge.Transfer, error) {
	return es.bridge.TransferToSavings(amount, code)
}

func (es *ExpensesService) Income() []model.Transaction {
	return es.bridge.Expenses().TransactionsFor(constants.CategorySalary)
}

func (es *ExpensesService) Summary() ExpensesSummary {
	expenses := es.bridge.Expenses()
	return ExpensesSummary{
		Currency:    expenses.Currency(),
		Remaining:   es.bridge.Remaining(),
		Income:      es.bridge.Income(),
		Spent:       expenses.TotalDebits(constants.CategoryTransferOut, constants.CategorySalary),
		Transferred: es.bridge.TotalTransferredToSavings(),
		Categories:  categoryBalances(expenses),
		Foreign:     expenses.ForeignCurrencyTotals(),
	}
}
