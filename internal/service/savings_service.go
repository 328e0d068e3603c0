package service

import (
	"fmt"

	"github.com/hance08/pots/internal/bridge"
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/model"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type SavingsService struct {
	bridge *bridge.Bridge
	log    zerolog.Logger
}

func NewSavingsService(b *bridge.Bridge, log zerolog.Logger) *SavingsService {
	return &SavingsService{bridge: b, log: log}
}

// Allocate moves money from the distributable pool into a savings category.
func (ss *SavingsService) Allocate(category string, amount decimal.Decimal, code, note string) (model.Transaction, error) {
	savings := ss.bridge.Savings()
	if err := requireUserCategory(savings.HasCategory(category), category); err != nil {
		return model.Transaction{}, err
	}
	if !amount.IsPositive() {
		return model.Transaction{}, bridge.ErrNonPositive
	}

	value, original := savings.Price(amount, code)
	if available := ss.bridge.Distributable(); value.GreaterThan(available) {
		return model.Transaction{}, &model.InsufficientFundsError{
			Pot:       "the distributable pool",
			Requested: value,
			Available: available,
		}
	}

	return savings.Record(model.Credit, category, value, note, original)
}

// Spend takes money out of a savings category, limited to its balance.
func (ss *SavingsService) Spend(category string, amount decimal.Decimal, code, note string) (model.Transaction, error) {
	savings := ss.bridge.Savings()
	if err := requireUserCategory(savings.HasCategory(category), category); err != nil {
		return model.Transaction{}, err
	}
	if !amount.IsPositive() {
		return model.Transaction{}, bridge.ErrNonPositive
	}

	value, original := savings.Price(amount, code)
	if balance := savings.Balance(category); value.GreaterThan(balance) {
		return model.Transaction{}, &model.InsufficientFundsError{
			Pot:       category,
			Requested: value,
			Available: balance,
		}
	}

	return savings.Record(model.Debit, category, value, note, original)
}

// AddOtherIncome credits the pool with money that did not come from expenses.
func (ss *SavingsService) AddOtherIncome(amount decimal.Decimal, code string) (model.Transaction, error) {
	return ss.bridge.AddDirectIncome(amount, code)
}

func (ss *SavingsService) ReturnToExpenses(amount decimal.Decimal, code string) (bridge.ReturnResult, error) {
	return ss.bridge.ReturnToExpenses(amount, code)
}

func (ss *SavingsService) OtherIncome() []model.Transaction {
	return ss.bridge.DirectIncome()
}

func (ss *SavingsService) Summary() SavingsSummary {
	savings := ss.bridge.Savings()
	return SavingsSummary{
		Currency:       savings.Currency(),
		Distributable:  ss.bridge.Distributable(),
		NetTransferred: ss.bridge.NetTransferred(),
		TotalCredited:  savings.TotalCredits(constants.CategoryDistributable),
		TotalDebited:   savings.TotalDebits(constants.CategoryDistributable),
		Total:          savings.Total(constants.CategoryDistributable),
		Categories:     categoryBalances(savings),
		Foreign:        savings.ForeignCurrencyTotals(),
	}
}

func requireUserCategory(exists bool, category string) error {
	if !exists {
		return fmt.Errorf("%w: %q", ErrNotUserCategory, category)
	}
	return nil
}
