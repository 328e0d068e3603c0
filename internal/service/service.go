package service

import (
	"fmt"

	"github.com/hance08/pots/internal/bridge"
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/currency"
	"github.com/hance08/pots/internal/ledger"
	"github.com/rs/zerolog"
)

type Service struct {
	Savings  *SavingsService
	Expenses *ExpensesService
	Settings *SettingsService

	bridge *bridge.Bridge
	log    zerolog.Logger
}

func NewService(b *bridge.Bridge, book *currency.Book, log zerolog.Logger) *Service {
	return &Service{
		Savings:  NewSavingsService(b, log),
		Expenses: NewExpensesService(b, log),
		Settings: NewSettingsService(b, book, log),
		bridge:   b,
		log:      log,
	}
}

func (s *Service) Bridge() *bridge.Bridge {
	return s.bridge
}

// Ledger resolves a ledger by id ("savings" or "expenses").
func (s *Service) Ledger(id string) (*ledger.Ledger, error) {
	switch id {
	case constants.LedgerSavings:
		return s.bridge.Savings(), nil
	case constants.LedgerExpenses:
		return s.bridge.Expenses(), nil
	default:
		return nil, fmt.Errorf("%w: %q (use %s or %s)", ErrUnknownLedger, id, constants.LedgerSavings, constants.LedgerExpenses)
	}
}

// Clear removes every transaction of a ledger together with the transfer
// records that mirror it in the other ledger.
func (s *Service) Clear(id string) error {
	switch id {
	case constants.LedgerSavings:
		return s.bridge.ClearSavings()
	case constants.LedgerExpenses:
		return s.bridge.ClearExpenses()
	default:
		_, err := s.Ledger(id)
		return err
	}
}
