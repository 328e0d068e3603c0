package service

import (
	"fmt"

	"github.com/hance08/pots/internal/bridge"
	"github.com/hance08/pots/internal/currency"
	"github.com/hance08/pots/internal/ledger"
	"github.com/rs/zerolog"
)

type SettingsService struct {
	bridge *bridge.Bridge
	book   *currency.Book
	log    zerolog.Logger
}

func NewSettingsService(b *bridge.Bridge, book *currency.Book, log zerolog.Logger) *SettingsService {
	return &SettingsService{bridge: b, book: book, log: log}
}

func (s *SettingsService) Currency() string {
	return s.bridge.Savings().Currency()
}

func (s *SettingsService) ExchangeRates() currency.Rates {
	return s.book.Rates()
}

// ChangeCurrency re-prices both ledgers into code. If the second ledger
// cannot be saved the first one is converted back.
func (s *SettingsService) ChangeCurrency(code string) error {
	code = currency.Normalize(code)
	if _, ok := s.book.Rates()[code]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCurrency, code)
	}

	savings, expenses := s.bridge.Savings(), s.bridge.Expenses()
	previous := savings.Currency()

	if err := savings.Rebase(code); err != nil {
		return fmt.Errorf("failed to change savings currency: %w", err)
	}
	if err := expenses.Rebase(code); err != nil {
		if rbErr := savings.Rebase(previous); rbErr != nil {
			s.log.Error().Err(rbErr).Str("currency", previous).Msg("failed to restore savings currency")
		}
		return fmt.Errorf("failed to change expenses currency: %w", err)
	}

	s.log.Info().Str("from", previous).Str("to", code).Msg("accounting currency changed")
	return nil
}

// SetExchangeRates installs a new table for conversion, stores it with both
// ledgers and re-prices every foreign-currency record.
func (s *SettingsService) SetExchangeRates(rates currency.Rates) error {
	if err := currency.ValidateRates(rates); err != nil {
		return err
	}

	previous := s.book.Rates()
	s.book.Replace(rates)

	savings, expenses := s.bridge.Savings(), s.bridge.Expenses()
	if err := savings.SetExchangeRates(rates); err != nil {
		s.book.Replace(previous)
		return fmt.Errorf("failed to store exchange rates: %w", err)
	}
	if err := expenses.SetExchangeRates(rates); err != nil {
		s.book.Replace(previous)
		if rbErr := savings.SetExchangeRates(previous); rbErr != nil {
			s.log.Error().Err(rbErr).Msg("failed to restore savings exchange rates")
		}
		return fmt.Errorf("failed to store exchange rates: %w", err)
	}

	for _, l := range []*ledger.Ledger{savings, expenses} {
		n, err := l.RecalculateForeignAmounts()
		if err != nil {
			return fmt.Errorf("failed to re-price %s: %w", l.ID(), err)
		}
		s.log.Debug().Str("ledger", l.ID()).Int("repriced", n).Msg("foreign amounts recalculated")
	}
	return nil
}
