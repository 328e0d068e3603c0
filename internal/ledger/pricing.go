package ledger

import (
	"fmt"

	"github.com/hance08/pots/internal/currency"
	"github.com/hance08/pots/internal/model"
	"github.com/shopspring/decimal"
)

// Price converts an amount entered in code into the accounting currency.
// The original pair is returned only when code is foreign to the ledger.
func (l *Ledger) Price(amount decimal.Decimal, code string) (decimal.Decimal, *model.Money) {
	code = currency.Normalize(code)
	accounting := l.Currency()
	if code == "" || code == accounting {
		return amount, nil
	}
	return l.converter.Convert(amount, code, accounting), &model.Money{Currency: code, Amount: amount}
}

func (l *Ledger) Converter() *currency.Converter {
	return l.converter
}

func (l *Ledger) SetCurrency(code string) error {
	code = currency.Normalize(code)
	return l.commit(func(next *model.State) error {
		next.Currency = code
		return nil
	})
}

// ConvertAllAmounts re-prices every stored amount from one currency to
// another in a single write.
func (l *Ledger) ConvertAllAmounts(from, to string) error {
	return l.commit(func(next *model.State) error {
		l.convertAll(next, from, to)
		return nil
	})
}

// Rebase converts every amount into code and makes it the accounting
// currency, persisted as one write.
func (l *Ledger) Rebase(code string) error {
	code = currency.Normalize(code)
	return l.commit(func(next *model.State) error {
		if next.Currency == code {
			return nil
		}
		l.convertAll(next, next.Currency, code)
		next.Currency = code
		return nil
	})
}

func (l *Ledger) convertAll(st *model.State, from, to string) {
	for i := range st.Transactions {
		tx := &st.Transactions[i]
		tx.Amount = l.converter.Convert(tx.Amount, from, to)
	}
}

// RecalculateForeignAmounts re-derives the amount of every record entered in
// a foreign currency from its original pair and the current rates. It
// returns how many amounts changed and skips the write when none did.
func (l *Ledger) RecalculateForeignAmounts() (int, error) {
	l.mu.RLock()
	accounting := l.state.Currency
	changed := 0
	for _, tx := range l.state.Transactions {
		if tx.Original != nil && !l.converter.Convert(tx.Original.Amount, tx.Original.Currency, accounting).Equal(tx.Amount) {
			changed++
		}
	}
	l.mu.RUnlock()

	if changed == 0 {
		return 0, nil
	}

	err := l.commit(func(next *model.State) error {
		for i := range next.Transactions {
			tx := &next.Transactions[i]
			if tx.Original == nil {
				continue
			}
			tx.Amount = l.converter.Convert(tx.Original.Amount, tx.Original.Currency, next.Currency)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return changed, nil
}

// SetExchangeRates stores the ledger's copy of the rate table. Installing
// the table for conversion is the owner of the shared Book's job.
func (l *Ledger) SetExchangeRates(rates currency.Rates) error {
	if err := currency.ValidateRates(rates); err != nil {
		return fmt.Errorf("invalid exchange rates: %w", err)
	}
	return l.commit(func(next *model.State) error {
		next.Rates = rates.Clone()
		return nil
	})
}
