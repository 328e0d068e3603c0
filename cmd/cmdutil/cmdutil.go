// Package cmdutil resolves command arguments, falling back to interactive
// prompts when an argument is missing.
package cmdutil

import (
	"fmt"

	"github.com/hance08/pots/internal/currency"
	"github.com/hance08/pots/internal/ledger"
	"github.com/hance08/pots/internal/model"
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/ui/prompts"
	"github.com/hance08/pots/internal/utils"
	"github.com/hance08/pots/internal/validation"
	"github.com/shopspring/decimal"
)

const amountHelp = "Enter the amount, no need currency symbol (e.g. 150 or 150.50)"

// Ledger returns the ledger named by args[i].
func Ledger(svc *service.Service, args []string, i int) (*ledger.Ledger, error) {
	if len(args) > i {
		return svc.Ledger(args[i])
	}
	id, err := prompts.PromptLedger("Which pot?")
	if err != nil {
		return nil, err
	}
	return svc.Ledger(id)
}

func Amount(args []string, i int, message string) (decimal.Decimal, error) {
	if len(args) > i {
		amount, err := utils.ParseAmount(args[i])
		if err != nil {
			return decimal.Zero, err
		}
		return amount, nil
	}
	return prompts.PromptAmount(message, amountHelp)
}

// Category returns args[i] or asks for one of the ledger's categories.
func Category(l *ledger.Ledger, args []string, i int, message string, showBalance bool) (string, error) {
	if len(args) > i {
		return args[i], nil
	}
	var balance func(string) decimal.Decimal
	if showBalance {
		balance = l.Balance
	}
	return prompts.PromptCategorySelection(l.Categories(), message, l.Currency(), balance)
}

// Currency checks an input currency against the installed rate table. An
// empty code means the accounting currency.
func Currency(svc *service.Service, code string) (string, error) {
	if err := validation.ValidateCurrency(code); err != nil {
		return "", err
	}
	code = currency.Normalize(code)
	if code == "" {
		return "", nil
	}
	if _, ok := svc.Settings.ExchangeRates()[code]; !ok {
		return "", fmt.Errorf("%w: %s", service.ErrUnknownCurrency, code)
	}
	return code, nil
}

// PromptCurrency asks for the input currency when more than one is known.
func PromptCurrency(svc *service.Service) (string, error) {
	codes := svc.Settings.ExchangeRates().Codes()
	accounting := svc.Settings.Currency()
	if len(codes) <= 1 {
		return "", nil
	}
	code, err := prompts.PromptCurrency(accounting, codes)
	if err != nil {
		return "", err
	}
	if code == accounting {
		return "", nil
	}
	return code, nil
}

// Describe formats a recorded amount, mentioning the entered currency when
// it differs.
func Describe(amount decimal.Decimal, code string, original *model.Money) string {
	text := utils.FormatAmount(amount, code)
	if original != nil {
		text += fmt.Sprintf(" (entered as %s)", utils.FormatAmount(original.Amount, original.Currency))
	}
	return text
}
