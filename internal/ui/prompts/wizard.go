package prompts

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hance08/pots/internal/currency"
	"github.com/hance08/pots/internal/validation"
)

func PromptInitCurrency(currDefault string) (string, error) {
	selection := currDefault

	var opts []huh.Option[string]
	for _, code := range currency.Codes() {
		info := currency.Lookup(code)
		opts = append(opts, huh.NewOption(code+" ("+info.Symbol+")", code))
	}

	err := huh.NewSelect[string]().
		Title("Welcome to Pots! This is the first run, please choose your accounting currency:").
		Description("Both pots keep their balances in this currency. Other currencies are converted on entry.").
		Options(opts...).
		Value(&selection).
		Run()
	if err != nil {
		return "", err
	}

	return selection, nil
}

// PromptCurrency asks for an input currency. Leaving it empty keeps the
// ledger currency.
func PromptCurrency(ledgerCurrency string, known []string) (string, error) {
	options := append([]string{ledgerCurrency + " (accounting currency)"}, withoutCode(known, ledgerCurrency)...)

	selected, err := PromptSelect("Currency:", options, ledgerCurrency)
	if err != nil {
		return "", err
	}

	return strings.Fields(selected)[0], nil
}

// PromptRate asks for the value of one EUR in code.
func PromptRate(code string, current string) (string, error) {
	return PromptInput("1 EUR in "+code+":", current, func(s string) error {
		if s == "" {
			return nil
		}
		return validation.ValidateRate(s)
	})
}

func withoutCode(codes []string, skip string) []string {
	out := make([]string, 0, len(codes))
	for _, c := range codes {
		if c != skip {
			out = append(out, c)
		}
	}
	return out
}
