package views

import (
	"github.com/hance08/pots/internal/currency"
	"github.com/pterm/pterm"
)

func RatesRows(rates currency.Rates, accounting string) pterm.TableData {
	rows := pterm.TableData{{"Currency", "Symbol", "1 EUR ="}}
	for _, code := range rates.Codes() {
		name := code
		if code == accounting {
			name = pterm.Cyan(code + " *")
		}
		rows = append(rows, []string{name, currency.Lookup(code).Symbol, rates[code].String()})
	}
	return rows
}

func RenderRates(rates currency.Rates, accounting string) error {
	pterm.DefaultSection.Println("Exchange rates")
	if err := pterm.DefaultTable.WithHasHeader().WithData(RatesRows(rates, accounting)).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("* accounting currency (%s)\n", accounting)
	return nil
}
