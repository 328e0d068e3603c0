package cmd

import (
	"fmt"
	"os"

	"github.com/hance08/pots/internal/currency"
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/ui/prompts"
	"github.com/hance08/pots/internal/ui/views"
	"github.com/hance08/pots/internal/utils"
	"github.com/hance08/pots/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewRatesCmd(svc *service.Service) *cobra.Command {
	ratesCmd := &cobra.Command{
		Use:   "rates",
		Short: "Show and update exchange rates",
		Long: `Exchange rates are given as the value of 1 EUR in each currency.
Changing them re-prices every amount that was entered in another currency.`,
	}

	ratesCmd.AddCommand(newRatesShowCmd(svc))
	ratesCmd.AddCommand(newRatesSetCmd(svc))
	ratesCmd.AddCommand(newRatesLoadCmd(svc))

	return ratesCmd
}

func newRatesShowCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "show",
		Aliases: []string{"ls"},
		Short:   "Show the exchange rate table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return views.RenderRates(svc.Settings.ExchangeRates(), svc.Settings.Currency())
		},
	}
}

func newRatesSetCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "set [code] [rate]",
		Short: "Set the rate of one currency",
		Example: `  pots rates set USD 1.10
  pots rates set SEK 11.2`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rates := svc.Settings.ExchangeRates()

			var code, rawRate string
			if len(args) > 0 {
				code = args[0]
			} else {
				selected, err := prompts.PromptSelect("Currency:", rates.Codes(), "")
				if err != nil {
					return err
				}
				code = selected
			}
			if err := validation.ValidateCurrency(code); err != nil {
				return err
			}
			code = currency.Normalize(code)

			if len(args) > 1 {
				rawRate = args[1]
			} else {
				current := ""
				if r, ok := rates[code]; ok {
					current = r.String()
				}
				input, err := prompts.PromptRate(code, current)
				if err != nil {
					return err
				}
				rawRate = input
			}
			if err := validation.ValidateRate(rawRate); err != nil {
				return err
			}
			rate, err := utils.ParseAmount(rawRate)
			if err != nil {
				return err
			}

			rates[code] = rate
			if err := svc.Settings.SetExchangeRates(rates); err != nil {
				return err
			}

			pterm.Success.Printf("1 EUR = %s %s\n", rate, code)
			return nil
		},
	}
}

func newRatesLoadCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "load <file.yaml>",
		Short: "Load rates from a YAML file",
		Long: `Load exchange rates from a YAML mapping of currency code to rate, e.g.

  EUR: 1.0
  SEK: 11.5
  USD: 1.08

Loaded rates replace the rates of the same currencies; others are kept.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read rates file: %w", err)
			}
			loaded, err := currency.ParseRatesYAML(data)
			if err != nil {
				return err
			}

			rates := svc.Settings.ExchangeRates()
			for code, rate := range loaded {
				rates[code] = rate
			}
			if err := svc.Settings.SetExchangeRates(rates); err != nil {
				return err
			}

			pterm.Success.Printf("Loaded %d exchange rates from %s\n", len(loaded), args[0])
			return views.RenderRates(svc.Settings.ExchangeRates(), svc.Settings.Currency())
		},
	}
}
