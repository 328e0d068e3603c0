package cmd

import (
	"github.com/hance08/pots/internal/currency"
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/ui"
	"github.com/hance08/pots/internal/ui/prompts"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewCurrencyCmd(svc *service.Service) *cobra.Command {
	currencyCmd := &cobra.Command{
		Use:   "currency",
		Short: "Show or change the accounting currency",
		RunE: func(cmd *cobra.Command, args []string) error {
			code := svc.Settings.Currency()
			pterm.Info.Printf("Accounting currency: %s (%s)\n", code, currency.Lookup(code).Symbol)
			return nil
		},
	}

	currencyCmd.AddCommand(newCurrencySetCmd(svc))

	return currencyCmd
}

func newCurrencySetCmd(svc *service.Service) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "set [code]",
		Short: "Change the accounting currency and convert every amount",
		Long: `Change the accounting currency of both pots. Every stored amount is
converted with the current exchange rates.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			current := svc.Settings.Currency()

			var code string
			if len(args) > 0 {
				code = currency.Normalize(args[0])
			} else {
				selected, err := prompts.PromptSelect("New accounting currency:", svc.Settings.ExchangeRates().Codes(), current)
				if err != nil {
					return err
				}
				code = selected
			}

			if code == current {
				pterm.Info.Printf("Accounting currency is already %s\n", code)
				return nil
			}

			if !yes {
				ok, err := ui.ConfirmDestructive("Convert all amounts from " + current + " to " + code + "?")
				if err != nil {
					return err
				}
				if !ok {
					pterm.Info.Println("Currency change cancelled")
					return nil
				}
			}

			if err := svc.Settings.ChangeCurrency(code); err != nil {
				return err
			}

			pterm.Success.Printf("Accounting currency changed from %s to %s\n", current, code)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
