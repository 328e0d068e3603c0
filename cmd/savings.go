package cmd

import (
	"github.com/hance08/pots/cmd/cmdutil"
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewSavingsCmd(svc *service.Service) *cobra.Command {
	savingsCmd := &cobra.Command{
		Use:     "savings",
		Aliases: []string{"s"},
		Short:   "Allocate, spend and return money in the savings pot",
		Long: `The savings pot receives money transferred from expenses (or other income)
into its distributable balance, which you then allocate to categories.`,
	}

	savingsCmd.AddCommand(newSavingsAddCmd(svc))
	savingsCmd.AddCommand(newSavingsSpendCmd(svc))
	savingsCmd.AddCommand(newSavingsIncomeCmd(svc))
	savingsCmd.AddCommand(newSavingsReturnCmd(svc))

	return savingsCmd
}

func newSavingsAddCmd(svc *service.Service) *cobra.Command {
	flags := &entryFlags{}

	cmd := &cobra.Command{
		Use:   "add [category] [amount]",
		Short: "Allocate distributable money to a category",
		Long: `Allocate money from the distributable balance to a savings category.

Examples:
  pots savings add Travel 200
  pots savings add Travel 50 --currency USD --note "flight deposit"`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &entryRunner{
				svc: svc, flags: flags, cmd: cmd,
				ledger:       svc.Bridge().Savings(),
				withCategory: true,
				withNote:     true,
				categoryMsg:  "Allocate to:",
				amountMsg:    "Amount to allocate:",
			}
			e, err := runner.collect(args)
			if err != nil {
				return err
			}

			tx, err := svc.Savings.Allocate(e.Category, e.Amount, e.Currency, e.Note)
			if err != nil {
				return err
			}

			code := svc.Settings.Currency()
			pterm.Success.Printf("Allocated %s to %s\n", cmdutil.Describe(tx.Amount, code, tx.Original), tx.Category)
			pterm.Info.Printf("Distributable: %s\n", utils.FormatAmount(svc.Bridge().Distributable(), code))
			return nil
		},
	}
	flags.bind(cmd, true)

	return cmd
}

func newSavingsSpendCmd(svc *service.Service) *cobra.Command {
	flags := &entryFlags{}

	cmd := &cobra.Command{
		Use:   "spend [category] [amount]",
		Short: "Spend money saved in a category",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &entryRunner{
				svc: svc, flags: flags, cmd: cmd,
				ledger:       svc.Bridge().Savings(),
				withCategory: true,
				withNote:     true,
				showBalance:  true,
				categoryMsg:  "Spend from:",
				amountMsg:    "Amount to spend:",
			}
			e, err := runner.collect(args)
			if err != nil {
				return err
			}

			tx, err := svc.Savings.Spend(e.Category, e.Amount, e.Currency, e.Note)
			if err != nil {
				return err
			}

			code := svc.Settings.Currency()
			pterm.Success.Printf("Spent %s from %s\n", cmdutil.Describe(tx.Amount, code, tx.Original), tx.Category)
			pterm.Info.Printf("%s balance: %s\n", tx.Category, utils.FormatAmount(svc.Bridge().Savings().Balance(tx.Category), code))
			return nil
		},
	}
	flags.bind(cmd, true)

	return cmd
}

func newSavingsIncomeCmd(svc *service.Service) *cobra.Command {
	flags := &entryFlags{}

	cmd := &cobra.Command{
		Use:   "income [amount]",
		Short: "Add income that goes straight into savings",
		Long:  `Add money that did not come from the expenses pot (gifts, interest, refunds) to the distributable balance.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &entryRunner{
				svc: svc, flags: flags, cmd: cmd,
				ledger:    svc.Bridge().Savings(),
				amountMsg: "Income amount:",
			}
			e, err := runner.collect(args)
			if err != nil {
				return err
			}

			tx, err := svc.Savings.AddOtherIncome(e.Amount, e.Currency)
			if err != nil {
				return err
			}

			code := svc.Settings.Currency()
			pterm.Success.Printf("Added %s to savings\n", cmdutil.Describe(tx.Amount, code, tx.Original))
			pterm.Info.Printf("Distributable: %s\n", utils.FormatAmount(svc.Bridge().Distributable(), code))
			return nil
		},
	}
	flags.bind(cmd, false)

	return cmd
}

func newSavingsReturnCmd(svc *service.Service) *cobra.Command {
	flags := &entryFlags{}

	cmd := &cobra.Command{
		Use:   "return [amount]",
		Short: "Return unallocated money to the expenses pot",
		Long: `Move distributable money back to expenses. At most the smaller of the
distributable balance and the net amount received from expenses is returned.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &entryRunner{
				svc: svc, flags: flags, cmd: cmd,
				ledger:    svc.Bridge().Savings(),
				amountMsg: "Amount to return:",
			}
			e, err := runner.collect(args)
			if err != nil {
				return err
			}

			res, err := svc.Savings.ReturnToExpenses(e.Amount, e.Currency)
			if err != nil {
				return err
			}

			code := svc.Settings.Currency()
			if res.Clamped() {
				pterm.Warning.Printf("Only %s could be returned (requested %s)\n",
					utils.FormatAmount(res.Returned, code), utils.FormatAmount(res.Requested, code))
			}
			pterm.Success.Printf("Returned %s to expenses\n", utils.FormatAmount(res.Returned, code))
			pterm.Info.Printf("Expenses remaining: %s\n", utils.FormatAmount(svc.Bridge().Remaining(), code))
			return nil
		},
	}
	flags.bind(cmd, false)

	return cmd
}
