package cmd

import (
	"github.com/hance08/pots/cmd/cmdutil"
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/utils"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewExpensesCmd(svc *service.Service) *cobra.Command {
	expensesCmd := &cobra.Command{
		Use:     "expenses",
		Aliases: []string{"e"},
		Short:   "Record income, spending and transfers in the expenses pot",
	}

	expensesCmd.AddCommand(newExpensesIncomeCmd(svc))
	expensesCmd.AddCommand(newExpensesSpendCmd(svc))
	expensesCmd.AddCommand(newExpensesTransferCmd(svc))

	return expensesCmd
}

func newExpensesIncomeCmd(svc *service.Service) *cobra.Command {
	flags := &entryFlags{}

	cmd := &cobra.Command{
		Use:   "income [amount]",
		Short: "Record income (e.g. salary)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &entryRunner{
				svc: svc, flags: flags, cmd: cmd,
				ledger:    svc.Bridge().Expenses(),
				withNote:  true,
				amountMsg: "Income amount:",
			}
			e, err := runner.collect(args)
			if err != nil {
				return err
			}

			tx, err := svc.Expenses.AddIncome(e.Amount, e.Currency, e.Note)
			if err != nil {
				return err
			}

			code := svc.Settings.Currency()
			pterm.Success.Printf("Recorded income of %s\n", cmdutil.Describe(tx.Amount, code, tx.Original))
			pterm.Info.Printf("Remaining: %s\n", utils.FormatAmount(svc.Bridge().Remaining(), code))
			return nil
		},
	}
	flags.bind(cmd, true)

	return cmd
}

func newExpensesSpendCmd(svc *service.Service) *cobra.Command {
	flags := &entryFlags{}

	cmd := &cobra.Command{
		Use:   "spend [category] [amount]",
		Short: "Record an expense",
		Long: `Record an expense against the remaining balance of the expenses pot.
Notes are remembered per category and offered again next time.

Examples:
  pots expenses spend Housing 850 --note rent
  pots expenses spend Shopping 120 --currency SEK`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &entryRunner{
				svc: svc, flags: flags, cmd: cmd,
				ledger:       svc.Bridge().Expenses(),
				withCategory: true,
				withNote:     true,
				categoryMsg:  "Expense category:",
				amountMsg:    "Amount spent:",
			}
			e, err := runner.collect(args)
			if err != nil {
				return err
			}

			tx, err := svc.Expenses.Spend(e.Category, e.Amount, e.Currency, e.Note)
			if err != nil {
				return err
			}

			code := svc.Settings.Currency()
			pterm.Success.Printf("Spent %s on %s\n", cmdutil.Describe(tx.Amount, code, tx.Original), tx.Category)
			pterm.Info.Printf("Remaining: %s\n", utils.FormatAmount(svc.Bridge().Remaining(), code))
			return nil
		},
	}
	flags.bind(cmd, true)

	return cmd
}

func newExpensesTransferCmd(svc *service.Service) *cobra.Command {
	flags := &entryFlags{}

	cmd := &cobra.Command{
		Use:     "transfer [amount]",
		Aliases: []string{"save"},
		Short:   "Transfer money from expenses to savings",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &entryRunner{
				svc: svc, flags: flags, cmd: cmd,
				ledger:    svc.Bridge().Expenses(),
				amountMsg: "Amount to transfer:",
			}
			e, err := runner.collect(args)
			if err != nil {
				return err
			}

			tr, err := svc.Expenses.TransferToSavings(e.Amount, e.Currency)
			if err != nil {
				return err
			}

			code := svc.Settings.Currency()
			pterm.Success.Printf("Transferred %s to savings\n", cmdutil.Describe(tr.Debit.Amount, code, tr.Debit.Original))
			pterm.Info.Printf("Remaining: %s | Distributable: %s\n",
				utils.FormatAmount(svc.Bridge().Remaining(), code),
				utils.FormatAmount(svc.Bridge().Distributable(), code))
			return nil
		},
	}
	flags.bind(cmd, false)

	return cmd
}
