package category

import (
	"fmt"

	"github.com/hance08/pots/cmd/cmdutil"
	"github.com/hance08/pots/internal/ledger"
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/ui"
	"github.com/hance08/pots/internal/utils"
	"github.com/hance08/pots/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type removeFlags struct {
	Yes bool
}

// removeRunner is shared by delete and clear, which differ only in whether
// the category itself survives.
type removeRunner struct {
	svc    *service.Service
	flags  *removeFlags
	delete bool
}

func NewDeleteCmd(svc *service.Service) *cobra.Command {
	flags := &removeFlags{}

	cmd := &cobra.Command{
		Use:   "delete [savings|expenses] [name]",
		Short: "Delete a category and all of its transactions",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &removeRunner{svc: svc, flags: flags, delete: true}
			return runner.Run(args)
		},
	}
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func NewClearCmd(svc *service.Service) *cobra.Command {
	flags := &removeFlags{}

	cmd := &cobra.Command{
		Use:   "clear [savings|expenses] [name]",
		Short: "Delete all transactions of a category but keep the category",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &removeRunner{svc: svc, flags: flags}
			return runner.Run(args)
		},
	}
	cmd.Flags().BoolVarP(&flags.Yes, "yes", "y", false, "Skip confirmation")

	return cmd
}

func (r *removeRunner) Run(args []string) error {
	l, err := cmdutil.Ledger(r.svc, args, 0)
	if err != nil {
		return err
	}

	name, err := cmdutil.Category(l, args, 1, "Category:", true)
	if err != nil {
		return err
	}
	if err := validation.NewCategoryValidator(l).ValidateExistingCategory(name); err != nil {
		return err
	}

	if !r.flags.Yes {
		ok, err := r.confirm(l, name)
		if err != nil {
			return err
		}
		if !ok {
			pterm.Info.Println("Cancelled")
			return nil
		}
	}

	if r.delete {
		if err := l.DeleteCategory(name); err != nil {
			return err
		}
		pterm.Success.Printf("Category '%s' deleted from %s\n", name, l.ID())
		return nil
	}

	n, err := l.ClearCategory(name)
	if err != nil {
		return err
	}
	pterm.Success.Printf("Removed %d transactions from '%s'\n", n, name)
	return nil
}

func (r *removeRunner) confirm(l *ledger.Ledger, name string) (bool, error) {
	count := len(l.TransactionsFor(name))
	balance := utils.FormatAmount(l.Balance(name), l.Currency())

	action := "clear"
	if r.delete {
		action = "delete"
	}
	pterm.Warning.Printf("'%s' has %d transactions (balance %s)\n", name, count, balance)
	pterm.Warning.Println("This action cannot be undone!")
	return ui.ConfirmDestructive(fmt.Sprintf("Do you want to %s '%s'?", action, name))
}
