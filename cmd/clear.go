package cmd

import (
	"github.com/hance08/pots/cmd/cmdutil"
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/ui"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewClearCmd(svc *service.Service) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear [savings|expenses]",
		Short: "Delete every transaction of a pot",
		Long: `Delete every transaction of a pot. Transfer records that mirror it in the
other pot are removed as well, so both pots stay consistent.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := cmdutil.Ledger(svc, args, 0)
			if err != nil {
				return err
			}

			if !yes {
				pterm.Warning.Printf("About to delete all %d transactions in %s\n", len(l.Transactions()), l.ID())
				ok, err := ui.ConfirmDestructive("Do you want to clear " + l.ID() + "?")
				if err != nil {
					return err
				}
				if !ok {
					pterm.Info.Println("Clear cancelled")
					return nil
				}
			}

			if err := svc.Clear(l.ID()); err != nil {
				return err
			}

			pterm.Success.Printf("Cleared %s\n", l.ID())
			ui.Separator()
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
