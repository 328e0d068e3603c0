package transaction

import (
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/ui"
	"github.com/hance08/pots/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewDeleteCmd(svc *service.Service) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete [transaction-id]",
		Short: "Delete a transaction",
		Long: `Delete a single transaction. Income cannot be deleted while money has been
transferred to savings, and transfer records are only removed by clearing a pot.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := selectTransaction(svc, args, "Select transaction to delete:")
			if err != nil {
				return err
			}
			l, tx, err := svc.ResolveTransaction(ref)
			if err != nil {
				return err
			}

			if !yes {
				if err := views.RenderTransactionDeletePreview(l.ID(), tx, l.Currency()); err != nil {
					return err
				}
				ok, err := ui.ConfirmDestructive("Do you want to delete this transaction?")
				if err != nil {
					return err
				}
				if !ok {
					pterm.Info.Println("Deletion cancelled")
					return nil
				}
			}

			if err := svc.DeleteTransaction(tx.ID); err != nil {
				return err
			}

			views.RenderTransactionDeleteSuccess(tx)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")

	return cmd
}
