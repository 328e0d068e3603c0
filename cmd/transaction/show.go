package transaction

import (
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/ui/prompts"
	"github.com/hance08/pots/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewShowCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "show <transaction-id>",
		Short: "Show transaction details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, tx, err := svc.ResolveTransaction(args[0])
			if err != nil {
				return err
			}
			return views.RenderTransactionDetail(l.ID(), tx, l.Currency())
		},
	}
}

// selectTransaction resolves args[0] or lets the user pick from a pot.
func selectTransaction(svc *service.Service, args []string, message string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	ledgerID, err := prompts.PromptLedger("Which pot?")
	if err != nil {
		return "", err
	}
	l, err := svc.Ledger(ledgerID)
	if err != nil {
		return "", err
	}
	tx, err := prompts.PromptTransactionSelection(l.Transactions(), l.Currency(), message)
	if err != nil {
		return "", err
	}
	return tx.ID.String(), nil
}
