package transaction

import (
	"github.com/hance08/pots/internal/service"
	"github.com/spf13/cobra"
)

func NewTransactionCmd(svc *service.Service) *cobra.Command {
	transactionCmd := &cobra.Command{
		Use:     "transaction",
		Aliases: []string{"tx"},
		Short:   "List, show, edit and delete transactions",
		Long: `Manage single transactions. Transactions are addressed by id; the first
8 characters shown by "pots transaction list" are enough.`,
	}

	transactionCmd.AddCommand(NewListCmd(svc))
	transactionCmd.AddCommand(NewShowCmd(svc))
	transactionCmd.AddCommand(NewEditCmd(svc))
	transactionCmd.AddCommand(NewDeleteCmd(svc))

	return transactionCmd
}
