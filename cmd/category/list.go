package category

import (
	"github.com/hance08/pots/cmd/cmdutil"
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewListCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "list [savings|expenses]",
		Aliases: []string{"ls"},
		Short:   "List categories with their balances",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				for _, id := range []string{constants.LedgerSavings, constants.LedgerExpenses} {
					if err := listCategories(svc, id); err != nil {
						return err
					}
				}
				return nil
			}

			l, err := cmdutil.Ledger(svc, args, 0)
			if err != nil {
				return err
			}
			return listCategories(svc, l.ID())
		},
	}
}

func listCategories(svc *service.Service, id string) error {
	l, err := svc.Ledger(id)
	if err != nil {
		return err
	}

	var balances []service.CategoryBalance
	for _, c := range l.Categories() {
		balances = append(balances, service.CategoryBalance{Name: c, Balance: l.Balance(c)})
	}
	return views.RenderCategoryList(id, balances, l.Currency())
}
