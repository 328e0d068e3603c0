package cmd

import (
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/ui/views"
	"github.com/spf13/cobra"
)

func NewStatusCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Aliases: []string{"st"},
		Short:   "Show balances of both pots",
		RunE: func(cmd *cobra.Command, args []string) error {
			return views.RenderStatus(svc.Savings.Summary(), svc.Expenses.Summary())
		},
	}
}
