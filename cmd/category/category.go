package category

import (
	"github.com/hance08/pots/internal/service"
	"github.com/spf13/cobra"
)

func NewCategoryCmd(svc *service.Service) *cobra.Command {
	categoryCmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "List, add, delete and clear the categories of a pot",
	}

	categoryCmd.AddCommand(NewListCmd(svc))
	categoryCmd.AddCommand(NewAddCmd(svc))
	categoryCmd.AddCommand(NewDeleteCmd(svc))
	categoryCmd.AddCommand(NewClearCmd(svc))
	categoryCmd.AddCommand(NewNotesCmd(svc))

	return categoryCmd
}
