package category

import (
	"github.com/hance08/pots/cmd/cmdutil"
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/ui/prompts"
	"github.com/hance08/pots/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewAddCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "add [savings|expenses] [name]",
		Short: "Add a category",
		Example: `  pots category add savings "Emergency fund"
  pots category add expenses Subscriptions`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := cmdutil.Ledger(svc, args, 0)
			if err != nil {
				return err
			}
			validator := validation.NewCategoryValidator(l)

			var name string
			if len(args) > 1 {
				name = args[1]
				if err := validator.ValidateNewCategory(name); err != nil {
					return err
				}
			} else {
				name, err = prompts.PromptInput("Category name:", "", func(s string) error {
					return validator.ValidateNewCategory(s)
				})
				if err != nil {
					return err
				}
			}

			added, err := l.AddCategory(name)
			if err != nil {
				return err
			}
			if !added {
				pterm.Warning.Printf("Category '%s' already exists in %s\n", name, l.ID())
				return nil
			}

			pterm.Success.Printf("Category '%s' added to %s\n", name, l.ID())
			return nil
		},
	}
}
