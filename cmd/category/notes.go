package category

import (
	"fmt"

	"github.com/hance08/pots/cmd/cmdutil"
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/ui/views"
	"github.com/hance08/pots/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type notesFlags struct {
	Add    string
	Remove string
}

func NewNotesCmd(svc *service.Service) *cobra.Command {
	flags := &notesFlags{}

	cmd := &cobra.Command{
		Use:   "notes [savings|expenses] [category]",
		Short: "Show or edit the preset notes of a category",
		Example: `  pots category notes expenses Housing
  pots category notes expenses Housing --add rent
  pots category notes expenses Housing --remove rent`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.Add != "" && flags.Remove != "" {
				return fmt.Errorf("--add and --remove cannot be used together")
			}

			l, err := cmdutil.Ledger(svc, args, 0)
			if err != nil {
				return err
			}
			name, err := cmdutil.Category(l, args, 1, "Category:", false)
			if err != nil {
				return err
			}
			if err := validation.NewCategoryValidator(l).ValidateExistingCategory(name); err != nil {
				return err
			}

			switch {
			case flags.Add != "":
				if err := validation.ValidateNote(flags.Add); err != nil {
					return err
				}
				added, err := l.AddPresetNote(name, flags.Add)
				if err != nil {
					return err
				}
				if added {
					pterm.Success.Printf("Preset note '%s' added to %s\n", flags.Add, name)
				} else {
					pterm.Info.Printf("'%s' is already a preset note of %s\n", flags.Add, name)
				}
			case flags.Remove != "":
				removed, err := l.RemovePresetNote(name, flags.Remove)
				if err != nil {
					return err
				}
				if removed {
					pterm.Success.Printf("Preset note '%s' removed from %s\n", flags.Remove, name)
				} else {
					pterm.Warning.Printf("'%s' is not a preset note of %s\n", flags.Remove, name)
				}
			}

			views.RenderPresetNotes(name, l.PresetNotes(name))
			return nil
		},
	}
	cmd.Flags().StringVar(&flags.Add, "add", "", "Add a preset note")
	cmd.Flags().StringVar(&flags.Remove, "remove", "", "Remove a preset note")

	return cmd
}
