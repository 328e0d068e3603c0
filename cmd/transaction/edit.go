package transaction

import (
	"errors"

	"github.com/hance08/pots/cmd/cmdutil"
	"github.com/hance08/pots/internal/ledger"
	"github.com/hance08/pots/internal/model"
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/ui/prompts"
	"github.com/hance08/pots/internal/ui/views"
	"github.com/hance08/pots/internal/utils"
	"github.com/hance08/pots/internal/validation"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var errEditCancelled = errors.New("edit cancelled")

type editFlags struct {
	Amount   string
	Currency string
	Note     string
}

type EditCommandRunner struct {
	svc   *service.Service
	flags *editFlags
	cmd   *cobra.Command
}

func NewEditCmd(svc *service.Service) *cobra.Command {
	flags := &editFlags{}

	cmd := &cobra.Command{
		Use:   "edit [transaction-id]",
		Short: "Edit the amount or note of a transaction",
		Long: `Edit a transaction's amount, input currency or note. Without flags the
edit is interactive.

Examples:
  pots transaction edit 3f2a9c1b --amount 42.50
  pots transaction edit 3f2a9c1b --amount 10 --currency USD --note "taxi"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &EditCommandRunner{
				svc:   svc,
				flags: flags,
				cmd:   cmd,
			}
			return runner.Run(args)
		},
	}

	cmd.Flags().StringVarP(&flags.Amount, "amount", "a", "", "New amount")
	cmd.Flags().StringVar(&flags.Currency, "currency", "", "Currency of the new amount (default: accounting currency)")
	cmd.Flags().StringVarP(&flags.Note, "note", "n", "", "New note")

	return cmd
}

func (r *EditCommandRunner) Run(args []string) error {
	ref, err := selectTransaction(r.svc, args, "Select transaction to edit:")
	if err != nil {
		return err
	}
	l, tx, err := r.svc.ResolveTransaction(ref)
	if err != nil {
		return err
	}

	hasFlags := r.cmd.Flags().Changed("amount") || r.cmd.Flags().Changed("currency") || r.cmd.Flags().Changed("note")

	var in service.EditInput
	if hasFlags {
		in, err = r.flagsMode(tx)
	} else {
		in, err = r.interactiveMode(l, tx)
	}
	if errors.Is(err, errEditCancelled) {
		pterm.Info.Println("Changes discarded")
		return nil
	}
	if err != nil {
		return err
	}

	if err := r.svc.EditTransaction(tx.ID, in); err != nil {
		return err
	}

	edited, _ := l.Transaction(tx.ID)
	pterm.Success.Printf("Transaction updated: %s\n", cmdutil.Describe(edited.Amount, l.Currency(), edited.Original))
	return nil
}

// flagsMode keeps whatever was not given: the amount stays as entered,
// including its original currency.
func (r *EditCommandRunner) flagsMode(tx model.Transaction) (service.EditInput, error) {
	in := service.EditInput{Amount: tx.Amount}
	if tx.Original != nil {
		in.Amount, in.Currency = tx.Original.Amount, tx.Original.Currency
	}

	if r.cmd.Flags().Changed("amount") {
		amount, err := utils.ParseAmount(r.flags.Amount)
		if err != nil {
			return service.EditInput{}, err
		}
		in.Amount = amount
		in.Currency = ""
	}
	if r.cmd.Flags().Changed("currency") {
		code, err := cmdutil.Currency(r.svc, r.flags.Currency)
		if err != nil {
			return service.EditInput{}, err
		}
		in.Currency = code
	}
	if r.cmd.Flags().Changed("note") {
		if err := validation.ValidateNote(r.flags.Note); err != nil {
			return service.EditInput{}, err
		}
		note := r.flags.Note
		in.Note = &note
	}
	return in, nil
}

func (r *EditCommandRunner) interactiveMode(l *ledger.Ledger, tx model.Transaction) (service.EditInput, error) {
	pterm.DefaultSection.Printf("Editing Transaction %s", tx.ID.String()[:8])
	if err := views.RenderTransactionDetail(l.ID(), tx, l.Currency()); err != nil {
		return service.EditInput{}, err
	}

	current := tx.Amount.StringFixed(2)
	if tx.Original != nil {
		current = tx.Original.Amount.StringFixed(2)
	}
	rawAmount, err := prompts.PromptInput("Amount:", current, func(s string) error {
		if s == "" {
			return nil
		}
		return validation.ValidateAmount(s)
	})
	if err != nil {
		return service.EditInput{}, err
	}
	amount, err := utils.ParseAmount(rawAmount)
	if err != nil {
		return service.EditInput{}, err
	}

	code, err := cmdutil.PromptCurrency(r.svc)
	if err != nil {
		return service.EditInput{}, err
	}

	note, err := prompts.PromptInput("Note:", tx.Note, func(s string) error { return validation.ValidateNote(s) })
	if err != nil {
		return service.EditInput{}, err
	}

	save, err := prompts.PromptConfirm("Save changes?", true)
	if err != nil {
		return service.EditInput{}, err
	}
	if !save {
		return service.EditInput{}, errEditCancelled
	}

	return service.EditInput{Amount: amount, Currency: code, Note: &note}, nil
}
