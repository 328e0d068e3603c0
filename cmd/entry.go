package cmd

import (
	"github.com/hance08/pots/cmd/cmdutil"
	"github.com/hance08/pots/internal/ledger"
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/ui/prompts"
	"github.com/hance08/pots/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type entryFlags struct {
	Currency string
	Note     string
}

func (f *entryFlags) bind(cmd *cobra.Command, withNote bool) {
	cmd.Flags().StringVar(&f.Currency, "currency", "", "Currency of the amount (default: accounting currency)")
	if withNote {
		cmd.Flags().StringVarP(&f.Note, "note", "n", "", "Optional note")
	}
}

// entry is one amount a user enters against a pot.
type entry struct {
	Category string
	Amount   decimal.Decimal
	Currency string
	Note     string
}

// entryRunner collects an entry from arguments and flags. Missing arguments
// switch the command to interactive mode.
type entryRunner struct {
	svc   *service.Service
	flags *entryFlags
	cmd   *cobra.Command

	ledger       *ledger.Ledger
	withCategory bool
	withNote     bool
	showBalance  bool
	categoryMsg  string
	amountMsg    string
}

func (r *entryRunner) collect(args []string) (entry, error) {
	var e entry
	var err error

	want := 1
	if r.withCategory {
		want = 2
	}
	interactive := len(args) < want

	amountIdx := 0
	if r.withCategory {
		e.Category, err = cmdutil.Category(r.ledger, args, 0, r.categoryMsg, r.showBalance)
		if err != nil {
			return entry{}, err
		}
		amountIdx = 1
	}

	e.Amount, err = cmdutil.Amount(args, amountIdx, r.amountMsg)
	if err != nil {
		return entry{}, err
	}

	code := r.flags.Currency
	if interactive && !r.cmd.Flags().Changed("currency") {
		code, err = cmdutil.PromptCurrency(r.svc)
		if err != nil {
			return entry{}, err
		}
	}
	e.Currency, err = cmdutil.Currency(r.svc, code)
	if err != nil {
		return entry{}, err
	}

	if r.withNote {
		e.Note = r.flags.Note
		if interactive && !r.cmd.Flags().Changed("note") {
			var presets []string
			if e.Category != "" {
				presets = r.ledger.PresetNotes(e.Category)
			}
			e.Note, err = prompts.PromptNote(presets)
			if err != nil {
				return entry{}, err
			}
		}
		if err := validation.ValidateNote(e.Note); err != nil {
			return entry{}, err
		}
	}

	return e, nil
}
