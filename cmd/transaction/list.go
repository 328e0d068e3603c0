package transaction

import (
	"strings"

	"github.com/hance08/pots/cmd/cmdutil"
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/ledger"
	"github.com/hance08/pots/internal/model"
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/ui/views"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

type listFlags struct {
	Category string
	Limit    int
}

type listRunner struct {
	svc   *service.Service
	flags *listFlags
}

func NewListCmd(svc *service.Service) *cobra.Command {
	flags := &listFlags{}

	cmd := &cobra.Command{
		Use:     "list [savings|expenses]",
		Aliases: []string{"ls", "l"},
		Short:   "List recent transactions",
		Long: `List recent transactions of a pot, newest first.

Internal bookkeeping categories are shown by their display names
(Distributable, Transfer Out, Income).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &listRunner{
				svc:   svc,
				flags: flags,
			}
			return runner.Run(args)
		},
	}

	cmd.Flags().StringVarP(&flags.Category, "category", "g", "", "Filter transactions by category")
	cmd.Flags().IntVarP(&flags.Limit, "limit", "l", 20, "Maximum number of transactions to display")

	return cmd
}

func (r *listRunner) Run(args []string) error {
	l, err := cmdutil.Ledger(r.svc, args, 0)
	if err != nil {
		return err
	}

	txs := l.Transactions()
	if r.flags.Category != "" {
		txs = r.filter(l, categoryFromLabel(r.flags.Category))
		pterm.Info.Printf("Showing transactions for category: %s\n\n", r.flags.Category)
	}

	return views.NewTransactionListView(l.Currency()).Render(txs, r.flags.Limit)
}

// filter treats "Income" in savings as money added directly to the
// distributable pool.
func (r *listRunner) filter(l *ledger.Ledger, category string) []model.Transaction {
	if category == constants.CategorySalary {
		if l.ID() == constants.LedgerSavings {
			return r.svc.Savings.OtherIncome()
		}
		return r.svc.Expenses.Income()
	}
	return l.Filter(func(tx model.Transaction) bool { return tx.Category == category })
}

// categoryFromLabel maps display names of internal categories back to their
// stored names.
func categoryFromLabel(name string) string {
	for category, label := range constants.CategoryLabels {
		if strings.EqualFold(label, name) {
			return category
		}
	}
	return name
}
