package cmd

import (
	"path/filepath"
	"strings"

	"github.com/hance08/pots/cmd/cmdutil"
	"github.com/hance08/pots/internal/export"
	"github.com/hance08/pots/internal/service"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func NewExportCmd(svc *service.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "export [savings|expenses] [file.xlsx]",
		Short: "Export a pot to an Excel workbook",
		Long: `Write every transaction of a pot to an .xlsx workbook with a summary sheet,
one sheet per category and one per foreign currency.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := cmdutil.Ledger(svc, args, 0)
			if err != nil {
				return err
			}

			path := l.ID() + ".xlsx"
			if len(args) > 1 {
				path = args[1]
			}
			if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
				path += ".xlsx"
			}

			if err := export.WriteFile(path, l); err != nil {
				return err
			}

			pterm.Success.Printf("Exported %d %s transactions to %s\n", len(l.Transactions()), l.ID(), path)
			return nil
		},
	}
}
