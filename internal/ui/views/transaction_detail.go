package views

import (
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/model"
	"github.com/hance08/pots/internal/ui"
	"github.com/hance08/pots/internal/utils"
	"github.com/pterm/pterm"
)

func TransactionDetailRows(ledgerID string, tx model.Transaction, currencyCode string) pterm.TableData {
	kind := "Credit +"
	if tx.Kind == model.Debit {
		kind = "Debit -"
	}

	rows := pterm.TableData{
		{"Field", "Value"},
		{"ID", tx.ID.String()},
		{"Pot", ledgerID},
		{"Date", tx.Timestamp.Format(constants.DateTimeFormat)},
		{"Category", constants.CategoryLabel(tx.Category)},
		{"Type", kind},
		{"Amount", utils.FormatAmount(tx.Amount, currencyCode)},
		{"Note", displayNote(tx.Note)},
	}
	if tx.Original != nil {
		rows = append(rows, []string{"Entered as", utils.FormatAmount(tx.Original.Amount, tx.Original.Currency)})
	}
	return rows
}

func RenderTransactionDetail(ledgerID string, tx model.Transaction, currencyCode string) error {
	pterm.Println()
	ui.PrintL2Title("Transaction Info")
	return pterm.DefaultTable.
		WithHasHeader().
		WithHeaderStyle(pterm.NewStyle(pterm.FgGray)).
		WithData(TransactionDetailRows(ledgerID, tx, currencyCode)).
		Render()
}
