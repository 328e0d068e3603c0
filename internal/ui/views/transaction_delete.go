package views

import (
	"github.com/hance08/pots/internal/model"
	"github.com/hance08/pots/internal/ui"
	"github.com/pterm/pterm"
)

func RenderTransactionDeletePreview(ledgerID string, tx model.Transaction, currencyCode string) error {
	pterm.Warning.Printf("About to delete transaction %s:\n", tx.ID)
	if err := pterm.DefaultTable.WithData(TransactionDetailRows(ledgerID, tx, currencyCode)[1:]).Render(); err != nil {
		return err
	}
	pterm.Warning.Println("This action cannot be undone!")
	return nil
}

func RenderTransactionDeleteSuccess(tx model.Transaction) {
	pterm.Success.Printf("Transaction %s deleted successfully\n", tx.ID)
	ui.Separator()
}
