package views

import (
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/model"
	"github.com/hance08/pots/internal/ui"
	"github.com/hance08/pots/internal/utils"
	"github.com/pterm/pterm"
)

type TransactionListView struct {
	Currency string
}

func NewTransactionListView(currencyCode string) *TransactionListView {
	return &TransactionListView{Currency: currencyCode}
}

// Rows renders the newest transactions first, at most limit of them.
func (v *TransactionListView) Rows(txs []model.Transaction, limit int) pterm.TableData {
	rows := pterm.TableData{
		{"ID", "Date", "Category", "Amount", "Original", "Note"},
	}

	shown := 0
	for i := len(txs) - 1; i >= 0; i-- {
		if limit > 0 && shown == limit {
			break
		}
		tx := txs[i]

		amount := utils.FormatAmount(tx.Signed(), v.Currency)
		if tx.Kind == model.Credit {
			amount = "+" + amount
		}
		amount = ui.Signed(amount, tx.Kind == model.Credit)

		original := "-"
		if tx.Original != nil {
			original = utils.FormatAmount(tx.Original.Amount, tx.Original.Currency)
		}

		rows = append(rows, []string{
			tx.ID.String()[:8],
			tx.Timestamp.Format(constants.DateTimeFormat),
			constants.CategoryLabel(tx.Category),
			amount,
			original,
			utils.Truncate(displayNote(tx.Note), 40),
		})
		shown++
	}
	return rows
}

func (v *TransactionListView) Render(txs []model.Transaction, limit int) error {
	if len(txs) == 0 {
		pterm.Warning.Println("No transactions found")
		return nil
	}

	pterm.DefaultSection.Printf("Showing recent transactions (limit: %d)", limit)
	if err := pterm.DefaultTable.WithHasHeader().WithData(v.Rows(txs, limit)).Render(); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d transactions\n", len(txs))
	return nil
}

func displayNote(note string) string {
	switch note {
	case "":
		return "-"
	case constants.NoteTransfer:
		return "Transfer"
	case constants.NoteTransferBack:
		return "Transfer back"
	}
	return note
}
