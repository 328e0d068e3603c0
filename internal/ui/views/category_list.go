package views

import (
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/ui"
	"github.com/hance08/pots/internal/utils"
	"github.com/pterm/pterm"
)

func CategoryRows(balances []service.CategoryBalance, currencyCode string) pterm.TableData {
	rows := pterm.TableData{{"Category", "Balance"}}
	for _, c := range balances {
		balance := utils.FormatAmount(c.Balance, currencyCode)
		if c.Balance.IsNegative() {
			balance = pterm.Red(balance)
		}
		rows = append(rows, []string{c.Name, balance})
	}
	return rows
}

func renderCategories(balances []service.CategoryBalance, currencyCode string) error {
	if len(balances) == 0 {
		pterm.Info.Println("No categories")
		return nil
	}
	ui.PrintL2Title("Categories")
	return pterm.DefaultTable.WithHasHeader().WithData(CategoryRows(balances, currencyCode)).Render()
}

func RenderCategoryList(ledgerID string, balances []service.CategoryBalance, currencyCode string) error {
	pterm.DefaultSection.Printf("%s categories", ledgerID)
	if err := renderCategories(balances, currencyCode); err != nil {
		return err
	}
	pterm.Info.Printf("Total: %d categories\n", len(balances))
	return nil
}

func RenderPresetNotes(category string, notes []string) {
	if len(notes) == 0 {
		pterm.Info.Printf("No preset notes for %s\n", category)
		return
	}
	items := make([]pterm.BulletListItem, 0, len(notes))
	for _, n := range notes {
		items = append(items, pterm.BulletListItem{Level: 0, Text: n})
	}
	ui.PrintL2Title("Preset notes: %s", category)
	pterm.DefaultBulletList.WithItems(items).Render()
}
