package views

import (
	"sort"

	"github.com/hance08/pots/internal/ledger"
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/ui"
	"github.com/hance08/pots/internal/utils"
	"github.com/pterm/pterm"
)

func SavingsRows(s service.SavingsSummary) pterm.TableData {
	return pterm.TableData{
		{"Distributable", utils.FormatAmount(s.Distributable, s.Currency)},
		{"Received from expenses", utils.FormatAmount(s.NetTransferred, s.Currency)},
		{"Allocated", utils.FormatAmount(s.TotalCredited, s.Currency)},
		{"Spent", utils.FormatAmount(s.TotalDebited, s.Currency)},
		{"Total in categories", utils.FormatAmount(s.Total, s.Currency)},
	}
}

func ExpensesRows(s service.ExpensesSummary) pterm.TableData {
	return pterm.TableData{
		{"Remaining", utils.FormatAmount(s.Remaining, s.Currency)},
		{"Income", utils.FormatAmount(s.Income, s.Currency)},
		{"Spent", utils.FormatAmount(s.Spent, s.Currency)},
		{"Sent to savings", utils.FormatAmount(s.Transferred, s.Currency)},
	}
}

// ForeignRows lists money entered in other currencies, sorted by code.
func ForeignRows(foreign map[string]ledger.ForeignTotal) pterm.TableData {
	codes := make([]string, 0, len(foreign))
	for code := range foreign {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	rows := pterm.TableData{{"Currency", "Credited", "Debited"}}
	for _, code := range codes {
		t := foreign[code]
		rows = append(rows, []string{
			code,
			utils.FormatAmount(t.Credited, code),
			utils.FormatAmount(t.Debited, code),
		})
	}
	return rows
}

func RenderStatus(savings service.SavingsSummary, expenses service.ExpensesSummary) error {
	ui.PrintL1Title("Savings")
	if err := pterm.DefaultTable.WithData(SavingsRows(savings)).Render(); err != nil {
		return err
	}
	if err := renderCategories(savings.Categories, savings.Currency); err != nil {
		return err
	}
	if err := renderForeign(savings.Foreign); err != nil {
		return err
	}

	pterm.Println()
	ui.PrintL1Title("Expenses")
	if err := pterm.DefaultTable.WithData(ExpensesRows(expenses)).Render(); err != nil {
		return err
	}
	if err := renderCategories(expenses.Categories, expenses.Currency); err != nil {
		return err
	}
	return renderForeign(expenses.Foreign)
}

func renderForeign(foreign map[string]ledger.ForeignTotal) error {
	if len(foreign) == 0 {
		return nil
	}
	ui.PrintL2Title("Foreign currencies")
	return pterm.DefaultTable.WithHasHeader().WithData(ForeignRows(foreign)).Render()
}
