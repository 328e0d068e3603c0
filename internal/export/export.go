// Package export writes a read-only workbook projection of a ledger.
package export

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/model"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetAll     = "All Transactions"
	SheetSummary = "Summary"

	maxSheetName = 31
)

// Source is the read side of a ledger.
type Source interface {
	ID() string
	Currency() string
	Categories() []string
	Transactions() []model.Transaction
	Balance(category string) decimal.Decimal
}

type builder struct {
	f       *excelize.File
	src     Source
	txs     []model.Transaction
	foreign []string
	used    map[string]bool
	header  int
}

// Workbook builds the workbook in memory. The caller closes the file.
func Workbook(src Source) (*excelize.File, error) {
	b := &builder{
		f:    excelize.NewFile(),
		src:  src,
		txs:  src.Transactions(),
		used: map[string]bool{},
	}
	b.foreign = foreignCodes(b.txs)

	style, err := b.f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		b.f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	b.header = style

	steps := []func() error{b.allTransactions, b.summary, b.categorySheets, b.currencySheets}
	for _, step := range steps {
		if err := step(); err != nil {
			b.f.Close()
			return nil, err
		}
	}

	b.f.SetActiveSheet(0)
	return b.f, nil
}

func WriteFile(path string, src Source) error {
	f, err := Workbook(src)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func Write(w io.Writer, src Source) error {
	f, err := Workbook(src)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (b *builder) allTransactions() error {
	if err := b.f.SetSheetName("Sheet1", SheetAll); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	b.used[SheetAll] = true

	amountHeader := fmt.Sprintf("Amount (%s)", b.src.Currency())
	rows := [][]any{{"Date", "Category", "Type", amountHeader, "Original Amount", "Original Currency", "Note"}}
	for _, tx := range b.txs {
		var origAmount, origCode any
		if tx.Original != nil {
			origAmount = tx.Original.Amount.InexactFloat64()
			origCode = tx.Original.Currency
		}
		rows = append(rows, []any{
			tx.Timestamp.Format(constants.DateTimeFormat),
			constants.CategoryLabel(tx.Category),
			kindLabel(tx.Kind),
			tx.Amount.InexactFloat64(),
			origAmount,
			origCode,
			tx.Note,
		})
	}
	return b.writeRows(SheetAll, rows)
}

// summary lists credited, debited and balance per category, plus credited
// and debited per foreign currency, with a TOTAL row of SUM formulas.
func (b *builder) summary() error {
	if err := b.addSheet(SheetSummary); err != nil {
		return err
	}

	header := []any{"Category", "Credited", "Debited", "Balance"}
	for _, code := range b.foreign {
		header = append(header, code+" Credited", code+" Debited")
	}
	rows := [][]any{header}

	for _, cat := range b.summaryCategories() {
		credited, debited := decimal.Zero, decimal.Zero
		fc := map[string][2]decimal.Decimal{}
		for _, tx := range b.txs {
			if tx.Category != cat {
				continue
			}
			if tx.Kind == model.Credit {
				credited = credited.Add(tx.Amount)
			} else {
				debited = debited.Add(tx.Amount)
			}
			if tx.Original != nil {
				pair := fc[tx.Original.Currency]
				if tx.Kind == model.Credit {
					pair[0] = pair[0].Add(tx.Original.Amount)
				} else {
					pair[1] = pair[1].Add(tx.Original.Amount)
				}
				fc[tx.Original.Currency] = pair
			}
		}

		row := []any{
			constants.CategoryLabel(cat),
			credited.InexactFloat64(),
			debited.InexactFloat64(),
			b.src.Balance(cat).InexactFloat64(),
		}
		for _, code := range b.foreign {
			row = append(row, fc[code][0].InexactFloat64(), fc[code][1].InexactFloat64())
		}
		rows = append(rows, row)
	}

	if err := b.writeRows(SheetSummary, rows); err != nil {
		return err
	}

	totalRow := len(rows) + 1
	totalCell, _ := excelize.CoordinatesToCellName(1, totalRow)
	if err := b.f.SetCellValue(SheetSummary, totalCell, "TOTAL"); err != nil {
		return fmt.Errorf("failed to write total label: %w", err)
	}
	for col := 2; col <= len(header); col++ {
		colName, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		cell := fmt.Sprintf("%s%d", colName, totalRow)
		formula := fmt.Sprintf("SUM(%s2:%s%d)", colName, colName, totalRow-1)
		if err := b.f.SetCellFormula(SheetSummary, cell, formula); err != nil {
			return fmt.Errorf("failed to write total formula: %w", err)
		}
	}

	lastCell, _ := excelize.CoordinatesToCellName(len(header), totalRow)
	return b.f.SetCellStyle(SheetSummary, totalCell, lastCell, b.header)
}

// summaryCategories are the user categories followed by any internal
// category that holds records.
func (b *builder) summaryCategories() []string {
	cats := b.src.Categories()
	for _, tx := range b.txs {
		if !slices.Contains(cats, tx.Category) {
			cats = append(cats, tx.Category)
		}
	}
	return cats
}

func (b *builder) categorySheets() error {
	for _, cat := range b.src.Categories() {
		name := b.uniqueName(cat)
		if err := b.addSheet(name); err != nil {
			return err
		}

		rows := [][]any{{"Date", "Type", "Amount", "Original", "Note"}}
		for _, tx := range b.txs {
			if tx.Category != cat {
				continue
			}
			var original any
			if tx.Original != nil {
				original = tx.Original.String()
			}
			rows = append(rows, []any{
				tx.Timestamp.Format(constants.DateTimeFormat),
				kindLabel(tx.Kind),
				tx.Amount.InexactFloat64(),
				original,
				tx.Note,
			})
		}
		if err := b.writeRows(name, rows); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) currencySheets() error {
	for _, code := range b.foreign {
		name := b.uniqueName(code + " Transactions")
		if err := b.addSheet(name); err != nil {
			return err
		}

		rows := [][]any{{"Date", "Category", "Type", code + " Amount", fmt.Sprintf("Amount (%s)", b.src.Currency()), "Note"}}
		for _, tx := range b.txs {
			if tx.Original == nil || tx.Original.Currency != code {
				continue
			}
			rows = append(rows, []any{
				tx.Timestamp.Format(constants.DateTimeFormat),
				constants.CategoryLabel(tx.Category),
				kindLabel(tx.Kind),
				tx.Original.Amount.InexactFloat64(),
				tx.Amount.InexactFloat64(),
				tx.Note,
			})
		}
		if err := b.writeRows(name, rows); err != nil {
			return err
		}
	}
	return nil
}

func (b *builder) addSheet(name string) error {
	if _, err := b.f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to add sheet %q: %w", name, err)
	}
	b.used[name] = true
	return nil
}

func (b *builder) writeRows(sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := b.f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}

	if len(rows) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err := b.f.SetCellStyle(sheet, "A1", last, b.header); err != nil {
			return fmt.Errorf("failed to style %s header: %w", sheet, err)
		}
		lastCol, _ := excelize.ColumnNumberToName(len(rows[0]))
		if err := b.f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
			return fmt.Errorf("failed to size %s columns: %w", sheet, err)
		}
	}
	return nil
}

// uniqueName makes a category usable as a sheet name: forbidden characters
// replaced, at most 31 characters, no clash with an existing sheet.
func (b *builder) uniqueName(raw string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '-'
		}
		return r
	}, raw)
	name = strings.Trim(name, "'")
	if name == "" {
		name = "Sheet"
	}
	name = truncate(name, maxSheetName)

	candidate := name
	for i := 2; b.taken(candidate); i++ {
		suffix := fmt.Sprintf(" (%d)", i)
		candidate = truncate(name, maxSheetName-len(suffix)) + suffix
	}
	return candidate
}

func (b *builder) taken(name string) bool {
	for used := range b.used {
		if strings.EqualFold(used, name) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func foreignCodes(txs []model.Transaction) []string {
	var codes []string
	for _, tx := range txs {
		if tx.Original != nil && !slices.Contains(codes, tx.Original.Currency) {
			codes = append(codes, tx.Original.Currency)
		}
	}
	slices.Sort(codes)
	return codes
}

func kindLabel(k model.Kind) string {
	if k == model.Debit {
		return "Spend"
	}
	return "Add"
}
