package prompts

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/model"
	"github.com/hance08/pots/internal/utils"
	"github.com/shopspring/decimal"
)

// PromptLedger asks which pot to work on.
func PromptLedger(message string) (string, error) {
	return PromptSelect(message, []string{constants.LedgerSavings, constants.LedgerExpenses}, constants.LedgerSavings)
}

// PromptCategorySelection prompts for a category with an optional balance
// next to each name.
func PromptCategorySelection(
	categories []string,
	message string,
	currencyCode string,
	balanceGetter func(string) decimal.Decimal,
) (string, error) {
	if len(categories) == 0 {
		return "", fmt.Errorf("no categories available")
	}

	opts := make([]huh.Option[string], 0, len(categories))
	for _, c := range categories {
		display := c
		if balanceGetter != nil {
			display = fmt.Sprintf("%s (Balance: %s)", c, utils.FormatAmount(balanceGetter(c), currencyCode))
		}
		opts = append(opts, huh.NewOption(display, c))
	}

	var selected string
	err := huh.NewSelect[string]().
		Title(message).
		Options(opts...).
		Value(&selected).
		Height(15).
		Run()
	if err != nil {
		return "", err
	}

	return selected, nil
}

// PromptTransactionSelection lists transactions newest first and returns the
// chosen one.
func PromptTransactionSelection(txs []model.Transaction, currencyCode string, message string) (model.Transaction, error) {
	if len(txs) == 0 {
		return model.Transaction{}, fmt.Errorf("no transactions available")
	}

	opts := make([]huh.Option[int], 0, len(txs))
	for i := len(txs) - 1; i >= 0; i-- {
		opts = append(opts, huh.NewOption(TransactionLabel(txs[i], currencyCode), i))
	}

	var idx int
	err := huh.NewSelect[int]().
		Title(message).
		Options(opts...).
		Value(&idx).
		Height(15).
		Run()
	if err != nil {
		return model.Transaction{}, err
	}

	return txs[idx], nil
}

func TransactionLabel(tx model.Transaction, currencyCode string) string {
	sign := "+"
	if tx.Kind == model.Debit {
		sign = "-"
	}
	label := fmt.Sprintf("%s  %-16s %s%s",
		tx.Timestamp.Format(constants.DateTimeFormat),
		utils.Truncate(constants.CategoryLabel(tx.Category), 16),
		sign,
		utils.FormatAmount(tx.Amount, currencyCode),
	)
	if tx.Note != "" {
		label += "  " + utils.Truncate(tx.Note, 30)
	}
	return label
}
