package views

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/currency"
	"github.com/hance08/pots/internal/ledger"
	"github.com/hance08/pots/internal/model"
	"github.com/hance08/pots/internal/service"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plain(rows pterm.TableData) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = pterm.RemoveColorFromString(cell)
		}
	}
	return out
}

func sampleTxs() []model.Transaction {
	base := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	return []model.Transaction{
		{ID: uuid.MustParse("11111111-0000-0000-0000-000000000000"), Kind: model.Credit, Category: constants.CategoryDistributable,
			Amount: decimal.NewFromInt(100), Timestamp: base, Note: constants.NoteTransfer},
		{ID: uuid.MustParse("22222222-0000-0000-0000-000000000000"), Kind: model.Debit, Category: "Travel",
			Amount: decimal.RequireFromString("9.26"), Timestamp: base.Add(time.Hour), Note: "",
			Original: &model.Money{Currency: "USD", Amount: decimal.NewFromInt(10)}},
	}
}

func TestTransactionListRows(t *testing.T) {
	rows := plain(NewTransactionListView("EUR").Rows(sampleTxs(), 0))

	require.Len(t, rows, 3)
	assert.Equal(t, []string{"22222222", "2024-05-01 09:00", "Travel", "-€9.26", "$10.00", "-"}, rows[1])
	assert.Equal(t, []string{"11111111", "2024-05-01 08:00", "Distributable", "+€100.00", "-", "Transfer"}, rows[2])
}

func TestTransactionListRows_Limit(t *testing.T) {
	rows := NewTransactionListView("EUR").Rows(sampleTxs(), 1)
	assert.Len(t, rows, 2)
}

func TestTransactionDetailRows(t *testing.T) {
	tx := sampleTxs()[1]
	rows := plain(TransactionDetailRows(constants.LedgerSavings, tx, "EUR"))

	assert.Contains(t, rows, []string{"Type", "Debit -"})
	assert.Contains(t, rows, []string{"Amount", "€9.26"})
	assert.Contains(t, rows, []string{"Entered as", "$10.00"})
	assert.Contains(t, rows, []string{"Pot", "savings"})
}

func TestSummaryRows(t *testing.T) {
	savings := service.SavingsSummary{
		Currency:      "SEK",
		Distributable: decimal.RequireFromString("1234.5"),
	}
	rows := plain(SavingsRows(savings))
	assert.Equal(t, []string{"Distributable", "1,234.50 kr"}, rows[0])

	expenses := service.ExpensesSummary{Currency: "EUR", Remaining: decimal.NewFromInt(-5)}
	assert.Equal(t, []string{"Remaining", "-€5.00"}, plain(ExpensesRows(expenses))[0])
}

func TestForeignRows(t *testing.T) {
	rows := plain(ForeignRows(map[string]ledger.ForeignTotal{
		"USD": {Credited: decimal.NewFromInt(10), Debited: decimal.Zero},
		"SEK": {Credited: decimal.Zero, Debited: decimal.NewFromInt(50)},
	}))

	require.Len(t, rows, 3)
	assert.Equal(t, "SEK", rows[1][0])
	assert.Equal(t, []string{"USD", "$10.00", "$0.00"}, rows[2])
}

func TestCategoryRows(t *testing.T) {
	rows := plain(CategoryRows([]service.CategoryBalance{
		{Name: "Travel", Balance: decimal.NewFromInt(40)},
		{Name: "Housing", Balance: decimal.NewFromInt(-3)},
	}, "EUR"))

	assert.Equal(t, [][]string{{"Category", "Balance"}, {"Travel", "€40.00"}, {"Housing", "-€3.00"}}, rows)
}

func TestRatesRows(t *testing.T) {
	rows := plain(RatesRows(currency.DefaultRates(), "EUR"))

	require.Len(t, rows, 4)
	assert.Equal(t, []string{"EUR *", "€", "1"}, rows[1])
	assert.Equal(t, []string{"SEK", "kr", "11.5"}, rows[2])
}

func TestSystemInfoRows(t *testing.T) {
	rows := plain(SystemInfoRows(SystemInfoItem{
		Backend:   "file",
		Recovered: map[string]error{"savings": errors.New("corrupt state")},
	}))

	assert.Contains(t, rows, []string{"Data Status", "Not Found (Will be created)"})
	assert.Contains(t, rows, []string{"Recovered savings", "corrupt state"})
}
