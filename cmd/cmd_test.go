package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hance08/pots/internal/app"
	"github.com/hance08/pots/internal/bridge"
	"github.com/hance08/pots/internal/config"
	"github.com/hance08/pots/internal/model"
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/utils"
	"github.com/hance08/pots/migrations"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *app.App {
	t.Helper()
	cfg := config.NewDefault()
	cfg.Storage.Path = filepath.Join(t.TempDir(), "data")

	a, cleanup, err := app.NewApp(cfg, migrations.FS)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return a
}

func run(a *app.App, args ...string) error {
	root := NewRootCmd(a)
	root.SetArgs(args)
	return root.Execute()
}

func mustRun(t *testing.T, a *app.App, args ...string) {
	t.Helper()
	require.NoError(t, run(a, args...), "pots %v", args)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestPotsFlow(t *testing.T) {
	a := newTestApp(t)
	b := a.Service.Bridge()

	mustRun(t, a, "expenses", "income", "1000", "--note", "salary")
	mustRun(t, a, "expenses", "spend", "Housing", "200", "--note", "rent")
	assertDecimal(t, "800", b.Remaining())
	assert.Contains(t, b.Expenses().PresetNotes("Housing"), "rent")

	mustRun(t, a, "expenses", "transfer", "300")
	assertDecimal(t, "500", b.Remaining())
	assertDecimal(t, "300", b.Distributable())

	mustRun(t, a, "savings", "add", "Travel", "100", "--note", "trip")
	mustRun(t, a, "savings", "spend", "Travel", "40")
	assertDecimal(t, "60", b.Savings().Balance("Travel"))
	assertDecimal(t, "200", b.Distributable())

	mustRun(t, a, "savings", "income", "20")
	assertDecimal(t, "220", b.Distributable())

	mustRun(t, a, "savings", "return", "500")
	assertDecimal(t, "0", b.Distributable())
	assert.ErrorIs(t, run(a, "savings", "return", "1"), bridge.ErrNothingToReturn)

	mustRun(t, a, "status")
	mustRun(t, a, "info")
}

func TestEntryRejections(t *testing.T) {
	a := newTestApp(t)
	mustRun(t, a, "expenses", "income", "100")

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"overspend expenses", []string{"expenses", "spend", "Housing", "500"}, model.ErrInsufficientFunds},
		{"allocate without distributable", []string{"savings", "add", "Travel", "1"}, model.ErrInsufficientFunds},
		{"unknown currency", []string{"expenses", "spend", "Housing", "5", "--currency", "GBP"}, service.ErrUnknownCurrency},
		{"bad amount", []string{"expenses", "transfer", "abc"}, utils.ErrInvalidAmount},
		{"internal category", []string{"savings", "spend", "__distributable__", "1"}, service.ErrNotUserCategory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, run(a, tt.args...), tt.want)
		})
	}

	assert.Error(t, run(a, "savings", "add", "Travel", "1", "extra"))
	assertDecimal(t, "100", a.Service.Bridge().Remaining())
}

func TestForeignCurrencyEntry(t *testing.T) {
	a := newTestApp(t)

	mustRun(t, a, "expenses", "income", "108", "--currency", "usd")
	income := a.Service.Expenses.Income()
	require.Len(t, income, 1)
	assertDecimal(t, "100", income[0].Amount)
	require.NotNil(t, income[0].Original)
	assert.Equal(t, "USD", income[0].Original.Currency)
}

func TestCategoryCommands(t *testing.T) {
	a := newTestApp(t)
	savings := a.Service.Bridge().Savings()
	expenses := a.Service.Bridge().Expenses()

	mustRun(t, a, "category", "add", "savings", "Pets")
	assert.True(t, savings.HasCategory("Pets"))
	assert.Error(t, run(a, "category", "add", "savings", "Pets"))
	assert.Error(t, run(a, "category", "add", "savings", "__hidden"))

	mustRun(t, a, "category", "notes", "expenses", "Housing", "--add", "groceries")
	assert.Equal(t, []string{"groceries"}, expenses.PresetNotes("Housing"))
	mustRun(t, a, "category", "notes", "expenses", "Housing", "--remove", "groceries")
	assert.Empty(t, expenses.PresetNotes("Housing"))
	assert.Error(t, run(a, "category", "notes", "expenses", "Housing", "--add", "a", "--remove", "b"))

	mustRun(t, a, "expenses", "income", "100")
	mustRun(t, a, "expenses", "transfer", "50")
	mustRun(t, a, "savings", "add", "Pets", "30")
	mustRun(t, a, "category", "clear", "savings", "Pets", "--yes")
	assert.True(t, savings.HasCategory("Pets"))
	assert.Empty(t, savings.TransactionsFor("Pets"))

	mustRun(t, a, "category", "delete", "savings", "Pets", "--yes")
	assert.False(t, savings.HasCategory("Pets"))
	assert.Error(t, run(a, "category", "delete", "savings", "Pets", "--yes"))

	mustRun(t, a, "category", "list")
	mustRun(t, a, "category", "list", "savings")
}

func TestTransactionCommands(t *testing.T) {
	a := newTestApp(t)
	expenses := a.Service.Bridge().Expenses()

	mustRun(t, a, "expenses", "income", "100")
	mustRun(t, a, "expenses", "spend", "Loans", "10")
	spent := expenses.TransactionsFor("Loans")
	require.Len(t, spent, 1)
	id := spent[0].ID
	short := id.String()[:8]

	mustRun(t, a, "transaction", "list", "expenses", "--limit", "5")
	mustRun(t, a, "transaction", "list", "expenses", "--category", "income")
	mustRun(t, a, "transaction", "show", short)

	mustRun(t, a, "transaction", "edit", short, "--amount", "12", "--note", "bank")
	edited, ok := expenses.Transaction(id)
	require.True(t, ok)
	assertDecimal(t, "12", edited.Amount)
	assert.Equal(t, "bank", edited.Note)

	mustRun(t, a, "transaction", "edit", id.String(), "--currency", "USD")
	edited, _ = expenses.Transaction(id)
	require.NotNil(t, edited.Original)
	assert.Equal(t, "USD", edited.Original.Currency)
	assertDecimal(t, "12", edited.Original.Amount)
	assert.Equal(t, "bank", edited.Note)

	mustRun(t, a, "transaction", "delete", short, "--yes")
	_, ok = expenses.Transaction(id)
	assert.False(t, ok)
	assert.ErrorIs(t, run(a, "transaction", "show", short), service.ErrTransactionNotFound)

	mustRun(t, a, "expenses", "transfer", "10")
	out := expenses.TransactionsFor("__transfer_out__")
	require.Len(t, out, 1)
	assert.ErrorIs(t, run(a, "transaction", "delete", out[0].ID.String(), "--yes"), service.ErrBridgeRecord)

	income := a.Service.Expenses.Income()
	require.Len(t, income, 1)
	assert.ErrorIs(t, run(a, "transaction", "delete", income[0].ID.String(), "--yes"), model.ErrIncomeLocked)
}

func TestRatesAndCurrencyCommands(t *testing.T) {
	a := newTestApp(t)
	settings := a.Service.Settings

	mustRun(t, a, "rates", "set", "usd", "2")
	assertDecimal(t, "2", settings.ExchangeRates()["USD"])
	assert.Error(t, run(a, "rates", "set", "USD", "-1"))

	ratesFile := filepath.Join(t.TempDir(), "rates.yaml")
	require.NoError(t, os.WriteFile(ratesFile, []byte("SEK: 10\nUSD: 1.5\n"), 0644))
	mustRun(t, a, "rates", "load", ratesFile)
	rates := settings.ExchangeRates()
	assertDecimal(t, "10", rates["SEK"])
	assertDecimal(t, "1.5", rates["USD"])
	assertDecimal(t, "1", rates["EUR"])
	assert.Error(t, run(a, "rates", "load", filepath.Join(t.TempDir(), "missing.yaml")))
	mustRun(t, a, "rates", "show")

	mustRun(t, a, "expenses", "income", "100")
	mustRun(t, a, "currency", "set", "SEK", "--yes")
	assert.Equal(t, "SEK", settings.Currency())
	assertDecimal(t, "1000", a.Service.Bridge().Income())

	mustRun(t, a, "currency", "set", "sek")
	assert.ErrorIs(t, run(a, "currency", "set", "GBP", "--yes"), service.ErrUnknownCurrency)
	mustRun(t, a, "currency")
}

func TestExportAndClear(t *testing.T) {
	a := newTestApp(t)
	mustRun(t, a, "expenses", "income", "100")
	mustRun(t, a, "expenses", "transfer", "40")

	target := filepath.Join(t.TempDir(), "savings")
	mustRun(t, a, "export", "savings", target)
	_, err := os.Stat(target + ".xlsx")
	assert.NoError(t, err)

	mustRun(t, a, "clear", "savings", "--yes")
	assert.Empty(t, a.Service.Bridge().Savings().Transactions())
	assert.Empty(t, a.Service.Bridge().Expenses().TransactionsFor("__transfer_out__"))
	assertDecimal(t, "100", a.Service.Bridge().Remaining())

	assert.ErrorIs(t, run(a, "clear", "pension", "--yes"), service.ErrUnknownLedger)
}

func TestConfigFlag(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"status"}, ""},
		{[]string{"-c", "/tmp/a.yaml", "status"}, "/tmp/a.yaml"},
		{[]string{"status", "--config", "b.yaml"}, "b.yaml"},
		{[]string{"--config=c.yaml"}, "c.yaml"},
		{[]string{"-c=d.yaml"}, "d.yaml"},
		{[]string{"-ce.yaml"}, "e.yaml"},
		{[]string{"--", "-c", "x"}, ""},
		{[]string{"-c"}, ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, configFlag(tt.args), "%v", tt.args)
	}
}
