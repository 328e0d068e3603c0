package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hance08/pots/internal/config"
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/currency"
	"github.com/hance08/pots/migrations"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, backend, name string) *config.Config {
	t.Helper()
	cfg := config.NewDefault()
	cfg.Storage.Backend = backend
	cfg.Storage.Path = filepath.Join(t.TempDir(), name)
	return cfg
}

func TestNewApp_Backends(t *testing.T) {
	tests := []struct {
		backend string
		name    string
	}{
		{constants.BackendFile, "data"},
		{constants.BackendSQLite, "pots.db"},
		{constants.BackendBolt, "pots.bolt"},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			cfg := testConfig(t, tt.backend, tt.name)

			a, cleanup, err := NewApp(cfg, migrations.FS)
			require.NoError(t, err)

			assert.Equal(t, cfg.Storage.Path, a.DataPath)
			assert.Empty(t, a.Recovered())
			assert.Equal(t, "EUR", a.Service.Settings.Currency())

			_, err = a.Service.Expenses.AddIncome(decimal.NewFromInt(100), "", "")
			require.NoError(t, err)
			cleanup()

			reopened, cleanup, err := NewApp(cfg, migrations.FS)
			require.NoError(t, err)
			defer cleanup()
			assert.True(t, decimal.NewFromInt(100).Equal(reopened.Service.Bridge().Income()))
		})
	}
}

func TestNewApp_StoredRatesWin(t *testing.T) {
	cfg := testConfig(t, constants.BackendFile, "data")

	a, cleanup, err := NewApp(cfg, migrations.FS)
	require.NoError(t, err)
	rates := currency.Rates{"EUR": decimal.NewFromInt(1), "USD": decimal.RequireFromString("2")}
	require.NoError(t, a.Service.Settings.SetExchangeRates(rates))
	cleanup()

	cfg.Defaults.Rates = map[string]float64{"EUR": 1, "USD": 5}
	reopened, cleanup, err := NewApp(cfg, migrations.FS)
	require.NoError(t, err)
	defer cleanup()

	assert.True(t, decimal.RequireFromString("2").Equal(reopened.Book.Rates()["USD"]))
}

func TestNewApp_RecoversCorruptFile(t *testing.T) {
	cfg := testConfig(t, constants.BackendFile, "data")
	require.NoError(t, os.MkdirAll(cfg.Storage.Path, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.Storage.Path, "savings_data.json"), []byte("%%%"), 0644))

	a, cleanup, err := NewApp(cfg, migrations.FS)
	require.NoError(t, err)
	defer cleanup()

	assert.Contains(t, a.Recovered(), constants.LedgerSavings)
	assert.Equal(t, constants.DefaultSavingsCategories, a.Service.Bridge().Savings().Categories())
}

func TestNewApp_InvalidConfig(t *testing.T) {
	cfg := config.NewDefault()
	cfg.Storage.Backend = "redis"

	_, _, err := NewApp(cfg, migrations.FS)
	assert.ErrorIs(t, err, config.ErrUnknownBackend)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	got, err := ExpandPath("~/pots")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "pots"), got)

	got, err = ExpandPath("/tmp/pots")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/pots", got)
}
