package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/currency"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

type Config struct {
	Storage    StorageConfig  `mapstructure:"storage"`
	Defaults   DefaultsConfig `mapstructure:"defaults"`
	Log        LogConfig      `mapstructure:"log"`
	ConfigPath string         `mapstructure:"-"`
}

// StorageConfig selects the persistence backend. Path is the data directory
// for the file backend and the database file for sqlite and bolt.
type StorageConfig struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
	DSN     string `mapstructure:"dsn"`
}

type DefaultsConfig struct {
	Currency          string             `mapstructure:"currency"`
	Rates             map[string]float64 `mapstructure:"rates"`
	SavingsCategories []string           `mapstructure:"savings_categories"`
	ExpenseCategories []string           `mapstructure:"expense_categories"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func NewDefault() *Config {
	return &Config{
		Storage: StorageConfig{Backend: constants.DefaultBackend},
		Defaults: DefaultsConfig{
			Currency:          constants.DefaultCurrency,
			SavingsCategories: slices.Clone(constants.DefaultSavingsCategories),
			ExpenseCategories: slices.Clone(constants.DefaultExpenseCategories),
		},
		Log: LogConfig{Level: "warn"},
	}
}

func (c *Config) Validate() error {
	c.Storage.Backend = strings.ToLower(strings.TrimSpace(c.Storage.Backend))
	if c.Storage.Backend == "" {
		c.Storage.Backend = constants.DefaultBackend
	}
	if !slices.Contains(constants.Backends, c.Storage.Backend) {
		return fmt.Errorf("%w %q (use one of %s)", ErrUnknownBackend, c.Storage.Backend, strings.Join(constants.Backends, ", "))
	}
	if c.Storage.Backend == constants.BackendPostgres && c.Storage.DSN == "" {
		return fmt.Errorf("storage.dsn is required for the %s backend", constants.BackendPostgres)
	}

	if _, err := c.InitialRates(); err != nil {
		return fmt.Errorf("defaults.rates: %w", err)
	}
	return nil
}

// InitialRates is the rate table used before any ledger has stored one.
func (c *Config) InitialRates() (currency.Rates, error) {
	if len(c.Defaults.Rates) == 0 {
		return currency.DefaultRates(), nil
	}
	rates, err := currency.RatesFromFloats(c.Defaults.Rates)
	if err != nil {
		return nil, err
	}
	if err := currency.ValidateRates(rates); err != nil {
		return nil, err
	}
	return rates, nil
}
