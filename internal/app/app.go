package app

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hance08/pots/internal/bridge"
	"github.com/hance08/pots/internal/config"
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/currency"
	"github.com/hance08/pots/internal/ledger"
	"github.com/hance08/pots/internal/logger"
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/store"
	"github.com/rs/zerolog"
)

type App struct {
	Service  *service.Service
	Store    store.Repository
	Book     *currency.Book
	Config   *config.Config
	DataPath string
	Log      zerolog.Logger
}

// NewApp initialize config, storage and both ledgers, then return App entity
func NewApp(cfg *config.Config, migrationFS fs.FS) (*App, func(), error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	log := logger.New(cfg.Log.Level)

	repo, dataPath, err := openRepository(cfg, migrationFS)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	initial, err := cfg.InitialRates()
	if err != nil {
		repo.Close()
		return nil, nil, err
	}
	book := currency.NewBook(initial)
	conv := currency.NewConverter(book)

	savings := ledger.Open(constants.LedgerSavings, repo, conv, ledger.Options{
		Internal:          []string{constants.CategoryDistributable},
		DefaultCategories: cfg.Defaults.SavingsCategories,
		DefaultCurrency:   currency.Normalize(cfg.Defaults.Currency),
		Logger:            log,
	})
	expenses := ledger.Open(constants.LedgerExpenses, repo, conv, ledger.Options{
		Internal:          []string{constants.CategoryTransferOut, constants.CategorySalary},
		DefaultCategories: cfg.Defaults.ExpenseCategories,
		DefaultCurrency:   currency.Normalize(cfg.Defaults.Currency),
		Logger:            log,
	})

	// A saved savings ledger owns the rate table.
	if !savings.LastUpdated().IsZero() {
		if stored := savings.Rates(); currency.ValidateRates(stored) == nil {
			book.Replace(stored)
		} else {
			log.Warn().Msg("stored exchange rates are invalid, using configured rates")
		}
	}

	b := bridge.New(savings, expenses, log)
	svc := service.NewService(b, book, log)

	cleanup := func() {
		if err := repo.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close storage")
		}
	}

	return &App{
		Service:  svc,
		Store:    repo,
		Book:     book,
		Config:   cfg,
		DataPath: dataPath,
		Log:      log,
	}, cleanup, nil
}

// Recovered lists ledgers that were unreadable at startup.
func (a *App) Recovered() map[string]error {
	out := map[string]error{}
	for _, id := range []string{constants.LedgerSavings, constants.LedgerExpenses} {
		l, _ := a.Service.Ledger(id)
		if err := l.Recovered(); err != nil {
			out[id] = err
		}
	}
	return out
}

func openRepository(cfg *config.Config, migrationFS fs.FS) (store.Repository, string, error) {
	path := cfg.Storage.Path
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return nil, "", err
		}
		path = expanded
	}

	defaultPath := func(name string) (string, error) {
		if path != "" {
			return path, nil
		}
		appDir, err := GetAppDataDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(appDir, name), nil
	}

	switch cfg.Storage.Backend {
	case constants.BackendFile:
		dir, err := defaultPath("data")
		if err != nil {
			return nil, "", err
		}
		repo, err := store.NewFileStore(dir)
		return repo, dir, err
	case constants.BackendSQLite:
		dbPath, err := defaultPath("pots.db")
		if err != nil {
			return nil, "", err
		}
		repo, err := store.NewSQLiteStore(dbPath, migrationFS)
		return repo, dbPath, err
	case constants.BackendBolt:
		dbPath, err := defaultPath("pots.bolt")
		if err != nil {
			return nil, "", err
		}
		repo, err := store.NewBoltStore(dbPath)
		return repo, dbPath, err
	case constants.BackendPostgres:
		repo, err := store.NewPostgresStore(cfg.Storage.DSN, migrationFS)
		return repo, "postgres", err
	default:
		return nil, "", fmt.Errorf("%w %q", config.ErrUnknownBackend, cfg.Storage.Backend)
	}
}

func GetAppDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("unable to determine user home directory: %w", err)
		}
		return filepath.Join(home, ".pots"), nil
	}

	return filepath.Join(configDir, "pots"), nil
}

func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if path == "~" {
			return home, nil
		}
		if path[1] == '/' || path[1] == '\\' {
			return filepath.Join(home, path[2:]), nil
		}
	}
	return path, nil
}
