package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hance08/pots/cmd/category"
	"github.com/hance08/pots/cmd/transaction"
	"github.com/hance08/pots/internal/app"
	"github.com/hance08/pots/internal/config"
	"github.com/hance08/pots/internal/errhandler"
	"github.com/hance08/pots/internal/ui/prompts"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	cfg     *config.Config
)

func Execute(migrations fs.FS) {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		pterm.Warning.Printf("Ignoring .env: %v\n", err)
	}

	// The config file has to be known before cobra parses flags.
	cfgFile = configFlag(os.Args[1:])

	created, err := initConfig()
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	if created && isatty.IsTerminal(os.Stdin.Fd()) {
		if err := initWizard(); err != nil {
			errhandler.HandleError(err)
		}
	}

	application, cleanup, err := app.NewApp(cfg, migrations)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	defer cleanup()

	for id, cause := range application.Recovered() {
		pterm.Warning.Printf("Stored %s data could not be read (%v), starting with an empty pot\n", id, cause)
	}

	rootCmd := NewRootCmd(application)
	if err := rootCmd.Execute(); err != nil {
		cleanup()
		errhandler.HandleError(err)
	}
}

func NewRootCmd(a *app.App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pots",
		Short: "pots is a CLI budgeting tool with a savings pot and an expenses pot",
		Long: `pots keeps two pots of money. Income lands in expenses, where you record
spending; whatever you transfer to savings becomes distributable and can be
allocated to savings categories.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", cfgFile, "set the config file path")

	svc := a.Service
	rootCmd.AddCommand(NewInfoCmd(a))
	rootCmd.AddCommand(NewStatusCmd(svc))
	rootCmd.AddCommand(NewSavingsCmd(svc))
	rootCmd.AddCommand(NewExpensesCmd(svc))
	rootCmd.AddCommand(category.NewCategoryCmd(svc))
	rootCmd.AddCommand(transaction.NewTransactionCmd(svc))
	rootCmd.AddCommand(NewCurrencyCmd(svc))
	rootCmd.AddCommand(NewRatesCmd(svc))
	rootCmd.AddCommand(NewExportCmd(svc))
	rootCmd.AddCommand(NewClearCmd(svc))

	return rootCmd
}

// initConfig reports whether a default config file was written, which marks
// the first run.
func initConfig() (bool, error) {
	setDefaults(config.NewDefault())

	created := false
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.GetAppDataDir()
		if err != nil {
			return false, fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		created, err = createDefaultConfig(appDir)
		if err != nil {
			return false, fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	viper.SetEnvPrefix("POTS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return false, fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return false, fmt.Errorf("config file error: %w", err)
		}
	}

	cfg = config.NewDefault()
	if err := viper.Unmarshal(cfg); err != nil {
		return false, fmt.Errorf("unable to decode into struct: %w", err)
	}

	cfg.ConfigPath = viper.ConfigFileUsed()

	return created, nil
}

// setDefaults registers every key so environment overrides apply to keys
// missing from the file.
func setDefaults(d *config.Config) {
	viper.SetDefault("storage.backend", d.Storage.Backend)
	viper.SetDefault("storage.path", d.Storage.Path)
	viper.SetDefault("storage.dsn", d.Storage.DSN)
	viper.SetDefault("defaults.currency", d.Defaults.Currency)
	viper.SetDefault("defaults.savings_categories", d.Defaults.SavingsCategories)
	viper.SetDefault("defaults.expense_categories", d.Defaults.ExpenseCategories)
	viper.SetDefault("log.level", d.Log.Level)
}

func initWizard() error {
	currentDefault := viper.GetString("defaults.currency")

	code, err := prompts.PromptInitCurrency(currentDefault)
	if err != nil {
		return err
	}

	viper.Set("defaults.currency", code)
	cfg.Defaults.Currency = code

	if err := viper.WriteConfig(); err != nil {
		return fmt.Errorf("failed to save config to file: %w", err)
	}

	pterm.Success.Printf("Configuration saved. Accounting currency set to: %s\n", code)
	return nil
}

func createDefaultConfig(appDir string) (bool, error) {
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return false, nil
	}

	if err := viper.WriteConfigAs(configPath); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}

// configFlag finds --config/-c in raw arguments.
func configFlag(args []string) string {
	for i, arg := range args {
		switch {
		case arg == "--":
			return ""
		case arg == "-c" || arg == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
			return ""
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-c="):
			return strings.TrimPrefix(arg, "-c=")
		case strings.HasPrefix(arg, "-c") && !strings.HasPrefix(arg, "--"):
			return arg[2:]
		}
	}
	return ""
}
