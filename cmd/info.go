package cmd

import (
	"os"

	"github.com/hance08/pots/internal/app"
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/ui/views"
	"github.com/spf13/cobra"
)

type infoRunner struct {
	app *app.App
}

func NewInfoCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Display application information",
		Long:  `Display current configuration, storage backend, data path and accounting currency.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner := &infoRunner{
				app: a,
			}

			return runner.Run()
		},
	}
}

func (r *infoRunner) Run() error {
	configPath := r.app.Config.ConfigPath
	if configPath == "" {
		configPath = "(None, using defaults)"
	}

	dataExists := r.app.Config.Storage.Backend == constants.BackendPostgres
	if !dataExists {
		if _, err := os.Stat(r.app.DataPath); err == nil {
			dataExists = true
		}
	}

	items := views.SystemInfoItem{
		ConfigPath: configPath,
		Backend:    r.app.Config.Storage.Backend,
		DataPath:   r.app.DataPath,
		DataExists: dataExists,
		Currency:   r.app.Service.Settings.Currency(),
		LogLevel:   r.app.Config.Log.Level,
		AppDataDir: appDataDirOrUnknown(),
		Recovered:  r.app.Recovered(),
	}

	return views.RenderSystemInfo(items)
}

func appDataDirOrUnknown() string {
	dir, err := app.GetAppDataDir()
	if err != nil {
		return "Unknown"
	}
	return dir
}
