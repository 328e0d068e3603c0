package views

import "github.com/pterm/pterm"

type SystemInfoItem struct {
	ConfigPath string
	Backend    string
	DataPath   string
	DataExists bool // true = Found, false = Not Found
	Currency   string
	LogLevel   string
	AppDataDir string
	Recovered  map[string]error
}

func SystemInfoRows(data SystemInfoItem) pterm.TableData {
	dataStatus := pterm.Green("Found")
	if !data.DataExists {
		dataStatus = pterm.Red("Not Found (Will be created)")
	}

	rows := pterm.TableData{
		{"Configuration File", data.ConfigPath},
		{"Storage Backend", data.Backend},
		{"Data Path", data.DataPath},
		{"Data Status", dataStatus},
		{"Accounting Currency", data.Currency},
		{"Log Level", data.LogLevel},
		{"AppData Directory", data.AppDataDir},
	}
	for id, err := range data.Recovered {
		rows = append(rows, []string{"Recovered " + id, pterm.Yellow(err.Error())})
	}
	return rows
}

func RenderSystemInfo(data SystemInfoItem) error {
	return pterm.DefaultTable.WithData(SystemInfoRows(data)).Render()
}
