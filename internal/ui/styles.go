package ui

import (
	"fmt"

	"github.com/pterm/pterm"
)

func PrintL1Title(format string, a ...any) {
	style := pterm.NewStyle(pterm.BgCyan, pterm.FgBlack, pterm.Bold)
	style.Println(fmt.Sprintf(" %s   ", fmt.Sprintf(format, a...)))
}

func PrintL2Title(format string, a ...any) {
	style := pterm.NewStyle(pterm.FgCyan, pterm.Bold)
	style.Println(fmt.Sprintf("# %s   ", fmt.Sprintf(format, a...)))
}

func Separator() {
	pterm.Println(pterm.Green("---------------------------------------------------------"))
}

// Signed colors an amount green for credits and red for debits.
func Signed(text string, credit bool) string {
	if credit {
		return pterm.Green(text)
	}
	return pterm.Red(text)
}
