package errhandler

import (
	"errors"
	"os"
	"strings"
	"unicode"

	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/charmbracelet/huh"
	"github.com/hance08/pots/internal/bridge"
	"github.com/hance08/pots/internal/ledger"
	"github.com/hance08/pots/internal/model"
	"github.com/pterm/pterm"
)

type Severity int

const (
	SeverityError Severity = iota
	// SeverityWarning is a rejected operation that left both pots untouched.
	SeverityWarning
	SeverityCancelled
)

func IsCancelled(err error) bool {
	return errors.Is(err, terminal.InterruptErr) ||
		errors.Is(err, huh.ErrUserAborted) ||
		strings.Contains(err.Error(), "interrupt")
}

func Classify(err error) Severity {
	switch {
	case IsCancelled(err):
		return SeverityCancelled
	case errors.Is(err, ledger.ErrPersist), errors.Is(err, bridge.ErrTransferLeg):
		return SeverityError
	case errors.Is(err, model.ErrInsufficientFunds),
		errors.Is(err, model.ErrIncomeLocked),
		errors.Is(err, bridge.ErrNothingToReturn):
		return SeverityWarning
	default:
		return SeverityError
	}
}

func HandleError(err error) {
	if err == nil {
		return
	}

	switch Classify(err) {
	case SeverityCancelled:
		pterm.Warning.Println("Operation Cancelled")
		os.Exit(0)
	case SeverityWarning:
		pterm.Warning.Println(Capitalize(err.Error()))
		os.Exit(1)
	default:
		pterm.Error.Println(Capitalize(err.Error()))
		os.Exit(1)
	}
}

func Capitalize(s string) string {
	if len(s) == 0 {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
