package prompts

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/hance08/pots/internal/utils"
	"github.com/hance08/pots/internal/validation"
	"github.com/shopspring/decimal"
)

// NewNoteOption is the note selector entry that switches to free text.
const NewNoteOption = "+ New note"

// PromptAmount asks for a positive amount and returns it parsed.
func PromptAmount(message string, helpText string) (decimal.Decimal, error) {
	var amount string

	err := huh.NewInput().
		Title(message).
		Description(helpText).
		Value(&amount).
		Validate(func(s string) error { return validation.ValidateAmount(s) }).
		Run()
	if err != nil {
		return decimal.Zero, err
	}

	return utils.ParseAmount(amount)
}

// PromptConfirm prompts for yes/no confirmation
func PromptConfirm(message string, defaultValue bool) (bool, error) {
	confirm := defaultValue

	err := huh.NewConfirm().
		Title(message).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm).
		Run()

	return confirm, err
}

// PromptInput prompts for a generic text input with optional default and validator
func PromptInput(message string, defaultValue string, validator func(string) error) (string, error) {
	var inputVal string

	input := huh.NewInput().
		Title(message).
		Value(&inputVal)

	if defaultValue != "" {
		input.Placeholder(defaultValue)
	}

	if validator != nil {
		input.Validate(validator)
	}

	if err := input.Run(); err != nil {
		return "", err
	}

	if inputVal == "" && defaultValue != "" {
		return defaultValue, nil
	}

	return strings.TrimSpace(inputVal), nil
}

// PromptSelect prompts for a selection from a list of options. An option
// starting with defaultOption followed by a space also counts as the default.
func PromptSelect(message string, options []string, defaultOption string) (string, error) {
	selected := MatchOption(options, defaultOption)

	opts := make([]huh.Option[string], 0, len(options))
	for _, o := range options {
		opts = append(opts, huh.NewOption(o, o))
	}

	err := huh.NewSelect[string]().
		Title(message).
		Options(opts...).
		Value(&selected).
		Height(12).
		Run()
	return selected, err
}

func MatchOption(options []string, want string) string {
	for _, o := range options {
		if o == want {
			return o
		}
	}
	if want != "" {
		for _, o := range options {
			if strings.HasPrefix(o, want+" ") {
				return o
			}
		}
	}
	return want
}

// PromptNote offers the category's preset notes and a free-text entry.
func PromptNote(presets []string) (string, error) {
	if len(presets) == 0 {
		return PromptInput("Note (optional):", "", func(s string) error { return validation.ValidateNote(s) })
	}

	options := append([]string{NewNoteOption}, presets...)
	choice, err := PromptSelect("Note:", options, NewNoteOption)
	if err != nil {
		return "", err
	}
	if choice != NewNoteOption {
		return choice, nil
	}
	return PromptInput("Note (optional):", "", func(s string) error { return validation.ValidateNote(s) })
}
