package validation

import (
	"fmt"
	"strings"

	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/currency"
	"github.com/hance08/pots/internal/utils"
)

// CategoryStore is the part of a ledger the validator needs.
type CategoryStore interface {
	HasCategory(name string) bool
}

// CategoryValidator handles category validation logic
type CategoryValidator struct {
	store CategoryStore
}

func NewCategoryValidator(store CategoryStore) *CategoryValidator {
	return &CategoryValidator{store: store}
}

// ValidateCategoryName validates a category name without checking existence.
// Accepts any for survey/huh compatibility.
func ValidateCategoryName(val any) error {
	name, ok := val.(string)
	if !ok {
		return fmt.Errorf("category name must be a string")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("category name can't be empty")
	}
	if strings.HasPrefix(name, constants.ReservedPrefix) {
		return fmt.Errorf("category names can't start with '%s'", constants.ReservedPrefix)
	}
	if len(name) > constants.MaxNameLen {
		return fmt.Errorf("category name too long (max %d characters)", constants.MaxNameLen)
	}
	return nil
}

// ValidateNewCategory also rejects names the ledger already has.
func (v *CategoryValidator) ValidateNewCategory(val any) error {
	if err := ValidateCategoryName(val); err != nil {
		return err
	}
	name := strings.TrimSpace(val.(string))
	if v.store.HasCategory(name) {
		return fmt.Errorf("category '%s' already exists", name)
	}
	return nil
}

// ValidateExistingCategory requires a category the ledger has.
func (v *CategoryValidator) ValidateExistingCategory(val any) error {
	name, ok := val.(string)
	if !ok {
		return fmt.Errorf("category name must be a string")
	}
	if !v.store.HasCategory(strings.TrimSpace(name)) {
		return fmt.Errorf("category '%s' not found", name)
	}
	return nil
}

// ValidateCurrency validates a currency code format
// Accepts both string and any (for survey compatibility)
func ValidateCurrency(val any) error {
	code, ok := val.(string)
	if !ok {
		return fmt.Errorf("currency code must be a string")
	}

	code = currency.Normalize(code)
	if code == "" {
		return nil // Empty is allowed (will use the ledger currency)
	}

	if len(code) != 3 {
		return fmt.Errorf("currency code must be 3 characters (e.g. USD)")
	}
	for _, c := range code {
		if c < 'A' || c > 'Z' {
			return fmt.Errorf("currency code must contain only letters")
		}
	}
	return nil
}

// ValidateAmount accepts any positive amount utils.ParseAmount can read.
func ValidateAmount(val any) error {
	input, ok := val.(string)
	if !ok {
		return fmt.Errorf("amount must be a string")
	}
	if _, err := utils.ParseAmount(input); err != nil {
		return fmt.Errorf("invalid amount: enter a number greater than zero")
	}
	return nil
}

// ValidateRate accepts a positive exchange rate.
func ValidateRate(val any) error {
	if err := ValidateAmount(val); err != nil {
		return fmt.Errorf("exchange rate must be a number greater than zero")
	}
	return nil
}

func ValidateNote(val any) error {
	note, ok := val.(string)
	if !ok {
		return fmt.Errorf("note must be a string")
	}
	if len(note) > constants.MaxNoteLen {
		return fmt.Errorf("note too long (max %d characters)", constants.MaxNoteLen)
	}
	return nil
}
