package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hance08/pots/internal/currency"
	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("amount must be a number greater than zero")

// FormatAmount renders amount with two decimals, thousands separators and
// the currency symbol on the side the currency uses, e.g. "€1,234.50" or
// "1,234.50 kr".
func FormatAmount(amount decimal.Decimal, code string) string {
	info := currency.Lookup(code)

	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	digits := groupThousands(amount.StringFixed(2))

	if info.Suffix {
		return fmt.Sprintf("%s%s %s", sign, digits, info.Symbol)
	}
	return sign + info.Symbol + digits
}

func groupThousands(fixed string) string {
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String()
}

// ParseAmount reads user input such as "1,250.50", "$20" or "100 kr". Only
// positive amounts are accepted.
func ParseAmount(input string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(input)
	for _, code := range currency.Codes() {
		cleaned = strings.ReplaceAll(cleaned, currency.Lookup(code).Symbol, "")
	}
	cleaned = strings.NewReplacer(",", "", " ", "", "_", "").Replace(cleaned)
	if cleaned == "" {
		return decimal.Zero, ErrInvalidAmount
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, input)
	}
	return amount, nil
}

// Truncate shortens text to max runes, ending with "..." when cut.
func Truncate(text string, max int) string {
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
