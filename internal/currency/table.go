// Package currency holds the static currency table, swappable exchange-rate
// tables and the conversion service used by every ledger.
package currency

import (
	"sort"
	"strings"
)

// Info describes how a currency is displayed. Formatting itself belongs to the
// presentation layer.
type Info struct {
	Code   string
	Symbol string
	Suffix bool
}

var table = map[string]Info{
	"EUR": {Code: "EUR", Symbol: "€", Suffix: false},
	"SEK": {Code: "SEK", Symbol: "kr", Suffix: true},
	"USD": {Code: "USD", Symbol: "$", Suffix: false},
}

// Lookup returns the display info for code. Unknown codes display as the code
// itself, placed after the amount.
func Lookup(code string) Info {
	code = Normalize(code)
	if info, ok := table[code]; ok {
		return info
	}
	return Info{Code: code, Symbol: code, Suffix: true}
}

// Supported reports whether code is in the static table.
func Supported(code string) bool {
	_, ok := table[Normalize(code)]
	return ok
}

// Codes returns the supported currency codes in stable order.
func Codes() []string {
	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
