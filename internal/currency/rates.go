package currency

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRate = errors.New("exchange rate must be positive")
	ErrEmptyRates  = errors.New("exchange rate table is empty")
)

// Rates maps a currency code to its rate relative to the base currency
// (1 base = rate units of that currency).
type Rates map[string]decimal.Decimal

// DefaultRates are relative to EUR.
func DefaultRates() Rates {
	return Rates{
		"EUR": decimal.NewFromInt(1),
		"SEK": decimal.RequireFromString("11.5"),
		"USD": decimal.RequireFromString("1.08"),
	}
}

// RatesFromFloats builds a table from config or YAML input.
func RatesFromFloats(in map[string]float64) (Rates, error) {
	out := make(Rates, len(in))
	for code, rate := range in {
		if math.IsNaN(rate) || math.IsInf(rate, 0) {
			return nil, fmt.Errorf("%s: %w (got %v)", Normalize(code), ErrInvalidRate, rate)
		}
		out[Normalize(code)] = decimal.NewFromFloat(rate)
	}
	return out, nil
}

// Rate returns the rate for code. Unknown codes default to 1 so conversion
// involving them is a no-op multiplier rather than a failure.
func (r Rates) Rate(code string) decimal.Decimal {
	if rate, ok := r[code]; ok {
		return rate
	}
	return decimal.NewFromInt(1)
}

func (r Rates) Clone() Rates {
	out := make(Rates, len(r))
	for code, rate := range r {
		out[code] = rate
	}
	return out
}

// Codes returns the codes present in the table, sorted.
func (r Rates) Codes() []string {
	codes := make([]string, 0, len(r))
	for code := range r {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// ValidateRates checks a table before it is installed.
func ValidateRates(r Rates) error {
	if len(r) == 0 {
		return ErrEmptyRates
	}
	for _, code := range r.Codes() {
		if !r[code].IsPositive() {
			return fmt.Errorf("%s: %w (got %s)", code, ErrInvalidRate, r[code])
		}
	}
	return nil
}

// Book holds the active rate table. Tables are replaced whole, so readers
// never observe a mix of two tables.
type Book struct {
	active atomic.Pointer[Rates]
}

func NewBook(initial Rates) *Book {
	b := &Book{}
	b.Replace(initial)
	return b
}

// Replace installs a copy of r as the active table.
func (b *Book) Replace(r Rates) {
	snapshot := r.Clone()
	b.active.Store(&snapshot)
}

// Rates returns a copy of the active table.
func (b *Book) Rates() Rates {
	return b.snapshot().Clone()
}

func (b *Book) snapshot() Rates {
	if p := b.active.Load(); p != nil && len(*p) > 0 {
		return *p
	}
	return DefaultRates()
}
