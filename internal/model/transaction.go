package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("amount must not be negative")
	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrInvalidMoney  = errors.New("original amount requires a currency code")
)

type Kind string

const (
	Credit Kind = "credit"
	Debit  Kind = "debit"
)

func (k Kind) Valid() bool {
	return k == Credit || k == Debit
}

// Money is an amount denominated in a specific currency.
type Money struct {
	Currency string
	Amount   decimal.Decimal
}

func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.Amount.StringFixed(2), m.Currency)
}

// Transaction is one recorded money movement. Amount is always in the owning
// ledger's accounting currency. Original is set only when the value was
// entered in another currency, so currency and amount are present together
// or not at all.
type Transaction struct {
	ID        uuid.UUID
	Kind      Kind
	Category  string
	Amount    decimal.Decimal
	Timestamp time.Time
	Note      string
	Original  *Money
}

// NewTransaction validates its input and builds a record.
func NewTransaction(id uuid.UUID, kind Kind, category string, amount decimal.Decimal, ts time.Time, note string, original *Money) (Transaction, error) {
	if !kind.Valid() {
		return Transaction{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if amount.IsNegative() {
		return Transaction{}, fmt.Errorf("%w (got %s)", ErrInvalidAmount, amount)
	}
	orig, err := checkOriginal(original)
	if err != nil {
		return Transaction{}, err
	}

	return Transaction{
		ID:        id,
		Kind:      kind,
		Category:  category,
		Amount:    amount,
		Timestamp: ts,
		Note:      note,
		Original:  orig,
	}, nil
}

// Signed returns the amount as it affects a balance.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == Debit {
		return t.Amount.Neg()
	}
	return t.Amount
}

// HasOriginal reports whether the record was entered in a foreign currency.
func (t Transaction) HasOriginal() bool {
	return t.Original != nil
}

func checkOriginal(original *Money) (*Money, error) {
	if original == nil {
		return nil, nil
	}
	code := strings.ToUpper(strings.TrimSpace(original.Currency))
	if code == "" {
		return nil, ErrInvalidMoney
	}
	if original.Amount.IsNegative() {
		return nil, fmt.Errorf("original %w (got %s)", ErrInvalidAmount, original.Amount)
	}
	return &Money{Currency: code, Amount: original.Amount}, nil
}

// CheckOriginal normalizes an original-currency pair for an in-place edit.
func CheckOriginal(original *Money) (*Money, error) {
	return checkOriginal(original)
}
