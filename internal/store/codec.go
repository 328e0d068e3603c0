package store

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/currency"
	"github.com/hance08/pots/internal/model"
	"github.com/shopspring/decimal"
)

// document is the JSON layout of a ledger. Field names match the files
// written by earlier versions so they still load.
type document struct {
	Transactions  []txRecord             `json:"transactions"`
	Categories    []string               `json:"categories"`
	Currency      string                 `json:"currency,omitempty"`
	ExchangeRates map[string]json.Number `json:"exchange_rates,omitempty"`
	PresetNotes   map[string][]string    `json:"preset_notes,omitempty"`
	LastUpdated   string                 `json:"last_updated"`
}

type txRecord struct {
	ID               string       `json:"id,omitempty"`
	Amount           json.Number  `json:"amount"`
	Action           string       `json:"action"`
	Category         string       `json:"category"`
	Timestamp        string       `json:"timestamp"`
	Note             *string      `json:"note"`
	OriginalCurrency *string      `json:"original_currency"`
	OriginalAmount   *json.Number `json:"original_amount"`
}

// legacy timestamps carry no zone
const legacyTimeLayout = "2006-01-02T15:04:05.999999999"

// legacyIDSpace namespaces the ids derived for records written without one,
// so the same file yields the same ids on every load.
var legacyIDSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("pots:legacy-transaction"))

func encodeState(state *model.State) ([]byte, error) {
	doc := document{
		Transactions:  make([]txRecord, 0, len(state.Transactions)),
		Categories:    state.Categories,
		Currency:      state.Currency,
		ExchangeRates: encodeRates(state.Rates),
		PresetNotes:   state.PresetNotes,
		LastUpdated:   state.LastUpdated.Format(time.RFC3339Nano),
	}
	if doc.Categories == nil {
		doc.Categories = []string{}
	}

	for _, tx := range state.Transactions {
		rec := txRecord{
			ID:        tx.ID.String(),
			Amount:    json.Number(tx.Amount.String()),
			Action:    actionFromKind(tx.Kind),
			Category:  tx.Category,
			Timestamp: tx.Timestamp.Format(time.RFC3339Nano),
		}
		if tx.Note != "" {
			note := tx.Note
			rec.Note = &note
		}
		if tx.Original != nil {
			code := tx.Original.Currency
			amount := json.Number(tx.Original.Amount.String())
			rec.OriginalCurrency = &code
			rec.OriginalAmount = &amount
		}
		doc.Transactions = append(doc.Transactions, rec)
	}

	return json.MarshalIndent(doc, "", "  ")
}

func decodeState(ledgerID string, data []byte) (*model.State, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode ledger document: %w", err)
	}

	rates, err := decodeRates(doc.ExchangeRates)
	if err != nil {
		return nil, err
	}

	state := &model.State{
		Currency:     doc.Currency,
		Rates:        rates,
		Categories:   doc.Categories,
		PresetNotes:  doc.PresetNotes,
		Transactions: make([]model.Transaction, 0, len(doc.Transactions)),
	}
	if state.PresetNotes == nil {
		state.PresetNotes = map[string][]string{}
	}
	if doc.LastUpdated != "" {
		state.LastUpdated, _ = parseTimestamp(doc.LastUpdated)
	}

	for i, rec := range doc.Transactions {
		tx, err := rec.toTransaction(legacyID(ledgerID, i, rec))
		if err != nil {
			return nil, fmt.Errorf("transaction #%d: %w", i+1, err)
		}
		state.Transactions = append(state.Transactions, tx)
	}

	return state, nil
}

func legacyID(ledgerID string, index int, r txRecord) uuid.UUID {
	name := fmt.Sprintf("%s/%d/%s/%s/%s/%s", ledgerID, index, r.Timestamp, r.Action, r.Category, r.Amount)
	return uuid.NewSHA1(legacyIDSpace, []byte(name))
}

// toTransaction uses fallback when the record carries no id.
func (r txRecord) toTransaction(fallback uuid.UUID) (model.Transaction, error) {
	id := fallback
	if r.ID != "" {
		parsed, err := uuid.Parse(r.ID)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("invalid id %q: %w", r.ID, err)
		}
		id = parsed
	}

	kind, err := kindFromAction(r.Action)
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount %q: %w", r.Amount, err)
	}

	ts, err := parseTimestamp(r.Timestamp)
	if err != nil {
		return model.Transaction{}, err
	}

	var note string
	if r.Note != nil {
		note = *r.Note
	}

	// Older files may hold a currency without an amount; such a pair is dropped.
	var original *model.Money
	if r.OriginalCurrency != nil && *r.OriginalCurrency != "" && r.OriginalAmount != nil {
		origAmount, err := decimal.NewFromString(r.OriginalAmount.String())
		if err != nil {
			return model.Transaction{}, fmt.Errorf("invalid original amount %q: %w", *r.OriginalAmount, err)
		}
		original = &model.Money{Currency: *r.OriginalCurrency, Amount: origAmount}
	}

	return model.NewTransaction(id, kind, r.Category, amount, ts, note, original)
}

func encodeRates(rates currency.Rates) map[string]json.Number {
	if len(rates) == 0 {
		return nil
	}
	out := make(map[string]json.Number, len(rates))
	for code, rate := range rates {
		out[code] = json.Number(rate.String())
	}
	return out
}

func decodeRates(in map[string]json.Number) (currency.Rates, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(currency.Rates, len(in))
	for code, raw := range in {
		rate, err := decimal.NewFromString(raw.String())
		if err != nil {
			return nil, fmt.Errorf("invalid exchange rate for %s: %w", code, err)
		}
		out[currency.Normalize(code)] = rate
	}
	return out, nil
}

func actionFromKind(kind model.Kind) string {
	if kind == model.Debit {
		return constants.ActionSpend
	}
	return constants.ActionAdd
}

func kindFromAction(action string) (model.Kind, error) {
	switch strings.ToLower(action) {
	case constants.ActionAdd, string(model.Credit):
		return model.Credit, nil
	case constants.ActionSpend, string(model.Debit):
		return model.Debit, nil
	default:
		return "", fmt.Errorf("unknown action %q", action)
	}
}

func parseTimestamp(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return ts, nil
	}
	ts, err := time.ParseInLocation(legacyTimeLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return ts, nil
}

func validLedgerID(id string) error {
	if id == "" {
		return ErrInvalidLedgerID
	}
	for _, c := range id {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '_' && c != '-' {
			return fmt.Errorf("%w: %q", ErrInvalidLedgerID, id)
		}
	}
	return nil
}
