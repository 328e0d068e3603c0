package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hance08/pots/internal/model"
	"github.com/shopspring/decimal"
)

type DBTX interface {
	Exec(query string, args ...any) (sql.Result, error)
	Prepare(query string) (*sql.Stmt, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

// SQLStore persists ledgers in two tables: ledger_settings holds one row per
// ledger and ledger_transactions holds the ordered records.
type SQLStore struct {
	db      DBTX
	dialect string
}

const (
	dialectSQLite   = "sqlite3"
	dialectPostgres = "postgres"
)

func (s *SQLStore) ExecTx(fn func(*SQLStore) error) error {
	db, ok := s.db.(*sql.DB)
	if !ok {
		return fmt.Errorf("store is already in a transaction")
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}

	txStore := &SQLStore{db: tx, dialect: s.dialect}

	err = fn(txStore)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("tx err: %v, rb err: %v", err, rbErr)
		}
		return err
	}
	return tx.Commit()
}

func (s *SQLStore) Close() error {
	if db, ok := s.db.(*sql.DB); ok {
		return db.Close()
	}
	return nil
}

// rebind turns ? placeholders into $n for postgres.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != dialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) Load(ledgerID string) (*model.State, error) {
	if err := validLedgerID(ledgerID); err != nil {
		return nil, err
	}

	state, err := s.loadSettings(ledgerID)
	if err != nil {
		return nil, err
	}

	txs, err := s.loadTransactions(ledgerID)
	if err != nil {
		return nil, err
	}

	if state == nil {
		if len(txs) == 0 {
			return nil, ErrRecordNotFound
		}
		state = &model.State{PresetNotes: map[string][]string{}}
	}
	state.Transactions = txs
	return state, nil
}

func (s *SQLStore) Save(ledgerID string, state *model.State) error {
	if err := validLedgerID(ledgerID); err != nil {
		return err
	}

	return s.ExecTx(func(tx *SQLStore) error {
		if err := tx.upsertSettings(ledgerID, state); err != nil {
			return err
		}
		if _, err := tx.db.Exec(tx.rebind(`DELETE FROM ledger_transactions WHERE ledger_id = ?`), ledgerID); err != nil {
			return fmt.Errorf("failed to clear transactions: %w", err)
		}
		return tx.insertTransactions(ledgerID, state.Transactions)
	})
}

func (s *SQLStore) upsertSettings(ledgerID string, state *model.State) error {
	rates, err := json.Marshal(encodeRates(state.Rates))
	if err != nil {
		return fmt.Errorf("failed to encode exchange rates: %w", err)
	}
	categories, err := json.Marshal(state.Categories)
	if err != nil {
		return fmt.Errorf("failed to encode categories: %w", err)
	}
	notes, err := json.Marshal(state.PresetNotes)
	if err != nil {
		return fmt.Errorf("failed to encode preset notes: %w", err)
	}

	_, err = s.db.Exec(s.rebind(`
		INSERT INTO ledger_settings (ledger_id, currency, exchange_rates, categories, preset_notes, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (ledger_id) DO UPDATE SET
			currency = excluded.currency,
			exchange_rates = excluded.exchange_rates,
			categories = excluded.categories,
			preset_notes = excluded.preset_notes,
			updated_at = excluded.updated_at
	`), ledgerID, state.Currency, string(rates), string(categories), string(notes), unixNanos(state.LastUpdated))
	if err != nil {
		return fmt.Errorf("failed to save ledger settings: %w", err)
	}
	return nil
}

func (s *SQLStore) insertTransactions(ledgerID string, txs []model.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	stmt, err := s.db.Prepare(s.rebind(`
		INSERT INTO ledger_transactions
			(id, ledger_id, position, kind, category, amount, created_at, note, original_currency, original_amount)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("failed to prepare SQL: %w", err)
	}
	defer stmt.Close()

	for i, tx := range txs {
		var origCode, origAmount sql.NullString
		if tx.Original != nil {
			origCode = sql.NullString{String: tx.Original.Currency, Valid: true}
			origAmount = sql.NullString{String: tx.Original.Amount.String(), Valid: true}
		}

		_, err := stmt.Exec(
			tx.ID.String(), ledgerID, i, string(tx.Kind), tx.Category,
			tx.Amount.String(), unixNanos(tx.Timestamp), tx.Note, origCode, origAmount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", tx.ID, err)
		}
	}
	return nil
}

// loadSettings returns nil without error when the ledger has no settings row.
func (s *SQLStore) loadSettings(ledgerID string) (*model.State, error) {
	var (
		code                     string
		rates, categories, notes string
		updatedAt                int64
	)

	err := s.db.QueryRow(s.rebind(`
		SELECT currency, exchange_rates, categories, preset_notes, updated_at
		FROM ledger_settings WHERE ledger_id = ?
	`), ledgerID).Scan(&code, &rates, &categories, &notes, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query ledger settings: %w", err)
	}

	state := &model.State{
		Currency:    code,
		PresetNotes: map[string][]string{},
		LastUpdated: fromUnixNanos(updatedAt),
	}

	var rawRates map[string]json.Number
	if err := json.Unmarshal([]byte(rates), &rawRates); err != nil {
		return nil, fmt.Errorf("%w: exchange rates: %w", ErrCorruptState, err)
	}
	if state.Rates, err = decodeRates(rawRates); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	if err := json.Unmarshal([]byte(categories), &state.Categories); err != nil {
		return nil, fmt.Errorf("%w: categories: %w", ErrCorruptState, err)
	}
	if err := json.Unmarshal([]byte(notes), &state.PresetNotes); err != nil {
		return nil, fmt.Errorf("%w: preset notes: %w", ErrCorruptState, err)
	}
	if state.PresetNotes == nil {
		state.PresetNotes = map[string][]string{}
	}

	return state, nil
}

func (s *SQLStore) loadTransactions(ledgerID string) ([]model.Transaction, error) {
	rows, err := s.db.Query(s.rebind(`
		SELECT id, kind, category, amount, created_at, note, original_currency, original_amount
		FROM ledger_transactions
		WHERE ledger_id = ?
		ORDER BY position ASC
	`), ledgerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txs := []model.Transaction{}
	for rows.Next() {
		var (
			id, kind, category, amount string
			createdAt                  int64
			note                       sql.NullString
			origCode, origAmount       sql.NullString
		)
		if err := rows.Scan(&id, &kind, &category, &amount, &createdAt, &note, &origCode, &origAmount); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}

		tx, err := rowToTransaction(id, kind, category, amount, createdAt, note, origCode, origAmount)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error occurred during rows iteration: %w", err)
	}

	return txs, nil
}

func rowToTransaction(id, kind, category, amount string, createdAt int64, note, origCode, origAmount sql.NullString) (model.Transaction, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid id %q: %w", id, err)
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}

	var original *model.Money
	if origCode.Valid && origAmount.Valid {
		origValue, err := decimal.NewFromString(origAmount.String)
		if err != nil {
			return model.Transaction{}, fmt.Errorf("invalid original amount %q: %w", origAmount.String, err)
		}
		original = &model.Money{Currency: origCode.String, Amount: origValue}
	}

	return model.NewTransaction(parsedID, model.Kind(kind), category, value, fromUnixNanos(createdAt), note.String, original)
}

// zero times are stored as 0 since UnixNano is undefined for them
func unixNanos(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixNano()
}

func fromUnixNanos(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}
