// Package ledger implements the aggregate that owns one pot's transactions,
// categories, accounting currency and rate table. Every mutation is applied
// to a copy of the state, persisted, and only then made visible.
package ledger

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/currency"
	"github.com/hance08/pots/internal/model"
	"github.com/hance08/pots/internal/store"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type Options struct {
	// Internal lists the bookkeeping categories this ledger accepts besides
	// its user categories.
	Internal          []string
	DefaultCategories []string
	DefaultCurrency   string
	Logger            zerolog.Logger
	Clock             func() time.Time
}

type Ledger struct {
	id        string
	repo      store.Repository
	converter *currency.Converter
	internal  []string
	log       zerolog.Logger
	now       func() time.Time

	mu        sync.RWMutex
	state     *model.State
	recovered error
}

// ForeignTotal is the input-currency money that flowed through a ledger.
type ForeignTotal struct {
	Credited decimal.Decimal
	Debited  decimal.Decimal
}

// Open loads the ledger from repo. It never fails: a missing ledger starts
// from the default seeds, and an unreadable one starts empty with the load
// error kept in Recovered.
func Open(id string, repo store.Repository, converter *currency.Converter, opts Options) *Ledger {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.DefaultCurrency == "" {
		opts.DefaultCurrency = constants.DefaultCurrency
	}
	if converter == nil {
		converter = currency.NewConverter(nil)
	}

	l := &Ledger{
		id:        id,
		repo:      repo,
		converter: converter,
		internal:  slices.Clone(opts.Internal),
		log:       opts.Logger.With().Str("ledger", id).Logger(),
		now:       opts.Clock,
	}

	state, err := repo.Load(id)
	switch {
	case err == nil:
		l.state = l.normalize(state, opts.DefaultCurrency)
	case errors.Is(err, store.ErrRecordNotFound):
		l.log.Debug().Msg("no stored state, seeding defaults")
		l.state = model.NewState(opts.DefaultCurrency, opts.DefaultCategories)
	default:
		l.log.Error().Err(err).Msg("failed to load ledger, starting from empty state")
		l.recovered = err
		l.state = model.NewState(opts.DefaultCurrency, opts.DefaultCategories)
	}

	return l
}

// normalize fills fields older payloads may lack and restores the rule that
// every record belongs to a known category.
func (l *Ledger) normalize(st *model.State, defaultCurrency string) *model.State {
	if st.Currency == "" {
		st.Currency = defaultCurrency
	}
	st.Currency = currency.Normalize(st.Currency)
	if len(st.Rates) == 0 {
		st.Rates = currency.DefaultRates()
	}
	if st.PresetNotes == nil {
		st.PresetNotes = map[string][]string{}
	}

	cats := make([]string, 0, len(st.Categories))
	for _, c := range st.Categories {
		if c == "" || slices.Contains(cats, c) || l.isInternal(c) {
			continue
		}
		cats = append(cats, c)
	}
	for _, tx := range st.Transactions {
		if !l.isInternal(tx.Category) && !slices.Contains(cats, tx.Category) {
			l.log.Warn().Str("category", tx.Category).Msg("restoring category referenced by stored transactions")
			cats = append(cats, tx.Category)
		}
	}
	st.Categories = cats

	return st
}

// commit runs fn on a copy of the state and installs the copy once it has
// been saved.
func (l *Ledger) commit(fn func(next *model.State) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	next.LastUpdated = l.now()

	if err := l.repo.Save(l.id, next); err != nil {
		l.log.Error().Err(err).Msg("failed to save ledger")
		return fmt.Errorf("%w %s: %w", ErrPersist, l.id, err)
	}
	l.state = next
	return nil
}

func (l *Ledger) ID() string {
	return l.id
}

// Recovered returns the load error Open recovered from, if any.
func (l *Ledger) Recovered() error {
	return l.recovered
}

func (l *Ledger) Currency() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.Currency
}

// Rates returns the ledger's persisted copy of the rate table.
func (l *Ledger) Rates() currency.Rates {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.Rates.Clone()
}

func (l *Ledger) LastUpdated() time.Time {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.state.LastUpdated
}

func (l *Ledger) IsInternal(category string) bool {
	return l.isInternal(category)
}

func (l *Ledger) isInternal(category string) bool {
	return slices.Contains(l.internal, category)
}

// Transactions returns every record in insertion order.
func (l *Ledger) Transactions() []model.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.state.Transactions)
}

func (l *Ledger) Transaction(id uuid.UUID) (model.Transaction, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if i := indexOf(l.state.Transactions, id); i >= 0 {
		return l.state.Transactions[i], true
	}
	return model.Transaction{}, false
}

func (l *Ledger) TransactionsFor(category string) []model.Transaction {
	return l.Filter(func(tx model.Transaction) bool { return tx.Category == category })
}

// Filter returns the records matching keep, in insertion order.
func (l *Ledger) Filter(keep func(model.Transaction) bool) []model.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []model.Transaction
	for _, tx := range l.state.Transactions {
		if keep(tx) {
			out = append(out, tx)
		}
	}
	return out
}

// SumWhere adds the amounts of matching records; it does not apply signs.
func (l *Ledger) SumWhere(match func(model.Transaction) bool) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	sum := decimal.Zero
	for _, tx := range l.state.Transactions {
		if match(tx) {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// Balance is credits minus debits in category.
func (l *Ledger) Balance(category string) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	balance := decimal.Zero
	for _, tx := range l.state.Transactions {
		if tx.Category == category {
			balance = balance.Add(tx.Signed())
		}
	}
	return balance
}

// Total is the ledger-wide balance, skipping the excluded categories.
func (l *Ledger) Total(exclude ...string) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	total := decimal.Zero
	for _, tx := range l.state.Transactions {
		if !slices.Contains(exclude, tx.Category) {
			total = total.Add(tx.Signed())
		}
	}
	return total
}

func (l *Ledger) TotalCredits(exclude ...string) decimal.Decimal {
	return l.SumWhere(func(tx model.Transaction) bool {
		return tx.Kind == model.Credit && !slices.Contains(exclude, tx.Category)
	})
}

func (l *Ledger) TotalDebits(exclude ...string) decimal.Decimal {
	return l.SumWhere(func(tx model.Transaction) bool {
		return tx.Kind == model.Debit && !slices.Contains(exclude, tx.Category)
	})
}

// ForeignCurrencyTotals groups original amounts by their input currency.
func (l *Ledger) ForeignCurrencyTotals() map[string]ForeignTotal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	totals := map[string]ForeignTotal{}
	for _, tx := range l.state.Transactions {
		if tx.Original == nil {
			continue
		}
		ft := totals[tx.Original.Currency]
		if tx.Kind == model.Credit {
			ft.Credited = ft.Credited.Add(tx.Original.Amount)
		} else {
			ft.Debited = ft.Debited.Add(tx.Original.Amount)
		}
		totals[tx.Original.Currency] = ft
	}
	return totals
}

func indexOf(txs []model.Transaction, id uuid.UUID) int {
	return slices.IndexFunc(txs, func(tx model.Transaction) bool { return tx.ID == id })
}
