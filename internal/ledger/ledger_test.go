package ledger

import (
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/currency"
	"github.com/hance08/pots/internal/model"
	"github.com/hance08/pots/internal/store"
	"github.com/hance08/pots/internal/store/mock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func fixedClock() func() time.Time {
	ts := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func newTestLedger(t *testing.T, repo store.Repository, rates currency.Rates) *Ledger {
	t.Helper()
	if repo == nil {
		repo = mock.New()
	}
	return Open(constants.LedgerSavings, repo, currency.NewConverter(currency.NewBook(rates)), Options{
		Internal:          []string{constants.CategoryDistributable},
		DefaultCategories: []string{"Travel", "Food"},
		DefaultCurrency:   "EUR",
		Clock:             fixedClock(),
	})
}

func TestOpen_SeedsDefaultsWhenMissing(t *testing.T) {
	l := newTestLedger(t, nil, nil)

	assert.NoError(t, l.Recovered())
	assert.Equal(t, "EUR", l.Currency())
	assert.Equal(t, []string{"Travel", "Food"}, l.Categories())
	assert.Empty(t, l.Transactions())
}

func TestOpen_KeepsStoredCategories(t *testing.T) {
	repo := mock.New()
	repo.Seed(constants.LedgerSavings, model.NewState("SEK", []string{"Bike"}))

	l := newTestLedger(t, repo, nil)

	assert.Equal(t, "SEK", l.Currency())
	assert.Equal(t, []string{"Bike"}, l.Categories())
	assert.Equal(t, 1, repo.LoadCalls())
	assert.Zero(t, repo.SaveCalls())
}

func TestOpen_RecoversFromCorruptState(t *testing.T) {
	repo := mock.New()
	repo.LoadFunc = func(string) (*model.State, error) {
		return nil, store.ErrCorruptState
	}

	l := newTestLedger(t, repo, nil)

	assert.ErrorIs(t, l.Recovered(), store.ErrCorruptState)
	assert.Empty(t, l.Transactions())
	assert.Equal(t, "EUR", l.Currency())
	assert.Equal(t, []string{"Travel", "Food"}, l.Categories())
}

func TestOpen_NormalizesLegacyState(t *testing.T) {
	orphan, err := model.NewTransaction(uuid.New(), model.Credit, "Garden", dec("10"), time.Now(), "", nil)
	require.NoError(t, err)
	internal, err := model.NewTransaction(uuid.New(), model.Credit, constants.CategoryDistributable, dec("5"), time.Now(), "", nil)
	require.NoError(t, err)

	repo := mock.New()
	repo.Seed(constants.LedgerSavings, &model.State{
		Categories:   []string{"Bike", "Bike", constants.CategoryDistributable},
		Transactions: []model.Transaction{orphan, internal},
	})

	l := newTestLedger(t, repo, nil)

	assert.Equal(t, "EUR", l.Currency())
	assert.NotEmpty(t, l.Rates())
	assert.Equal(t, []string{"Bike", "Garden"}, l.Categories())
}

func TestRecord(t *testing.T) {
	l := newTestLedger(t, nil, nil)

	tx, err := l.Record(model.Credit, "Travel", dec("50"), "flights", nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, tx.ID)
	assert.Equal(t, "flights", tx.Note)
	assertDecimal(t, "50", l.Balance("Travel"))

	got, ok := l.Transaction(tx.ID)
	require.True(t, ok)
	assert.Equal(t, tx.ID, got.ID)
}

func TestRecord_Rejections(t *testing.T) {
	tests := []struct {
		name     string
		kind     model.Kind
		category string
		amount   string
		wantErr  error
	}{
		{"unknown category", model.Credit, "Casino", "1", ErrUnknownCategory},
		{"negative amount", model.Credit, "Travel", "-1", model.ErrInvalidAmount},
		{"bad kind", model.Kind("refund"), "Travel", "1", model.ErrInvalidKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mock.New()
			l := newTestLedger(t, repo, nil)

			_, err := l.Record(tt.kind, tt.category, dec(tt.amount), "", nil)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, l.Transactions())
			assert.Zero(t, repo.SaveCalls())
		})
	}
}

func TestRecord_InternalCategoryMayGoNegative(t *testing.T) {
	l := newTestLedger(t, nil, nil)

	_, err := l.Record(model.Debit, constants.CategoryDistributable, dec("40"), "", nil)
	require.NoError(t, err)
	assertDecimal(t, "-40", l.Balance(constants.CategoryDistributable))
}

func TestRecord_TimestampsStrictlyIncrease(t *testing.T) {
	l := newTestLedger(t, nil, nil)

	first, err := l.Record(model.Credit, "Travel", dec("1"), "", nil)
	require.NoError(t, err)
	second, err := l.Record(model.Credit, "Travel", dec("1"), "", nil)
	require.NoError(t, err)

	assert.True(t, second.Timestamp.After(first.Timestamp))
}

func TestBalanceProperty(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 42))
	categories := []string{"Travel", "Food", constants.CategoryDistributable}

	for round := 0; round < 20; round++ {
		l := newTestLedger(t, nil, nil)
		want := map[string]decimal.Decimal{}

		for i := 0; i < 50; i++ {
			cat := categories[rng.IntN(len(categories))]
			amount := decimal.New(rng.Int64N(100000), -2)
			kind := model.Credit
			if rng.IntN(2) == 0 {
				kind = model.Debit
			}

			_, err := l.Record(kind, cat, amount, "", nil)
			require.NoError(t, err)

			if kind == model.Credit {
				want[cat] = want[cat].Add(amount)
			} else {
				want[cat] = want[cat].Sub(amount)
			}
		}

		sum := decimal.Zero
		for _, cat := range categories {
			assert.True(t, want[cat].Equal(l.Balance(cat)), "round %d category %s", round, cat)
			sum = sum.Add(l.Balance(cat))
		}
		assert.True(t, sum.Equal(l.Total()), "total must equal the sum of balances")
		assert.True(t, l.TotalCredits().Sub(l.TotalDebits()).Equal(l.Total()))
	}
}

func TestTotalExclude(t *testing.T) {
	l := newTestLedger(t, nil, nil)

	_, err := l.Record(model.Credit, constants.CategoryDistributable, dec("300"), "", nil)
	require.NoError(t, err)
	_, err = l.Record(model.Credit, "Travel", dec("200"), "", nil)
	require.NoError(t, err)
	_, err = l.Record(model.Debit, "Travel", dec("25"), "", nil)
	require.NoError(t, err)

	assertDecimal(t, "475", l.Total())
	assertDecimal(t, "175", l.Total(constants.CategoryDistributable))
	assertDecimal(t, "200", l.TotalCredits(constants.CategoryDistributable))
	assertDecimal(t, "25", l.TotalDebits(constants.CategoryDistributable))
	assert.Len(t, l.TransactionsFor("Travel"), 2)
}

func TestForeignCurrencyScenario(t *testing.T) {
	rates := currency.Rates{"EUR": dec("1.0"), "USD": dec("1.08")}
	l := newTestLedger(t, nil, rates)

	_, err := l.Record(model.Credit, "Travel", dec("108"), "", &model.Money{Currency: "USD", Amount: dec("100")})
	require.NoError(t, err)

	assertDecimal(t, "108", l.Balance("Travel"))
	totals := l.ForeignCurrencyTotals()
	require.Contains(t, totals, "USD")
	assertDecimal(t, "100", totals["USD"].Credited)
	assertDecimal(t, "0", totals["USD"].Debited)
}

func TestPrice(t *testing.T) {
	rates := currency.Rates{"EUR": dec("1"), "USD": dec("1.25")}
	l := newTestLedger(t, nil, rates)

	amount, original := l.Price(dec("100"), "usd")
	assertDecimal(t, "80", amount)
	require.NotNil(t, original)
	assert.Equal(t, "USD", original.Currency)
	assertDecimal(t, "100", original.Amount)

	amount, original = l.Price(dec("100"), "EUR")
	assertDecimal(t, "100", amount)
	assert.Nil(t, original)

	_, original = l.Price(dec("100"), "")
	assert.Nil(t, original)
}

func TestRecalculateForeignAmounts_Idempotent(t *testing.T) {
	book := currency.NewBook(currency.Rates{"EUR": dec("1"), "USD": dec("1.25")})
	repo := mock.New()
	l := Open(constants.LedgerSavings, repo, currency.NewConverter(book), Options{
		DefaultCategories: []string{"Travel"},
		Clock:             fixedClock(),
	})

	_, err := l.Record(model.Credit, "Travel", dec("80"), "", &model.Money{Currency: "USD", Amount: dec("100")})
	require.NoError(t, err)
	_, err = l.Record(model.Credit, "Travel", dec("10"), "", nil)
	require.NoError(t, err)

	book.Replace(currency.Rates{"EUR": dec("1"), "USD": dec("2")})

	changed, err := l.RecalculateForeignAmounts()
	require.NoError(t, err)
	assert.Equal(t, 1, changed)
	first := l.Transactions()
	assertDecimal(t, "50", first[0].Amount)
	assertDecimal(t, "10", first[1].Amount)

	saves := repo.SaveCalls()
	changed, err = l.RecalculateForeignAmounts()
	require.NoError(t, err)
	assert.Zero(t, changed)
	assert.Equal(t, saves, repo.SaveCalls())

	for i, tx := range l.Transactions() {
		assert.True(t, first[i].Amount.Equal(tx.Amount))
	}
}

func TestRebase(t *testing.T) {
	rates := currency.Rates{"EUR": dec("1"), "SEK": dec("10")}
	l := newTestLedger(t, nil, rates)

	_, err := l.Record(model.Credit, "Travel", dec("12.5"), "", nil)
	require.NoError(t, err)

	require.NoError(t, l.Rebase("sek"))
	assert.Equal(t, "SEK", l.Currency())
	assertDecimal(t, "125", l.Balance("Travel"))

	require.NoError(t, l.Rebase("SEK"))
	assertDecimal(t, "125", l.Balance("Travel"))
}

func TestConvertAllAmounts(t *testing.T) {
	rates := currency.Rates{"EUR": dec("1"), "SEK": dec("10")}
	l := newTestLedger(t, nil, rates)

	_, err := l.Record(model.Credit, "Travel", dec("100"), "", nil)
	require.NoError(t, err)

	require.NoError(t, l.ConvertAllAmounts("SEK", "EUR"))
	assertDecimal(t, "10", l.Balance("Travel"))
	assert.Equal(t, "EUR", l.Currency(), "currency is changed separately")

	require.NoError(t, l.SetCurrency("usd"))
	assert.Equal(t, "USD", l.Currency())
}

func TestAddCategory(t *testing.T) {
	l := newTestLedger(t, nil, nil)

	added, err := l.AddCategory("Bike")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = l.AddCategory("Bike")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = l.AddCategory("bike")
	require.NoError(t, err)
	assert.True(t, added, "names are case sensitive")

	count := 0
	for _, c := range l.Categories() {
		if c == "Bike" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"Travel", "Food", "Bike", "bike"}, l.Categories())

	_, err = l.AddCategory("  ")
	assert.ErrorIs(t, err, ErrEmptyCategory)
	_, err = l.AddCategory("__secret__")
	assert.ErrorIs(t, err, ErrReservedCategory)
}

func TestDeleteCategory(t *testing.T) {
	l := newTestLedger(t, nil, nil)

	_, err := l.Record(model.Credit, "Travel", dec("10"), "", nil)
	require.NoError(t, err)
	_, err = l.Record(model.Credit, "Food", dec("5"), "", nil)
	require.NoError(t, err)
	_, err = l.AddPresetNote("Travel", "train")
	require.NoError(t, err)

	require.NoError(t, l.DeleteCategory("Travel"))
	assert.Equal(t, []string{"Food"}, l.Categories())
	assert.Empty(t, l.TransactionsFor("Travel"))
	assert.Empty(t, l.PresetNotes("Travel"))
	assert.Len(t, l.Transactions(), 1)

	require.NoError(t, l.DeleteCategory("Travel"))
	assert.ErrorIs(t, l.DeleteCategory(constants.CategoryDistributable), ErrReservedCategory)
}

func TestClearOperations(t *testing.T) {
	l := newTestLedger(t, nil, nil)

	_, err := l.Record(model.Credit, constants.CategoryDistributable, dec("100"), constants.NoteTransfer, nil)
	require.NoError(t, err)
	_, err = l.Record(model.Credit, constants.CategoryDistributable, dec("40"), "", nil)
	require.NoError(t, err)
	_, err = l.Record(model.Credit, "Travel", dec("10"), "", nil)
	require.NoError(t, err)

	removed, err := l.ClearCategoryTagged(constants.CategoryDistributable, constants.NoteTransfer)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assertDecimal(t, "40", l.Balance(constants.CategoryDistributable))

	removed, err = l.ClearCategory("Travel")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Contains(t, l.Categories(), "Travel")

	removed, err = l.ClearAll()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.Empty(t, l.Transactions())
	assert.Equal(t, []string{"Travel", "Food"}, l.Categories())
}

func TestEditTransaction(t *testing.T) {
	l := newTestLedger(t, nil, nil)

	tx, err := l.Record(model.Debit, "Travel", dec("10"), "taxi", &model.Money{Currency: "USD", Amount: dec("11")})
	require.NoError(t, err)

	found, err := l.EditTransaction(tx.ID, Edit{Amount: dec("12")})
	require.NoError(t, err)
	assert.True(t, found)

	got, _ := l.Transaction(tx.ID)
	assertDecimal(t, "12", got.Amount)
	assert.Nil(t, got.Original)
	assert.Equal(t, "taxi", got.Note)
	assert.Equal(t, tx.Timestamp, got.Timestamp)
	assert.Equal(t, tx.Kind, got.Kind)
	assert.Equal(t, tx.Category, got.Category)

	note := ""
	found, err = l.EditTransaction(tx.ID, Edit{Amount: dec("9"), Original: &model.Money{Currency: "sek", Amount: dec("100")}, Note: &note})
	require.NoError(t, err)
	assert.True(t, found)

	got, _ = l.Transaction(tx.ID)
	assert.Empty(t, got.Note)
	require.NotNil(t, got.Original)
	assert.Equal(t, "SEK", got.Original.Currency)

	found, err = l.EditTransaction(uuid.New(), Edit{Amount: dec("1")})
	require.NoError(t, err)
	assert.False(t, found)

	_, err = l.EditTransaction(tx.ID, Edit{Amount: dec("-1")})
	assert.ErrorIs(t, err, model.ErrInvalidAmount)
}

func TestDeleteTransaction(t *testing.T) {
	l := newTestLedger(t, nil, nil)

	tx, err := l.Record(model.Credit, "Travel", dec("10"), "", nil)
	require.NoError(t, err)

	deleted, err := l.DeleteTransaction(tx.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = l.DeleteTransaction(tx.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestPresetNotes(t *testing.T) {
	l := newTestLedger(t, nil, nil)

	added, err := l.AddPresetNote("Food", "lunch")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = l.AddPresetNote("Food", "lunch")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = l.AddPresetNote("Food", " ")
	require.NoError(t, err)
	assert.False(t, added)

	assert.Equal(t, []string{"lunch"}, l.PresetNotes("Food"))

	removed, err := l.RemovePresetNote("Food", "lunch")
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Empty(t, l.PresetNotes("Food"))

	removed, err = l.RemovePresetNote("Food", "lunch")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSetExchangeRates(t *testing.T) {
	l := newTestLedger(t, nil, nil)

	require.NoError(t, l.SetExchangeRates(currency.Rates{"EUR": dec("1"), "GBP": dec("0.85")}))
	assertDecimal(t, "0.85", l.Rates()["GBP"])

	err := l.SetExchangeRates(currency.Rates{"EUR": dec("0")})
	assert.ErrorIs(t, err, currency.ErrInvalidRate)
	assertDecimal(t, "0.85", l.Rates()["GBP"])
}

func TestPersistFailureLeavesStateUntouched(t *testing.T) {
	repo := mock.New()
	l := newTestLedger(t, repo, nil)

	_, err := l.Record(model.Credit, "Travel", dec("10"), "", nil)
	require.NoError(t, err)

	repo.SaveFunc = func(string, *model.State) error { return errDiskFull }

	_, err = l.Record(model.Credit, "Travel", dec("99"), "", nil)
	assert.ErrorIs(t, err, ErrPersist)
	assert.ErrorIs(t, err, errDiskFull)
	assertDecimal(t, "10", l.Balance("Travel"))

	_, err = l.AddCategory("Bike")
	assert.ErrorIs(t, err, ErrPersist)
	assert.NotContains(t, l.Categories(), "Bike")

	_, err = l.ClearAll()
	assert.ErrorIs(t, err, ErrPersist)
	assert.Len(t, l.Transactions(), 1)

	stored, ok := repo.Stored(constants.LedgerSavings)
	require.True(t, ok)
	assert.Len(t, stored.Transactions, 1)
}

func TestSavedStateReloads(t *testing.T) {
	repo := mock.New()
	l := newTestLedger(t, repo, nil)

	_, err := l.AddCategory("Bike")
	require.NoError(t, err)
	_, err = l.Record(model.Credit, "Bike", dec("10"), "", nil)
	require.NoError(t, err)

	reopened := newTestLedger(t, repo, nil)
	assert.Contains(t, reopened.Categories(), "Bike")
	assertDecimal(t, "10", reopened.Balance("Bike"))
	assert.False(t, reopened.LastUpdated().IsZero())
}

func TestLegacyFileIDsSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	legacy := `{"transactions":[{"amount":40,"action":"add","category":"Travel","timestamp":"2024-05-01T12:00:00","note":null}],"categories":["Travel"]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "savings_data.json"), []byte(legacy), 0644))

	repo, err := store.NewFileStore(dir)
	require.NoError(t, err)

	first := newTestLedger(t, repo, nil)
	require.Len(t, first.Transactions(), 1)
	id := first.Transactions()[0].ID

	second := newTestLedger(t, repo, nil)
	found, err := second.DeleteTransaction(id)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, second.Transactions())

	third := newTestLedger(t, repo, nil)
	assert.Empty(t, third.Transactions())
}
