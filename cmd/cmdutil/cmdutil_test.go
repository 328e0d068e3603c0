package cmdutil

import (
	"testing"

	"github.com/hance08/pots/internal/bridge"
	"github.com/hance08/pots/internal/constants"
	"github.com/hance08/pots/internal/currency"
	"github.com/hance08/pots/internal/ledger"
	"github.com/hance08/pots/internal/model"
	"github.com/hance08/pots/internal/service"
	"github.com/hance08/pots/internal/store/mock"
	"github.com/hance08/pots/internal/utils"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *service.Service {
	t.Helper()
	repo := mock.New()
	book := currency.NewBook(currency.DefaultRates())
	conv := currency.NewConverter(book)

	savings := ledger.Open(constants.LedgerSavings, repo, conv, ledger.Options{
		Internal:          []string{constants.CategoryDistributable},
		DefaultCategories: constants.DefaultSavingsCategories,
	})
	expenses := ledger.Open(constants.LedgerExpenses, repo, conv, ledger.Options{
		Internal:          []string{constants.CategoryTransferOut, constants.CategorySalary},
		DefaultCategories: constants.DefaultExpenseCategories,
	})
	return service.NewService(bridge.New(savings, expenses, zerolog.Nop()), book, zerolog.Nop())
}

func TestLedger(t *testing.T) {
	svc := newService(t)

	l, err := Ledger(svc, []string{"expenses"}, 0)
	require.NoError(t, err)
	assert.Equal(t, constants.LedgerExpenses, l.ID())

	_, err = Ledger(svc, []string{"x", "pension"}, 1)
	assert.ErrorIs(t, err, service.ErrUnknownLedger)
}

func TestAmount(t *testing.T) {
	amount, err := Amount([]string{"Travel", "1,250.50"}, 1, "Amount:")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("1250.5").Equal(amount))

	_, err = Amount([]string{"-3"}, 0, "Amount:")
	assert.ErrorIs(t, err, utils.ErrInvalidAmount)
}

func TestCategory(t *testing.T) {
	svc := newService(t)
	l, err := svc.Ledger(constants.LedgerSavings)
	require.NoError(t, err)

	got, err := Category(l, []string{"Travel"}, 0, "Category:", false)
	require.NoError(t, err)
	assert.Equal(t, "Travel", got)
}

func TestCurrency(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"usd", "USD", false},
		{" SEK ", "SEK", false},
		{"GBP", "", true},
		{"EURO", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Currency(svc, tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "€10.00", Describe(decimal.NewFromInt(10), "EUR", nil))
	assert.Equal(t, "€9.26 (entered as $10.00)", Describe(decimal.RequireFromString("9.26"), "EUR",
		&model.Money{Currency: "USD", Amount: decimal.NewFromInt(10)}))
}
