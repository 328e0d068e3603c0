package service

import (
	"github.com/hance08/pots/internal/ledger"
	"github.com/shopspring/decimal"
)

type CategoryBalance struct {
	Name    string
	Balance decimal.Decimal
}

type SavingsSummary struct {
	Currency       string
	Distributable  decimal.Decimal
	NetTransferred decimal.Decimal
	TotalCredited  decimal.Decimal
	TotalDebited   decimal.Decimal
	Total          decimal.Decimal
	Categories     []CategoryBalance
	Foreign        map[string]ledger.ForeignTotal
}

type ExpensesSummary struct {
	Currency    string
	Remaining   decimal.Decimal
	Income      decimal.Decimal
	Spent       decimal.Decimal
	Transferred decimal.Decimal
	Categories  []CategoryBalance
	Foreign     map[string]ledger.ForeignTotal
}

func categoryBalances(l *ledger.Ledger) []CategoryBalance {
	cats := l.Categories()
	out := make([]CategoryBalance, 0, len(cats))
	for _, c := range cats {
		out = append(out, CategoryBalance{Name: c, Balance: l.Balance(c)})
	}
	return out
}
