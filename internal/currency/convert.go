package currency

import "github.com/shopspring/decimal"

// Converter converts amounts between currency codes using the active table of
// the Book it was built from.
type Converter struct {
	book *Book
}

func NewConverter(book *Book) *Converter {
	if book == nil {
		book = NewBook(DefaultRates())
	}
	return &Converter{book: book}
}

// Book exposes the rate book so callers can install a new table.
func (c *Converter) Book() *Book {
	return c.book
}

// Convert returns amount / rate(from) * rate(to). It never fails: a code
// missing from the table converts with rate 1.
func (c *Converter) Convert(amount decimal.Decimal, from, to string) decimal.Decimal {
	from, to = Normalize(from), Normalize(to)
	if from == to {
		return amount
	}
	rates := c.book.snapshot()
	return amount.Div(rates.Rate(from)).Mul(rates.Rate(to))
}
