package holdings

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the currency of the broker exports.
const DefaultCurrency = "GBP"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns a Money of 'value' in 'currency'.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, e.g. "£1,234.50".
func (m Money) String() string {
	cur := m.currency()
	return cur.Formatter().Format(minorUnits(m.value, cur.Fraction))
}

// Grapheme returns the currency symbol, e.g. "£".
func (m Money) Grapheme() string { return m.currency().Grapheme }

func (m Money) Currency() string           { return m.cur }
func (m Money) Decimal() decimal.Decimal   { return m.value }
func (m Money) Equal(n Money) bool         { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool               { return m.value.IsZero() }
func (m Money) IsNegative() bool           { return m.value.IsNegative() }
func (m Money) IsPositive() bool           { return m.value.IsPositive() }
func (m Money) GreaterThan(n Money) bool   { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                 { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Add(n Money) Money          { return Money{value: m.value.Add(n.value), cur: m.cur} }
func (m Money) Sub(n Money) Money          { return Money{value: m.value.Sub(n.value), cur: m.cur} }

func (m Money) MarshalJSON() ([]byte, error) { return m.value.MarshalJSON() }

// FormatNumber formats d with 'fraction' decimals and thousands separators, without any
// currency symbol, e.g. FormatNumber(1234.5, 2) is "1,234.50".
func FormatNumber(d decimal.Decimal, fraction int) string {
	f := money.NewFormatter(fraction, ".", ",", "", "1")
	return f.Format(minorUnits(d, fraction))
}

// minorUnits returns d in units of 10^-fraction, rounded half away from zero.
func minorUnits(d decimal.Decimal, fraction int) int64 {
	return d.Shift(int32(fraction)).Round(0).IntPart()
}
