package holdings

import "github.com/shopspring/decimal"

// Percent is a percentage, 12.5 means 12.5%.
type Percent struct {
	value decimal.Decimal
}

// P returns the percentage of ratio part/whole, or 0% when whole is not positive.
//
// A missing cost basis is a valid state, reported as a 0% return.
func P(part, whole decimal.Decimal) Percent {
	if !whole.IsPositive() {
		return Percent{}
	}
	return Percent{value: part.Div(whole).Mul(hundred)}
}

var hundred = decimal.NewFromInt(100)

func (p Percent) Decimal() decimal.Decimal { return p.value }
func (p Percent) Equal(q Percent) bool     { return p.value.Equal(q.value) }
func (p Percent) IsZero() bool             { return p.value.IsZero() }

// Fixed formats the percentage with 'places' decimals and a trailing "%".
func (p Percent) Fixed(places int32) string { return p.value.StringFixed(places) + "%" }

func (p Percent) String() string { return p.Fixed(2) }

func (p Percent) MarshalJSON() ([]byte, error) { return p.value.MarshalJSON() }
