package holdings

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount cleans a raw export cell into a decimal.
//
// Surrounding whitespace is ignored and thousands separators are removed. An empty cell
// is a null amount, not zero. Anything else that is not a decimal number is an error
// wrapping ErrMalformedInput.
func ParseAmount(raw string) (decimal.NullDecimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%w: invalid amount %q", ErrMalformedInput, raw)
	}
	return decimal.NewNullDecimal(d), nil
}

// Amount is a helper to build a valid NullDecimal from a decimal string, it panics if the
// string is not a decimal. Use it for constants.
func Amount(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// orZero returns the amount, or zero when null.
func orZero(n decimal.NullDecimal) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}
	return n.Decimal
}
