package holdings

import (
	"github.com/findash/holdings/date"
	"github.com/shopspring/decimal"
)

// D is a helper for test to create a decimal from a const string.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// rec is a helper for test to create a record with all its amounts set.
func rec(holding string, units, cost, value string, on date.Date) ValuationRecord {
	return ValuationRecord{
		Portfolio: "ISA",
		Holding:   holding,
		TrackerID: "CODE",
		Units:     mustParseAmount(units),
		Cost:      mustParseAmount(cost),
		Value:     mustParseAmount(value),
		Date:      on,
	}
}

func mustParseAmount(raw string) decimal.NullDecimal {
	n, err := ParseAmount(raw)
	if err != nil {
		panic(err)
	}
	return n
}
