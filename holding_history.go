package holdings

import (
	"slices"
	"strings"

	"github.com/findash/holdings/date"
	"github.com/shopspring/decimal"
)

// HoldingHistory returns the value of 'holding' on every valuation date found in records.
//
// Values of the same holding held in several portfolios on the same date are added up.
// The name must match exactly.
func HoldingHistory(records []ValuationRecord, holding string) *date.History[decimal.Decimal] {
	h := new(date.History[decimal.Decimal])
	for _, r := range records {
		if r.Holding != holding {
			continue
		}
		h.Merge(r.Date, r.ValueOrZero(), decimal.Decimal.Add)
	}
	return h
}

// HoldingNames returns the distinct, non empty, holding names in records, sorted.
func HoldingNames(records []ValuationRecord) []string {
	names := make([]string, 0)
	for _, r := range records {
		if r.Holding == "" {
			continue
		}
		names = append(names, r.Holding)
	}
	slices.SortFunc(names, strings.Compare)
	return slices.Compact(names)
}

// ValuationDates returns the distinct valuation dates in records, most recent first.
func ValuationDates(records []ValuationRecord) []date.Date {
	dates := make([]date.Date, 0)
	for _, r := range records {
		dates = append(dates, r.Date)
	}
	slices.SortFunc(dates, func(a, b date.Date) int { return b.Compare(a) })
	return slices.Compact(dates)
}
