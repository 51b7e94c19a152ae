package holdings

import (
	"slices"

	"github.com/findash/holdings/date"
	"github.com/shopspring/decimal"
)

// Position is one holding rolled up across all the matching valuation records.
//
// Units, Cost and Value are sums, null amounts counting as zero. Profit and Return are
// always derived from them.
type Position struct {
	Holding string
	Units   decimal.Decimal
	Cost    decimal.Decimal
	Value   decimal.Decimal
}

// Profit returns Value - Cost.
func (p Position) Profit() decimal.Decimal { return p.Value.Sub(p.Cost) }

// Return returns the profit as a percentage of the cost, or 0% without any cost basis.
func (p Position) Return() Percent { return P(p.Profit(), p.Cost) }

// HasCostBasis reports whether the return is meaningful.
func (p Position) HasCostBasis() bool { return p.Cost.IsPositive() }

func (p Position) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("holding", p.Holding)
	w.Append("units", p.Units)
	w.Append("cost", p.Cost)
	w.Append("value", p.Value)
	w.Append("profit", p.Profit())
	w.Append("return", p.Return())
	return w.MarshalJSON()
}

// Totals sums the cost and value of every position of an aggregation.
type Totals struct {
	Cost  decimal.Decimal
	Value decimal.Decimal
}

// Profit returns Value - Cost.
func (t Totals) Profit() decimal.Decimal { return t.Value.Sub(t.Cost) }

// Return returns the overall profit as a percentage of the overall cost, or 0% without
// any cost basis.
func (t Totals) Return() Percent { return P(t.Profit(), t.Cost) }

func (t Totals) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("cost", t.Cost)
	w.Append("value", t.Value)
	w.Append("profit", t.Profit())
	w.Append("return", t.Return())
	return w.MarshalJSON()
}

// Aggregation is the result of Aggregate: one position per holding, best profit first,
// and the portfolio totals.
type Aggregation struct {
	// Date is the valuation date the records were restricted to, zero for all dates.
	Date      date.Date
	Positions []Position
	Totals    Totals
}

func (a *Aggregation) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("date", a.Date)
	w.Append("positions", a.Positions)
	w.Append("totals", a.Totals)
	return w.MarshalJSON()
}

// Aggregate groups records per holding name.
//
// If 'on' is not the zero date, only the records valued on that exact day are used,
// otherwise all records, whatever their date, are summed together.
//
// Holdings are grouped on the exact name, no case folding nor trimming. Positions are
// sorted by profit, highest first; positions with the same profit keep the order in which
// their holding first appeared in records.
//
// Aggregate does not modify records.
func Aggregate(records []ValuationRecord, on date.Date) *Aggregation {
	a := &Aggregation{Date: on, Positions: []Position{}}

	index := make(map[string]int)
	for _, r := range records {
		if !on.IsZero() && r.Date != on {
			continue
		}
		i, exists := index[r.Holding]
		if !exists {
			i = len(a.Positions)
			index[r.Holding] = i
			a.Positions = append(a.Positions, Position{Holding: r.Holding})
		}
		p := &a.Positions[i]
		p.Units = p.Units.Add(r.UnitsOrZero())
		p.Cost = p.Cost.Add(r.CostOrZero())
		p.Value = p.Value.Add(r.ValueOrZero())
	}

	slices.SortStableFunc(a.Positions, func(x, y Position) int {
		return y.Profit().Cmp(x.Profit())
	})

	for _, p := range a.Positions {
		a.Totals.Cost = a.Totals.Cost.Add(p.Cost)
		a.Totals.Value = a.Totals.Value.Add(p.Value)
	}
	return a
}
