package holdings

import (
	"fmt"

	"github.com/findash/holdings/date"
	"github.com/shopspring/decimal"
)

// TotalsHolding is the holding name of the footer row that broker exports append to the table.
const TotalsHolding = "Totals"

// ValuationRecord is the state of one holding, in one portfolio, on one valuation date.
//
// Records are created in bulk from one export file and never modified afterward.
type ValuationRecord struct {
	// Portfolio is a short label grouping holdings, e.g. "ISA".
	Portfolio string `json:"portfolio"`
	// Holding is the security name as printed in the export. It is not unique.
	Holding string `json:"holding"`
	// TrackerID is the short instrument code.
	TrackerID string `json:"trackerId"`

	Units decimal.NullDecimal `json:"units"`
	Cost  decimal.NullDecimal `json:"cost"`
	Value decimal.NullDecimal `json:"value"`

	// Date is the valuation snapshot this record belongs to.
	Date date.Date `json:"date"`
}

// UnitsOrZero returns the units held, a null amount counts as zero.
func (r ValuationRecord) UnitsOrZero() decimal.Decimal { return orZero(r.Units) }

// CostOrZero returns the cost, a null amount counts as zero.
func (r ValuationRecord) CostOrZero() decimal.Decimal { return orZero(r.Cost) }

// ValueOrZero returns the value, a null amount counts as zero.
func (r ValuationRecord) ValueOrZero() decimal.Decimal { return orZero(r.Value) }

// Check rejects a record that no export row could have produced: one without a holding
// name, an instrument code or a valuation date, or the totals footer.
func (r ValuationRecord) Check() error {
	switch {
	case r.Holding == "":
		return fmt.Errorf("%w: record without holding name", ErrMalformedInput)
	case r.Holding == TotalsHolding:
		return fmt.Errorf("%w: %q is not a holding", ErrMalformedInput, r.Holding)
	case r.TrackerID == "":
		return fmt.Errorf("%w: holding %q has no instrument code", ErrMalformedInput, r.Holding)
	case r.Date.IsZero():
		return fmt.Errorf("%w: holding %q has no valuation date", ErrMalformedInput, r.Holding)
	}
	return nil
}
