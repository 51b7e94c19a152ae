package holdings

import (
	"slices"
	"testing"

	"github.com/findash/holdings/date"
)

func TestHoldingHistory(t *testing.T) {
	records := []ValuationRecord{
		rec("Acme", "1", "10", "12", aug),
		rec("Acme", "1", "10", "11", jul),
		{Portfolio: "SIPP", Holding: "Acme", Value: Amount("3"), Date: aug},
		{Portfolio: "SIPP", Holding: "Acme", Date: jul}, // null value
		rec("Beta", "1", "10", "99", aug),
		rec("acme", "1", "10", "99", aug),
	}

	h := HoldingHistory(records, "Acme")

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
	var days []date.Date
	for day, value := range h.Values() {
		days = append(days, day)
		want := map[date.Date]string{jul: "11", aug: "15"}[day]
		if !value.Equal(D(want)) {
			t.Errorf("value on %v = %v, want %v", day, value, want)
		}
	}
	if !slices.Equal(days, []date.Date{jul, aug}) {
		t.Errorf("days = %v, want [%v %v]", days, jul, aug)
	}
}

func TestHoldingNames(t *testing.T) {
	records := []ValuationRecord{
		rec("Beta", "1", "1", "1", aug),
		rec("Acme", "1", "1", "1", aug),
		rec("Beta", "1", "1", "1", jul),
		{Holding: ""},
	}
	got := HoldingNames(records)
	if want := []string{"Acme", "Beta"}; !slices.Equal(got, want) {
		t.Errorf("HoldingNames() = %q, want %q", got, want)
	}
}

func TestValuationDates(t *testing.T) {
	records := []ValuationRecord{
		rec("Acme", "1", "1", "1", jul),
		rec("Beta", "1", "1", "1", aug),
		rec("Acme", "1", "1", "1", aug),
	}
	got := ValuationDates(records)
	if want := []date.Date{aug, jul}; !slices.Equal(got, want) {
		t.Errorf("ValuationDates() = %v, want %v", got, want)
	}
	if got := ValuationDates(nil); len(got) != 0 {
		t.Errorf("ValuationDates(nil) = %v, want empty", got)
	}
}
