package holdings

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/findash/holdings/date"
	"github.com/shopspring/decimal"
)

var (
	jul = date.New(2025, time.July, 1)
	aug = date.New(2025, time.August, 1)
)

func TestAggregate_SameDate(t *testing.T) {
	// Two records for the same holding, profit exactly zero.
	records := []ValuationRecord{
		rec("Acme", "10", "100", "150", aug),
		rec("Acme", "5", "200", "150", aug),
	}

	a := Aggregate(records, aug)

	if len(a.Positions) != 1 {
		t.Fatalf("len(Positions) = %d, want 1", len(a.Positions))
	}
	p := a.Positions[0]
	if p.Holding != "Acme" {
		t.Errorf("Holding = %q, want %q", p.Holding, "Acme")
	}
	if !p.Units.Equal(D("15")) {
		t.Errorf("Units = %v, want 15", p.Units)
	}
	if !p.Cost.Equal(D("300")) {
		t.Errorf("Cost = %v, want 300", p.Cost)
	}
	if !p.Value.Equal(D("300")) {
		t.Errorf("Value = %v, want 300", p.Value)
	}
	if !p.Profit().IsZero() {
		t.Errorf("Profit() = %v, want 0", p.Profit())
	}
	if !p.Return().IsZero() {
		t.Errorf("Return() = %v, want 0%%", p.Return())
	}
}

func TestAggregate_NoCostBasis(t *testing.T) {
	records := []ValuationRecord{rec("Gift", "1", "0", "50", aug)}

	a := Aggregate(records, date.Date{})

	p := a.Positions[0]
	if !p.Profit().Equal(D("50")) {
		t.Errorf("Profit() = %v, want 50", p.Profit())
	}
	if !p.Return().IsZero() {
		t.Errorf("Return() = %v, want 0%%", p.Return())
	}
	if p.HasCostBasis() {
		t.Errorf("HasCostBasis() = true, want false")
	}
	if !a.Totals.Return().IsZero() {
		t.Errorf("Totals.Return() = %v, want 0%%", a.Totals.Return())
	}
	if !a.Totals.Profit().Equal(D("50")) {
		t.Errorf("Totals.Profit() = %v, want 50", a.Totals.Profit())
	}
}

func TestAggregate_DateFilter(t *testing.T) {
	records := []ValuationRecord{
		rec("Acme", "10", "100", "120", jul),
		rec("Beta", "1", "50", "40", jul),
		rec("Acme", "10", "100", "130", aug),
		rec("Gamma", "3", "30", "33", aug),
	}

	t.Run("single date", func(t *testing.T) {
		a := Aggregate(records, aug)
		if a.Date != aug {
			t.Errorf("Date = %v, want %v", a.Date, aug)
		}
		if len(a.Positions) != 2 {
			t.Fatalf("len(Positions) = %d, want 2", len(a.Positions))
		}
		if a.Positions[0].Holding != "Acme" || a.Positions[1].Holding != "Gamma" {
			t.Errorf("Positions = %q, %q, want Acme, Gamma", a.Positions[0].Holding, a.Positions[1].Holding)
		}
		if !a.Positions[0].Cost.Equal(D("100")) {
			t.Errorf("Acme Cost = %v, want 100", a.Positions[0].Cost)
		}
		if !a.Totals.Cost.Equal(D("130")) || !a.Totals.Value.Equal(D("163")) {
			t.Errorf("Totals = %v/%v, want 130/163", a.Totals.Cost, a.Totals.Value)
		}
	})

	t.Run("all dates", func(t *testing.T) {
		a := Aggregate(records, date.Date{})
		if len(a.Positions) != 3 {
			t.Fatalf("len(Positions) = %d, want 3", len(a.Positions))
		}
		acme := a.Positions[0]
		if acme.Holding != "Acme" || !acme.Cost.Equal(D("200")) || !acme.Value.Equal(D("250")) {
			t.Errorf("Positions[0] = %+v, want Acme 200/250", acme)
		}
		if !a.Totals.Cost.Equal(D("280")) || !a.Totals.Value.Equal(D("323")) {
			t.Errorf("Totals = %v/%v, want 280/323", a.Totals.Cost, a.Totals.Value)
		}
	})

	t.Run("no match", func(t *testing.T) {
		a := Aggregate(records, date.New(2020, 1, 1))
		if len(a.Positions) != 0 {
			t.Errorf("len(Positions) = %d, want 0", len(a.Positions))
		}
		if !a.Totals.Cost.IsZero() || !a.Totals.Return().IsZero() {
			t.Errorf("Totals = %+v, want zero", a.Totals)
		}
	})
}

func TestAggregate_NullAmounts(t *testing.T) {
	records := []ValuationRecord{
		{Holding: "Acme", Units: Amount("2"), Date: aug},
		{Holding: "Acme", Cost: Amount("10"), Value: Amount("12"), Date: aug},
	}
	a := Aggregate(records, aug)
	p := a.Positions[0]
	if !p.Units.Equal(D("2")) || !p.Cost.Equal(D("10")) || !p.Value.Equal(D("12")) {
		t.Errorf("Position = %+v, want units 2, cost 10, value 12", p)
	}
}

func TestAggregate_ExactNameGrouping(t *testing.T) {
	records := []ValuationRecord{
		rec("Acme", "1", "10", "10", aug),
		rec("ACME", "1", "10", "10", aug),
		rec("Acme ", "1", "10", "10", aug),
	}
	if got := len(Aggregate(records, aug).Positions); got != 3 {
		t.Errorf("len(Positions) = %d, want 3", got)
	}
}

func TestAggregate_SortedByProfit(t *testing.T) {
	records := []ValuationRecord{
		rec("Loser", "1", "100", "50", aug),   // -50
		rec("Flat A", "1", "10", "10", aug),   // 0
		rec("Winner", "1", "100", "200", aug), // +100
		rec("Flat B", "1", "20", "20", aug),   // 0
		rec("Small", "1", "100", "101", aug),  // +1
	}
	a := Aggregate(records, aug)

	want := []string{"Winner", "Small", "Flat A", "Flat B", "Loser"}
	for i, name := range want {
		if a.Positions[i].Holding != name {
			t.Errorf("Positions[%d] = %q, want %q", i, a.Positions[i].Holding, name)
		}
	}
	for i := 1; i < len(a.Positions); i++ {
		if a.Positions[i].Profit().GreaterThan(a.Positions[i-1].Profit()) {
			t.Errorf("Positions[%d] profit %v > Positions[%d] profit %v", i, a.Positions[i].Profit(), i-1, a.Positions[i-1].Profit())
		}
	}
}

func TestAggregate_OrderIndependent(t *testing.T) {
	records := []ValuationRecord{
		rec("Acme", "1.5", "100.10", "120.33", aug),
		rec("Beta", "2", "0.1", "0.2", aug),
		rec("Acme", "2.25", "99.99", "80.01", aug),
		rec("Gamma", "3", "1,000.05", "999.95", aug),
		rec("Beta", "7", "0.2", "0.3", aug),
		rec("Delta", "1", "33.33", "66.67", jul),
	}
	want := Aggregate(records, date.Date{})

	r := rand.New(rand.NewSource(1))
	for range 20 {
		shuffled := make([]ValuationRecord, len(records))
		copy(shuffled, records)
		r.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		got := Aggregate(shuffled, date.Date{})
		if !got.Totals.Cost.Equal(want.Totals.Cost) || !got.Totals.Value.Equal(want.Totals.Value) {
			t.Fatalf("Totals = %+v, want %+v", got.Totals, want.Totals)
		}
		sums := make(map[string]Position)
		for _, p := range got.Positions {
			sums[p.Holding] = p
		}
		for _, w := range want.Positions {
			g := sums[w.Holding]
			if !g.Units.Equal(w.Units) || !g.Cost.Equal(w.Cost) || !g.Value.Equal(w.Value) {
				t.Errorf("position %q = %+v, want %+v", w.Holding, g, w)
			}
		}
	}
}

func TestAggregate_TotalsAreExactSums(t *testing.T) {
	records := []ValuationRecord{
		rec("A", "1", "0.1", "0.7", aug),
		rec("B", "1", "0.2", "0.11", aug),
		rec("C", "1", "1,234.567", "2,000.003", aug),
	}
	a := Aggregate(records, aug)
	var cost, value decimal.Decimal
	for _, p := range a.Positions {
		cost = cost.Add(p.Cost)
		value = value.Add(p.Value)
	}
	if !cost.Equal(a.Totals.Cost) {
		t.Errorf("sum(Cost) = %v, Totals.Cost = %v", cost, a.Totals.Cost)
	}
	if !value.Equal(a.Totals.Value) {
		t.Errorf("sum(Value) = %v, Totals.Value = %v", value, a.Totals.Value)
	}
	if !a.Totals.Cost.Equal(D("1234.867")) {
		t.Errorf("Totals.Cost = %v, want 1234.867", a.Totals.Cost)
	}
}

func TestAggregate_DoesNotModifyInput(t *testing.T) {
	records := []ValuationRecord{
		rec("B", "1", "10", "5", aug),
		rec("A", "1", "10", "50", aug),
	}
	Aggregate(records, aug)
	if records[0].Holding != "B" || records[1].Holding != "A" {
		t.Errorf("records were reordered: %q, %q", records[0].Holding, records[1].Holding)
	}
}

func TestAggregation_MarshalJSON(t *testing.T) {
	a := Aggregate([]ValuationRecord{rec("Acme", "2", "100", "125", aug)}, aug)
	got, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	want := `{"date":"2025-08-01","positions":[{"holding":"Acme","units":2,"cost":100,"value":125,"profit":25,"return":25}],"totals":{"cost":100,"value":125,"profit":25,"return":25}}`
	if string(got) != want {
		t.Errorf("json.Marshal() =\n%s\nwant\n%s", got, want)
	}
}
