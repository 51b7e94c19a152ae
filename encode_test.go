package holdings

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEncodeRecords(t *testing.T) {
	records := []ValuationRecord{
		rec("Acme", "1,234.5", "100", "150.25", aug),
		{Portfolio: "SIPP", Holding: "Beta", TrackerID: "BET", Value: Amount("0"), Date: jul},
	}

	var buf bytes.Buffer
	if err := EncodeRecords(&buf, records); err != nil {
		t.Fatalf("EncodeRecords() error = %v", err)
	}

	want := `{"portfolio":"ISA","holding":"Acme","trackerId":"CODE","units":1234.5,"cost":100,"value":150.25,"date":"2025-08-01"}
{"portfolio":"SIPP","holding":"Beta","trackerId":"BET","units":null,"cost":null,"value":0,"date":"2025-07-01"}
`
	if got := buf.String(); got != want {
		t.Errorf("EncodeRecords() =\n%s\nwant\n%s", got, want)
	}

	decoded, err := DecodeRecords(strings.NewReader(buf.String() + "\n\n"))
	if err != nil {
		t.Fatalf("DecodeRecords() error = %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("len(DecodeRecords()) = %d, want 2", len(decoded))
	}
	if decoded[1].Units.Valid || decoded[1].Cost.Valid {
		t.Errorf("null amounts decoded as %+v, want null", decoded[1])
	}
	if !decoded[1].Value.Valid || !decoded[1].Value.Decimal.IsZero() {
		t.Errorf("zero value decoded as %+v, want 0", decoded[1].Value)
	}
	if decoded[0].Date != aug || !decoded[0].Units.Decimal.Equal(D("1234.5")) {
		t.Errorf("DecodeRecords()[0] = %+v", decoded[0])
	}
}

func TestDecodeRecords_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"truncated", `{"holding":`},
		{"no date", `{"portfolio":"ISA","holding":"Acme","trackerId":"ACM","units":1,"cost":10,"value":12}`},
		{"no holding", `{"portfolio":"ISA","trackerId":"ACM","value":12,"date":"2025-08-01"}`},
		{"no code", `{"portfolio":"ISA","holding":"Cash","value":12,"date":"2025-08-01"}`},
		{"totals", `{"portfolio":"ISA","holding":"Totals","trackerId":"TOT","value":12,"date":"2025-08-01"}`},
	}
	valid := `{"portfolio":"ISA","holding":"Beta","trackerId":"BET","value":1,"date":"2025-08-01"}`
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeRecords(strings.NewReader(valid + "\n" + tt.line + "\n"))
			if !errors.Is(err, ErrMalformedInput) {
				t.Errorf("DecodeRecords() error = %v, want ErrMalformedInput", err)
			}
			if got != nil {
				t.Errorf("DecodeRecords() = %+v, want no records", got)
			}
		})
	}
}
