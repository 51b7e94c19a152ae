package holdings

import "testing"

func TestMoney_String(t *testing.T) {
	tests := []struct {
		value    string
		currency string
		want     string
	}{
		{"1234.5", "GBP", "£1,234.50"},
		{"-1234.567", "GBP", "-£1,234.57"},
		{"-1234.5", "GBP", "-£1,234.50"},
		{"-0.05", "GBP", "-£0.05"},
		{"0", "GBP", "£0.00"},
		{"1000000", "GBP", "£1,000,000.00"},
	}
	for _, tt := range tests {
		if got := M(D(tt.value), tt.currency).String(); got != tt.want {
			t.Errorf("M(%s, %s).String() = %q, want %q", tt.value, tt.currency, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		value    string
		fraction int
		want     string
	}{
		{"1234.5", 2, "1,234.50"},
		{"1234.55", 1, "1,234.6"},
		{"-0.5", 2, "-0.50"},
		{"999", 0, "999"},
		{"1234567.891", 2, "1,234,567.89"},
	}
	for _, tt := range tests {
		if got := FormatNumber(D(tt.value), tt.fraction); got != tt.want {
			t.Errorf("FormatNumber(%s, %d) = %q, want %q", tt.value, tt.fraction, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := P(D("25"), D("200")).Fixed(1); got != "12.5%" {
		t.Errorf("P(25, 200).Fixed(1) = %q, want %q", got, "12.5%")
	}
	if got := P(D("-1"), D("3")).String(); got != "-33.33%" {
		t.Errorf("P(-1, 3).String() = %q, want %q", got, "-33.33%")
	}
	if got := P(D("50"), D("0")); !got.IsZero() {
		t.Errorf("P(50, 0) = %v, want 0%%", got)
	}
	if got := P(D("50"), D("-10")); !got.IsZero() {
		t.Errorf("P(50, -10) = %v, want 0%%", got)
	}
}
