package format

import (
	"math"
	"testing"
)

func TestSI(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		unit     string
		expected string
	}{
		{"Microhenry", 1.125e-4, "H", "112.5 µH"},
		{"Microfarad", 5e-6, "F", "5 µF"},
		{"Nanofarad", 4.7e-9, "F", "4.7 nF"},
		{"Millihenry", 0.0022, "H", "2.2 mH"},
		{"Unit", 2.5, "Ohm", "2.5 Ohm"},
		{"Kilohertz", 100000, "Hz", "100 kHz"},
		{"Megahertz", 2.2e6, "Hz", "2.2 MHz"},
		{"Negative", -0.015, "A", "-15 mA"},
		{"Below pico", 3e-15, "F", "0.003 pF"},
		{"Above giga", 5e12, "Hz", "5000 GHz"},
		{"Zero", 0, "H", "0 H"},
		{"Rounds up to milli", 9.9996e-4, "H", "1 mH"},
		{"Rounds up to unit", 0.99996, "F", "1 F"},
		{"Negative rounds up", -999.96, "V", "-1 kV"},
		{"Stays below rounding", 9.994e-4, "H", "999.4 µH"},
		{"Rounds past giga", 9.9996e11, "Hz", "1000 GHz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SI(tt.value, tt.unit)
			if got != tt.expected {
				t.Errorf("SI(%v, %s) = %q, expected %q", tt.value, tt.unit, got, tt.expected)
			}
		})
	}
}

func TestSINonFinite(t *testing.T) {
	if got := SI(math.Inf(1), "H"); got != "+Inf H" {
		t.Errorf("SI(+Inf) = %q", got)
	}
	if got := SI(math.NaN(), "F"); got != "NaN F" {
		t.Errorf("SI(NaN) = %q", got)
	}
}
