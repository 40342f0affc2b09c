package mathutil

import (
	"math"
	"testing"
)

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		a, b, tol float64
		expected  bool
	}{
		{"Equal", 1.5, 1.5, 0, true},
		{"Inside", 1.0, 1.05, 0.1, true},
		{"Edge", 1.0, 1.5, 0.5, true},
		{"Outside", 1.0, 1.2, 0.1, false},
		{"Negative", -2.0, -2.01, 0.05, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinTolerance(tt.a, tt.b, tt.tol); got != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.tol, got, tt.expected)
			}
		})
	}
}

func TestWithinRelative(t *testing.T) {
	tests := []struct {
		name     string
		a, b     float64
		fraction float64
		expected bool
	}{
		{"Both zero", 0, 0, 1e-9, true},
		{"Microhenries", 1.125e-4, 1.1250001e-4, 1e-6, true},
		{"Microhenries off", 1.125e-4, 1.13e-4, 1e-3, false},
		{"Scale independent", 1.0e6, 1.0000001e6, 1e-6, true},
		{"Zero against small", 0, 1e-12, 1e-3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WithinRelative(tt.a, tt.b, tt.fraction); got != tt.expected {
				t.Errorf("WithinRelative(%v, %v, %v) = %v, expected %v", tt.a, tt.b, tt.fraction, got, tt.expected)
			}
		})
	}
}

func TestMax(t *testing.T) {
	if Max(1, 2) != 2 || Max(2, 1) != 2 || Max(-1, -3) != -1 {
		t.Error("Max returned the wrong operand")
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		value, percentage, expected float64
	}{
		{2, 20, 0.4},
		{5, 2, 0.1},
		{100, 100, 100},
		{7, 0, 0},
	}
	for _, tt := range tests {
		got := ApplyPercentage(tt.value, tt.percentage)
		if math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v", tt.value, tt.percentage, got, tt.expected)
		}
	}
}
