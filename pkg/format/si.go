// Package format renders physical quantities for people.
package format

import (
	"fmt"
	"math"
	"strconv"
)

var prefixes = []struct {
	exp    int
	symbol string
}{
	{-12, "p"},
	{-9, "n"},
	{-6, "µ"},
	{-3, "m"},
	{0, ""},
	{3, "k"},
	{6, "M"},
	{9, "G"},
}

// SI returns value with an engineering prefix and unit (e.g., 0.0001125 H
// becomes "112.5 µH"). Values outside the pico to giga range keep the
// nearest prefix.
func SI(value float64, unit string) string {
	if value == 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Sprintf("%g %s", value, unit)
	}

	exp := int(math.Floor(math.Log10(math.Abs(value))/3)) * 3
	idx := 0
	for i, p := range prefixes {
		if p.exp <= exp {
			idx = i
		}
	}
	mantissa := value / math.Pow(10, float64(prefixes[idx].exp))

	// 999.96 rounds to 1000 at four significant digits, which belongs to
	// the next prefix up.
	if rounded, err := strconv.ParseFloat(fmt.Sprintf("%.4g", mantissa), 64); err == nil &&
		math.Abs(rounded) >= 1000 && idx < len(prefixes)-1 {
		idx++
		mantissa = value / math.Pow(10, float64(prefixes[idx].exp))
	}

	p := prefixes[idx]
	return fmt.Sprintf("%.4g %s%s", mantissa, p.symbol, unit)
}
