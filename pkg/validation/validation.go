// Package validation provides rule-accumulating validation utilities.
//
// A Report collects every violated rule rather than stopping at the first
// one, so a user correcting a design sees all problems at once.
package validation

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/iwvelando/converter-design/pkg/constants"
)

// Report accumulates validation problems.
type Report struct {
	Problems []string
}

// Error is returned when a Report holds at least one problem.
type Error struct {
	Problems []string
}

func (e *Error) Error() string {
	if len(e.Problems) == 1 {
		return "invalid input: " + e.Problems[0]
	}
	return fmt.Sprintf("invalid input (%d problems): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

// Addf records a problem unconditionally.
func (r *Report) Addf(format string, args ...interface{}) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

// Positive records a problem when value is not a finite number strictly
// greater than zero.
func (r *Report) Positive(label string, value float64) {
	if !(value > 0) || math.IsInf(value, 0) {
		r.Addf("%s must be > 0 and finite (got %g)", label, value)
	}
}

// Percent records a problem when value is outside (0, 100].
func (r *Report) Percent(label string, value float64) {
	if !(value > 0 && value <= constants.MaxRipplePercent) || math.IsInf(value, 0) {
		r.Addf("%s must be > 0 and <= %g (got %g)", label, constants.MaxRipplePercent, value)
	}
}

// Finite records a problem when any of the named values is NaN or infinite.
// Labels are reported in sorted order.
func (r *Report) Finite(what string, values map[string]float64) {
	var bad []string
	for label, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			bad = append(bad, label)
		}
	}
	if len(bad) == 0 {
		return
	}
	sort.Strings(bad)
	r.Addf("%s out of range, %s not finite", what, strings.Join(bad, ", "))
}

// Valid reports whether no problems were recorded.
func (r *Report) Valid() bool {
	return len(r.Problems) == 0
}

// Err returns nil for a valid report, otherwise an *Error holding a copy of
// the problems.
func (r *Report) Err() error {
	if r.Valid() {
		return nil
	}
	problems := make([]string, len(r.Problems))
	copy(problems, r.Problems)
	return &Error{Problems: problems}
}

// ValidateOutputFormat checks if the output format is one of the supported formats.
func ValidateOutputFormat(format string) error {
	if format != constants.OutputFormatPretty && format != constants.OutputFormatCSV {
		return fmt.Errorf("expected output format of %s or %s, got %s",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
	return nil
}
