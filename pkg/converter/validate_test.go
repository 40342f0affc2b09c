package converter

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/iwvelando/converter-design/pkg/validation"
)

func problemsOf(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		return nil
	}
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *validation.Error, got %T: %v", err, err)
	}
	return verr.Problems
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name           string
		base           func() Requirement
		mutate         func(r *Requirement)
		expectProblems int
		contains       string
	}{
		{"Buck valid", buckRequirement, func(r *Requirement) {}, 0, ""},
		{"Boost valid", boostRequirement, func(r *Requirement) {}, 0, ""},
		{"Buck-boost valid", buckBoostRequirement, func(r *Requirement) {}, 0, ""},
		{"Cuk valid", cukRequirement, func(r *Requirement) {}, 0, ""},

		{"Zero minimum input", buckBoostRequirement, func(r *Requirement) { r.VinMin = 0 }, 1, "minimum input voltage must be > 0"},
		{"Negative output voltage", buckBoostRequirement, func(r *Requirement) { r.Vout = -5 }, 1, "output voltage must be > 0"},
		{"Zero power", cukRequirement, func(r *Requirement) { r.Pout = 0 }, 1, "output power"},
		{"Negative frequency", boostRequirement, func(r *Requirement) { r.FSwitch = -1 }, 1, "switching frequency"},
		{"Inverted input range", buckBoostRequirement, func(r *Requirement) { r.VinMin = 20 }, 1, "minimum input voltage must be <= maximum"},
		{"Equal input range", buckBoostRequirement, func(r *Requirement) { r.VinMin = r.VinMax }, 0, ""},

		{"Infinite maximum input", buckRequirement, func(r *Requirement) { r.VinMax = math.Inf(1) }, 1, "maximum input voltage must be > 0 and finite"},
		{"Infinite power", buckRequirement, func(r *Requirement) { r.Pout = math.Inf(1) }, 1, "output power must be > 0 and finite"},
		{"Infinite frequency", cukRequirement, func(r *Requirement) { r.FSwitch = math.Inf(1) }, 1, "switching frequency must be > 0 and finite"},
		{"Negative infinite output", buckBoostRequirement, func(r *Requirement) { r.Vout = math.Inf(-1) }, 1, "output voltage"},
		{"NaN minimum input", boostRequirement, func(r *Requirement) { r.VinMin = math.NaN() }, 1, "minimum input voltage"},
		{"Infinite ripple", buckBoostRequirement, func(r *Requirement) { r.RippleIPercent = math.Inf(1) }, 1, "inductor current ripple"},

		{"Ripple zero", buckRequirement, func(r *Requirement) { r.RippleIPercent = 0 }, 1, "inductor current ripple"},
		{"Ripple over 100", boostRequirement, func(r *Requirement) { r.RippleVPercent = 100.5 }, 1, "output voltage ripple"},
		{"Ripple exactly 100", buckRequirement, func(r *Requirement) { r.RippleIPercent = 100 }, 0, ""},
		{"Cuk L1 ripple missing", cukRequirement, func(r *Requirement) { r.RippleI1Percent = 0 }, 1, "L1 current ripple"},
		{"Cuk L2 ripple negative", cukRequirement, func(r *Requirement) { r.RippleI2Percent = -3 }, 1, "L2 current ripple"},
		{"Cuk Cn ripple too high", cukRequirement, func(r *Requirement) { r.RippleVCnPercent = 150 }, 1, "Cn voltage ripple"},
		{"Cuk ignores general ripple", cukRequirement, func(r *Requirement) { r.RippleIPercent = 0 }, 0, ""},

		{"Buck output equals minimum input", buckRequirement, func(r *Requirement) { r.Vout = r.VinMin }, 1, "step-down"},
		{"Buck output above minimum input", buckRequirement, func(r *Requirement) { r.Vout = 12 }, 1, "step-down"},
		{"Boost output equals maximum input", boostRequirement, func(r *Requirement) { r.Vout = r.VinMax }, 1, "step-up"},
		{"Boost output below maximum input", boostRequirement, func(r *Requirement) { r.Vout = 7 }, 1, "step-up"},
		{"Buck-boost steps up freely", buckBoostRequirement, func(r *Requirement) { r.Vout = 400 }, 0, ""},
		{"Buck-boost steps down freely", buckBoostRequirement, func(r *Requirement) { r.Vout = 0.5 }, 0, ""},
		{"Cuk steps up freely", cukRequirement, func(r *Requirement) { r.Vout = 400 }, 0, ""},
		{"Cuk steps down freely", cukRequirement, func(r *Requirement) { r.Vout = 0.5 }, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.base()
			tt.mutate(&req)
			problems := problemsOf(t, Validate(req))
			if len(problems) != tt.expectProblems {
				t.Fatalf("expected %d problems, got %d: %v", tt.expectProblems, len(problems), problems)
			}
			if tt.contains != "" && !strings.Contains(strings.Join(problems, "\n"), tt.contains) {
				t.Errorf("problems %v do not mention %q", problems, tt.contains)
			}
		})
	}
}

func TestValidateReportsEveryViolation(t *testing.T) {
	req := Requirement{
		Topology:       Buck,
		VinMin:         -1,
		VinMax:         -2,
		Vout:           0,
		Pout:           0,
		FSwitch:        0,
		RippleIPercent: 0,
		RippleVPercent: 200,
	}

	problems := problemsOf(t, Validate(req))
	// three voltages, inverted range, power, frequency, step-down, two ripples
	if len(problems) != 9 {
		t.Errorf("expected 9 problems, got %d:\n%s", len(problems), strings.Join(problems, "\n"))
	}
}

func TestValidateUnknownTopology(t *testing.T) {
	req := buckRequirement()
	req.Topology = Topology(42)

	problems := problemsOf(t, Validate(req))
	if len(problems) != 1 || !strings.Contains(problems[0], "unknown converter topology") {
		t.Errorf("unexpected problems: %v", problems)
	}
}
