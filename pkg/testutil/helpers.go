// Package testutil provides common utility functions for testing.
package testutil

import (
	"testing"

	"github.com/iwvelando/converter-design/pkg/converter"
)

// Reference returns a known-good requirement for each topology. The values
// match the worked examples used throughout the tests.
func Reference(t converter.Topology) converter.Requirement {
	switch t {
	case converter.Buck:
		return converter.Requirement{
			Topology: converter.Buck, VinMin: 10, VinMax: 14, Vout: 5, Pout: 10,
			FSwitch: 100000, RippleIPercent: 20, RippleVPercent: 2,
		}
	case converter.Boost:
		return converter.Requirement{
			Topology: converter.Boost, VinMin: 5, VinMax: 9, Vout: 12, Pout: 10,
			FSwitch: 100000, RippleIPercent: 20, RippleVPercent: 1,
		}
	case converter.BuckBoost:
		return converter.Requirement{
			Topology: converter.BuckBoost, VinMin: 12, VinMax: 15, Vout: 12, Pout: 24,
			FSwitch: 50000, RippleIPercent: 30, RippleVPercent: 1,
		}
	case converter.Cuk:
		return converter.Requirement{
			Topology: converter.Cuk, VinMin: 12, VinMax: 15, Vout: 24, Pout: 48,
			FSwitch: 100000, RippleI1Percent: 20, RippleI2Percent: 10,
			RippleVPercent: 1, RippleVCnPercent: 5,
		}
	default:
		return converter.Requirement{Topology: t}
	}
}

// MustDesign runs the design pipeline and fails the test on error.
func MustDesign(tb testing.TB, req converter.Requirement) converter.Result {
	tb.Helper()
	res, err := converter.Design(req)
	if err != nil {
		tb.Fatalf("Design(%s) failed: %v", req.Topology, err)
	}
	return res
}
