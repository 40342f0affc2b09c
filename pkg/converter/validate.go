package converter

import (
	"github.com/iwvelando/converter-design/pkg/validation"
)

// Validate checks req against the rules shared by every topology and the
// step-ratio rules of its own topology. Every violated rule is reported; the
// returned error is a *validation.Error listing them.
func Validate(req Requirement) error {
	var report validation.Report

	m, ok := models[req.Topology]
	if !ok {
		report.Addf("%s: %s", ErrUnknownTopology, req.Topology)
		return report.Err()
	}

	validateShared(&report, req)
	m.validate(&report, req)
	return report.Err()
}

func validateShared(r *validation.Report, req Requirement) {
	r.Positive("minimum input voltage", req.VinMin)
	r.Positive("maximum input voltage", req.VinMax)
	r.Positive("output voltage", req.Vout)
	if req.VinMin > req.VinMax {
		r.Addf("minimum input voltage must be <= maximum input voltage (%g > %g)", req.VinMin, req.VinMax)
	}
	r.Positive("output power", req.Pout)
	r.Positive("switching frequency", req.FSwitch)
}

func validateBuck(r *validation.Report, req Requirement) {
	if req.Vout >= req.VinMin {
		r.Addf("buck converter is step-down, output voltage must be < minimum input voltage (%g >= %g)", req.Vout, req.VinMin)
	}
	r.Percent("inductor current ripple percentage", req.RippleIPercent)
	r.Percent("output voltage ripple percentage", req.RippleVPercent)
}

func validateBoost(r *validation.Report, req Requirement) {
	if req.Vout <= req.VinMax {
		r.Addf("boost converter is step-up, output voltage must be > maximum input voltage (%g <= %g)", req.Vout, req.VinMax)
	}
	r.Percent("inductor current ripple percentage", req.RippleIPercent)
	r.Percent("output voltage ripple percentage", req.RippleVPercent)
}

// Buck-boost steps up or down, so there is no ratio rule.
func validateBuckBoost(r *validation.Report, req Requirement) {
	r.Percent("inductor current ripple percentage", req.RippleIPercent)
	r.Percent("output voltage ripple percentage", req.RippleVPercent)
}

func validateCuk(r *validation.Report, req Requirement) {
	r.Percent("L1 current ripple percentage", req.RippleI1Percent)
	r.Percent("L2 current ripple percentage", req.RippleI2Percent)
	r.Percent("output voltage ripple percentage", req.RippleVPercent)
	r.Percent("Cn voltage ripple percentage", req.RippleVCnPercent)
}
