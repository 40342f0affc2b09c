package converter

import (
	"github.com/iwvelando/converter-design/pkg/constants"
	"github.com/iwvelando/converter-design/pkg/mathutil"
)

// calculateBoost sizes a step-up converter at VinMin, where both the duty
// cycle and the input current are largest.
func calculateBoost(req Requirement) Calculation {
	var c Calculation
	c.DutyCycle = 1.0 - req.VinMin/req.Vout
	c.RLoad = (req.Vout * req.Vout) / req.Pout
	c.IOut = req.Pout / req.Vout
	c.ILAvg = req.Pout / req.VinMin
	c.RippleIL = req.RippleIPercent * c.ILAvg / constants.PercentageMultiplier
	c.L = req.VinMin * c.DutyCycle / (c.RippleIL * req.FSwitch)
	c.RippleVC = mathutil.ApplyPercentage(req.Vout, req.RippleVPercent)
	c.C = (c.IOut * c.DutyCycle) / (req.FSwitch * c.RippleVC)
	return c
}

func analyseBoost(c Calculation) (float64, float64, []Advisory) {
	var advisories []Advisory
	if c.Requirement.RippleIPercent > constants.MaxInductorRipplePercent {
		advisories = append(advisories, inductorRippleAdvisory("Inductor ripple > 40% of IL, consider increasing L"))
	}
	if c.Requirement.RippleVPercent > constants.MaxOutputRipplePercent {
		advisories = append(advisories, outputRippleAdvisory("Voltage ripple > 5% of Vout, consider increasing C"))
	}
	return c.ILAvg, c.RippleIL, advisories
}
