package converter

import (
	"github.com/iwvelando/converter-design/pkg/constants"
	"github.com/iwvelando/converter-design/pkg/mathutil"
)

// calculateCuk sizes an inverting Cuk converter with input inductor L1,
// output inductor L2, coupling capacitor Cn and output capacitor Co. All
// quantities are taken at VinMin.
func calculateCuk(req Requirement) Calculation {
	var c Calculation
	c.DutyCycle = req.Vout / (req.VinMin + req.Vout)
	c.RLoad = (req.Vout * req.Vout) / req.Pout
	c.IOut = req.Pout / req.Vout

	c.IL1Avg = req.Pout / req.VinMin
	c.IL2Avg = c.IOut
	c.DeltaIL1 = c.IL1Avg * req.RippleI1Percent / constants.PercentageMultiplier
	c.DeltaIL2 = c.IL2Avg * req.RippleI2Percent / constants.PercentageMultiplier
	c.RippleVC = req.Vout * req.RippleVPercent / constants.PercentageMultiplier
	c.DeltaVCn = req.VinMin * req.RippleVCnPercent / constants.PercentageMultiplier

	c.L1 = (req.VinMin * c.DutyCycle) / (req.FSwitch * c.DeltaIL1)
	c.L2 = (req.Vout * (1.0 - c.DutyCycle)) / (req.FSwitch * c.DeltaIL2)
	c.Co = req.Vout * (1.0 - c.DutyCycle) / (8.0 * req.FSwitch * req.FSwitch * c.RippleVC * c.L2)
	c.Cn = (c.IOut * (1.0 - c.DutyCycle)) / (req.FSwitch * c.DeltaVCn)
	return c
}

// analyseCuk classifies the mode on the inductor with the larger average
// current against the larger of the two ripples. The ripple advisories
// check each inductor on its own.
func analyseCuk(c Calculation) (float64, float64, []Advisory) {
	req := c.Requirement
	var advisories []Advisory
	if req.RippleI1Percent > constants.MaxInductorRipplePercent || req.RippleI2Percent > constants.MaxInductorRipplePercent {
		advisories = append(advisories, inductorRippleAdvisory("Inductor current ripple > 40% of average for at least one inductor, consider increasing L1 and/or L2"))
	}
	if req.RippleVPercent > constants.MaxOutputRipplePercent {
		advisories = append(advisories, outputRippleAdvisory("Output voltage ripple > 5% of |Vout|, consider increasing Co"))
	}
	if req.RippleVCnPercent > constants.MaxCouplingRipplePercent {
		advisories = append(advisories, Advisory{
			Kind:    AdvisoryCouplingRipple,
			Message: "Cn voltage ripple > 10% of Vin, consider increasing Cn",
		})
	}
	return mathutil.Max(c.IL1Avg, c.IL2Avg), mathutil.Max(c.DeltaIL1, c.DeltaIL2), advisories
}
