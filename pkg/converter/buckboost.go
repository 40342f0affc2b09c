package converter

import (
	"github.com/iwvelando/converter-design/pkg/constants"
	"github.com/iwvelando/converter-design/pkg/mathutil"
)

// calculateBuckBoost sizes an inverting buck-boost converter. Vout is the
// magnitude of the (negative) output voltage.
func calculateBuckBoost(req Requirement) Calculation {
	var c Calculation
	c.DutyCycle = req.Vout / (req.VinMin + req.Vout)
	c.IOut = req.Pout / req.Vout
	c.RLoad = (req.Vout * req.Vout) / req.Pout
	c.ILAvg = c.IOut / (1.0 - c.DutyCycle)
	c.RippleIL = mathutil.ApplyPercentage(c.ILAvg, req.RippleIPercent)
	c.L = req.VinMin * c.DutyCycle / (req.FSwitch * c.RippleIL)
	c.RippleVC = mathutil.ApplyPercentage(req.Vout, req.RippleVPercent)
	c.C = c.IOut * c.DutyCycle / (c.RippleVC * req.FSwitch)
	return c
}

func analyseBuckBoost(c Calculation) (float64, float64, []Advisory) {
	var advisories []Advisory
	if c.Requirement.RippleIPercent > constants.MaxInductorRipplePercent {
		advisories = append(advisories, inductorRippleAdvisory("Inductor ripple > 40% of IL, consider increasing L"))
	}
	if c.Requirement.RippleVPercent > constants.MaxOutputRipplePercent {
		advisories = append(advisories, outputRippleAdvisory("Voltage ripple > 5% of |Vout|, consider increasing C"))
	}
	return c.ILAvg, c.RippleIL, advisories
}
