package converter

import (
	"github.com/iwvelando/converter-design/pkg/constants"
	"github.com/iwvelando/converter-design/pkg/mathutil"
)

// calculateBuck sizes a step-down converter. The duty cycle is taken at
// VinMin while the inductor is sized at VinMax, where ripple is largest.
func calculateBuck(req Requirement) Calculation {
	var c Calculation
	c.DutyCycle = req.Vout / req.VinMin
	c.RLoad = (req.Vout * req.Vout) / req.Pout
	c.IOut = req.Vout / c.RLoad
	c.ILAvg = c.IOut
	c.RippleIL = mathutil.ApplyPercentage(c.IOut, req.RippleIPercent)
	c.L = (req.VinMax - req.Vout) * c.DutyCycle / (req.FSwitch * c.RippleIL)
	c.RippleVC = mathutil.ApplyPercentage(req.Vout, req.RippleVPercent)
	c.C = c.RippleIL / (8.0 * req.FSwitch * c.RippleVC)
	return c
}

func analyseBuck(c Calculation) (float64, float64, []Advisory) {
	var advisories []Advisory
	if c.RippleIL > mathutil.ApplyPercentage(c.IOut, constants.MaxInductorRipplePercent) {
		advisories = append(advisories, inductorRippleAdvisory("Inductor ripple > 40% of Iout, consider using a higher inductance inductor"))
	}
	if c.Requirement.RippleVPercent > constants.MaxOutputRipplePercent {
		advisories = append(advisories, outputRippleAdvisory("Voltage ripple > 5% of Vout, consider using a higher capacitance capacitor"))
	}
	return c.IOut, c.RippleIL, advisories
}

func inductorRippleAdvisory(msg string) Advisory {
	return Advisory{Kind: AdvisoryInductorRipple, Message: msg}
}

func outputRippleAdvisory(msg string) Advisory {
	return Advisory{Kind: AdvisoryOutputRipple, Message: msg}
}
