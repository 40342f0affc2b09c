package output

import (
	"fmt"

	"github.com/iwvelando/converter-design/pkg/converter"
)

// LogLine builds the single result-log record for res, newline included.
// The field set depends on the topology.
func LogLine(res converter.Result) string {
	req := res.Requirement
	switch req.Topology {
	case converter.Buck:
		return fmt.Sprintf("%s, Vin_min=%.3f, Vin_max=%.3f, Vout=%.3f, Pout=%.3f, f_sw=%.0f, "+
			"L=%.6e, C=%.6e, R_load=%.3f, Iout=%.3f, mode=%s\n",
			req.Topology.Tag(), req.VinMin, req.VinMax, req.Vout, req.Pout, req.FSwitch,
			res.L, res.C, res.RLoad, res.IOut, res.Mode())
	case converter.Boost:
		return fmt.Sprintf("%s, Vin_min=%.3f, Vin_max=%.3f, Vout=%.3f, Pout=%.3f, f_sw=%.0f, "+
			"L=%.6e, C=%.6e, R_load=%.3f, Iout=%.3f, Iin=%.3f, mode=%s\n",
			req.Topology.Tag(), req.VinMin, req.VinMax, req.Vout, req.Pout, req.FSwitch,
			res.L, res.C, res.RLoad, res.IOut, res.ILAvg, res.Mode())
	case converter.BuckBoost:
		return fmt.Sprintf("%s, Vin_min=%.3f, Vin_max=%.3f, |Vout|=%.3f, Pout=%.3f, f_sw=%.0f, "+
			"L=%.6e, C=%.6e, R_load=%.3f, Iout=%.3f, IL_avg=%.3f, mode=%s\n",
			req.Topology.Tag(), req.VinMin, req.VinMax, req.Vout, req.Pout, req.FSwitch,
			res.L, res.C, res.RLoad, res.IOut, res.ILAvg, res.Mode())
	case converter.Cuk:
		return fmt.Sprintf("%s, Vin_min=%.3f, Vin_max=%.3f, |Vout|=%.3f, Pout=%.3f, f_sw=%.0f, "+
			"L1=%.6e, L2=%.6e, Co=%.6e, Cn=%.6e, "+
			"IL1_avg=%.3f, IL2_avg=%.3f, delta IL1=%.3f, delta IL2=%.3f, "+
			"IL_peak=%.3f, ILB=%.3f, mode=%s\n",
			req.Topology.Tag(), req.VinMin, req.VinMax, req.Vout, req.Pout, req.FSwitch,
			res.L1, res.L2, res.Co, res.Cn,
			res.IL1Avg, res.IL2Avg, res.DeltaIL1, res.DeltaIL2,
			res.ILPeak, res.ILB, res.Mode())
	default:
		return fmt.Sprintf("%s, mode=%s\n", req.Topology.Tag(), res.Mode())
	}
}
