package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/iwvelando/converter-design/pkg/converter"
)

// NamedResult pairs a design result with the name it was requested under.
type NamedResult struct {
	Name   string
	Result converter.Result
}

var csvHeader = []string{
	"name", "topology", "vin_min", "vin_max", "vout", "pout", "f_sw",
	"duty_cycle", "r_load", "iout",
	"L", "C", "L1", "L2", "Co", "Cn",
	"il_peak", "ilb", "mode",
}

// CsvFormat writes one comma-separated row per result. Component columns
// that do not apply to a topology are left empty.
func CsvFormat(w io.Writer, results []NamedResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	num := func(v float64, prec int) string {
		return strconv.FormatFloat(v, 'f', prec, 64)
	}
	sci := func(v float64) string {
		return strconv.FormatFloat(v, 'e', 6, 64)
	}

	for _, nr := range results {
		res := nr.Result
		req := res.Requirement
		row := []string{
			nr.Name, req.Topology.String(),
			num(req.VinMin, 3), num(req.VinMax, 3), num(req.Vout, 3), num(req.Pout, 3), num(req.FSwitch, 0),
			num(res.DutyCycle, 4), num(res.RLoad, 3), num(res.IOut, 3),
			"", "", "", "", "", "",
			num(res.ILPeak, 3), num(res.ILB, 3), res.Mode(),
		}
		if req.Topology == converter.Cuk {
			row[12], row[13], row[14], row[15] = sci(res.L1), sci(res.L2), sci(res.Co), sci(res.Cn)
		} else {
			row[10], row[11] = sci(res.L), sci(res.C)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
