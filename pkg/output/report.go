// Package output provides utilities for formatting and displaying converter
// designs.
package output

import (
	"fmt"
	"io"

	"github.com/iwvelando/converter-design/pkg/converter"
	"github.com/iwvelando/converter-design/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type reportWriter struct {
	p   *message.Printer
	w   io.Writer
	err error
}

func (rw *reportWriter) printf(format string, args ...interface{}) {
	if rw.err != nil {
		return
	}
	_, rw.err = rw.p.Fprintf(rw.w, format, args...)
}

// row prints one aligned "label (symbol) = value" line.
func (rw *reportWriter) row(label, symbol, value string) {
	if symbol != "" {
		symbol = "(" + symbol + ")"
	}
	rw.printf("%-27s %-12s = %s\n", label, symbol, value)
}

func (rw *reportWriter) component(label, symbol string, value float64, unit string) {
	rw.row(label, symbol, fmt.Sprintf("%.6e %s  [%s]", value, unit, format.SI(value, unit)))
}

// WriteReport renders a human-readable design report.
func WriteReport(w io.Writer, res converter.Result) error {
	rw := &reportWriter{p: message.NewPrinter(language.English), w: w}
	req := res.Requirement
	t := req.Topology

	rw.printf("\n========== %s DESIGN ==========\n", t.Tag())
	rw.printf("Input data:\n")
	rw.row("Minimum input voltage", "Vin min", fmt.Sprintf("%.2f V", req.VinMin))
	rw.row("Maximum input voltage", "Vin max", fmt.Sprintf("%.2f V", req.VinMax))
	if t.Inverting() {
		rw.row("Output voltage magnitude", "|Vout|", fmt.Sprintf("%.2f V", req.Vout))
		rw.printf("Note: actual output voltage is negative (inverting topology).\n")
	} else {
		rw.row("Output voltage", "Vout", fmt.Sprintf("%.2f V", req.Vout))
	}
	rw.row("Output power", "Pout", fmt.Sprintf("%.2f W", req.Pout))
	rw.row("Switching frequency", "fs", rw.p.Sprintf("%.0f Hz", req.FSwitch))

	switch t {
	case converter.Buck:
		rw.row("Current ripple", "", fmt.Sprintf("%.1f %% of Iout", req.RippleIPercent))
		rw.row("Voltage ripple", "", fmt.Sprintf("%.1f %% of Vout", req.RippleVPercent))
	case converter.Cuk:
		rw.row("L1 current ripple", "", fmt.Sprintf("%.1f %% of IL1", req.RippleI1Percent))
		rw.row("L2 current ripple", "", fmt.Sprintf("%.1f %% of IL2", req.RippleI2Percent))
		rw.row("Output voltage ripple", "", fmt.Sprintf("%.1f %% of |Vout|", req.RippleVPercent))
		rw.row("Coupling capacitor ripple", "", fmt.Sprintf("%.1f %% of Vin", req.RippleVCnPercent))
	default:
		rw.row("Inductor ripple", "", fmt.Sprintf("%.1f %% of IL", req.RippleIPercent))
		rw.row("Voltage ripple", "", fmt.Sprintf("%.1f %% of Vout", req.RippleVPercent))
	}

	rw.printf("\nRequired device values and output data:\n")
	rw.row("Duty cycle", "D", fmt.Sprintf("%.3f", res.DutyCycle))
	rw.row("Load resistance", "Rload", fmt.Sprintf("%.3f Ohms", res.RLoad))
	rw.row("Output current", "Iout", fmt.Sprintf("%.3f A", res.IOut))

	switch t {
	case converter.Cuk:
		rw.row("Input inductor avg current", "IL1 avg", fmt.Sprintf("%.3f A", res.IL1Avg))
		rw.row("Output inductor avg current", "IL2 avg", fmt.Sprintf("%.3f A", res.IL2Avg))
		rw.row("L1 current ripple", "delta IL1", fmt.Sprintf("%.3f A", res.DeltaIL1))
		rw.row("L2 current ripple", "delta IL2", fmt.Sprintf("%.3f A", res.DeltaIL2))
		rw.component("Inductor L1", "L1", res.L1, "H")
		rw.component("Inductor L2", "L2", res.L2, "H")
		rw.component("Output capacitor", "Co", res.Co, "F")
		rw.component("Coupling capacitor", "Cn", res.Cn, "F")
	default:
		switch t {
		case converter.Boost:
			rw.row("Input current (IL avg)", "Iin", fmt.Sprintf("%.3f A", res.ILAvg))
		case converter.BuckBoost:
			rw.row("Inductor current", "IL", fmt.Sprintf("%.3f A", res.ILAvg))
		}
		rw.row("Inductor current ripple", "delta IL", fmt.Sprintf("%.3f A", res.RippleIL))
		rw.component("Inductor", "L", res.L, "H")
		rw.component("Capacitor", "C", res.C, "F")
	}

	rw.row("Inductor peak current", "IL peak", fmt.Sprintf("%.3f A", res.ILPeak))
	rw.row("Boundary inductor current", "ILB", fmt.Sprintf("%.3f A", res.ILB))
	rw.row("Mode", "", res.Mode())
	return rw.err
}

// WriteAdvisories renders one WARNING line per advisory.
func WriteAdvisories(w io.Writer, advisories []converter.Advisory) error {
	for _, a := range advisories {
		if _, err := fmt.Fprintf(w, "WARNING: %s.\n", a.Message); err != nil {
			return err
		}
	}
	return nil
}

// WriteProblems renders one ERROR line per validation problem.
func WriteProblems(w io.Writer, problems []string) error {
	for _, p := range problems {
		if _, err := fmt.Fprintf(w, "ERROR: %s\n", p); err != nil {
			return err
		}
	}
	return nil
}
