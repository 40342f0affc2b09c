package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/iwvelando/converter-design/pkg/converter"
	"github.com/iwvelando/converter-design/pkg/testutil"
)

func design(t *testing.T, req converter.Requirement) converter.Result {
	return testutil.MustDesign(t, req)
}

func buck() converter.Requirement {
	return converter.Requirement{
		Topology: converter.Buck, VinMin: 10, VinMax: 14, Vout: 5, Pout: 10,
		FSwitch: 100000, RippleIPercent: 20, RippleVPercent: 2,
	}
}

func boost() converter.Requirement {
	return converter.Requirement{
		Topology: converter.Boost, VinMin: 5, VinMax: 9, Vout: 12, Pout: 10,
		FSwitch: 100000, RippleIPercent: 20, RippleVPercent: 1,
	}
}

func buckBoost() converter.Requirement {
	return converter.Requirement{
		Topology: converter.BuckBoost, VinMin: 12, VinMax: 15, Vout: 12, Pout: 24,
		FSwitch: 50000, RippleIPercent: 30, RippleVPercent: 1,
	}
}

func cuk() converter.Requirement {
	return converter.Requirement{
		Topology: converter.Cuk, VinMin: 12, VinMax: 15, Vout: 24, Pout: 48,
		FSwitch: 100000, RippleI1Percent: 20, RippleI2Percent: 10,
		RippleVPercent: 1, RippleVCnPercent: 5,
	}
}

func TestLogLine(t *testing.T) {
	tests := []struct {
		name     string
		req      converter.Requirement
		expected string
	}{
		{
			name: "Buck",
			req:  buck(),
			expected: "BUCK, Vin_min=10.000, Vin_max=14.000, Vout=5.000, Pout=10.000, f_sw=100000, " +
				"L=1.125000e-04, C=5.000000e-06, R_load=2.500, Iout=2.000, mode=CCM\n",
		},
		{
			name: "Boost",
			req:  boost(),
			expected: "BOOST, Vin_min=5.000, Vin_max=9.000, Vout=12.000, Pout=10.000, f_sw=100000, " +
				"L=7.291667e-05, C=4.050926e-05, R_load=14.400, Iout=0.833, Iin=2.000, mode=CCM\n",
		},
		{
			name: "Buck-boost",
			req:  buckBoost(),
			expected: "BUCK-BOOST, Vin_min=12.000, Vin_max=15.000, |Vout|=12.000, Pout=24.000, f_sw=50000, " +
				"L=1.000000e-04, C=1.666667e-04, R_load=6.000, Iout=2.000, IL_avg=4.000, mode=CCM\n",
		},
		{
			name: "Cuk",
			req:  cuk(),
			expected: "CUK, Vin_min=12.000, Vin_max=15.000, |Vout|=24.000, Pout=48.000, f_sw=100000, " +
				"L1=1.000000e-04, L2=4.000000e-04, Co=1.041667e-06, Cn=1.111111e-05, " +
				"IL1_avg=4.000, IL2_avg=2.000, delta IL1=0.800, delta IL2=0.200, " +
				"IL_peak=4.400, ILB=0.400, mode=CCM\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LogLine(design(t, tt.req))
			if got != tt.expected {
				t.Errorf("LogLine mismatch\n got: %q\nwant: %q", got, tt.expected)
			}
			if strings.Count(got, "\n") != 1 {
				t.Errorf("log line should contain exactly one newline: %q", got)
			}
		})
	}
}

func TestWriteReport(t *testing.T) {
	tests := []struct {
		name     string
		req      converter.Requirement
		contains []string
		absent   []string
	}{
		{
			name: "Buck",
			req:  buck(),
			contains: []string{
				"BUCK DESIGN",
				"100,000 Hz",
				"0.500",
				"2.500 Ohms",
				"1.125000e-04 H",
				"112.5 µH",
				"5.000000e-06 F",
				"2.200 A",
				"CCM",
			},
			absent: []string{"inverting", "L1"},
		},
		{
			name:     "Boost",
			req:      boost(),
			contains: []string{"BOOST DESIGN", "(Iin)", "0.583", "0.833 A"},
		},
		{
			name:     "Buck-boost",
			req:      buckBoost(),
			contains: []string{"BUCK-BOOST DESIGN", "|Vout|", "inverting topology", "4.000 A"},
		},
		{
			name: "Cuk",
			req:  cuk(),
			contains: []string{
				"CUK DESIGN", "inverting topology", "(L1)", "(L2)", "(Co)", "(Cn)",
				"1.041667e-06 F", "% of Vin", "4.400 A",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteReport(&buf, design(t, tt.req)); err != nil {
				t.Fatalf("WriteReport failed: %v", err)
			}
			out := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("report missing %q\n%s", s, out)
				}
			}
			for _, s := range tt.absent {
				if strings.Contains(out, s) {
					t.Errorf("report unexpectedly contains %q", s)
				}
			}
		})
	}
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, bytes.ErrTooLarge
}

func TestWriteReportPropagatesWriteError(t *testing.T) {
	if err := WriteReport(failingWriter{}, design(t, buck())); err == nil {
		t.Error("expected write error")
	}
}

func TestWriteAdvisoriesAndProblems(t *testing.T) {
	var buf bytes.Buffer
	advisories := []converter.Advisory{
		{Kind: converter.AdvisoryDCM, Message: "Converter is in DCM"},
		{Kind: converter.AdvisoryOutputRipple, Message: "Voltage ripple > 5% of Vout"},
	}
	if err := WriteAdvisories(&buf, advisories); err != nil {
		t.Fatalf("WriteAdvisories failed: %v", err)
	}
	expected := "WARNING: Converter is in DCM.\nWARNING: Voltage ripple > 5% of Vout.\n"
	if buf.String() != expected {
		t.Errorf("got %q, expected %q", buf.String(), expected)
	}

	buf.Reset()
	if err := WriteProblems(&buf, []string{"a", "b"}); err != nil {
		t.Fatalf("WriteProblems failed: %v", err)
	}
	if buf.String() != "ERROR: a\nERROR: b\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestCsvFormat(t *testing.T) {
	results := []NamedResult{
		{Name: "step down", Result: design(t, buck())},
		{Name: "cuk, inverting", Result: design(t, cuk())},
	}

	var buf bytes.Buffer
	if err := CsvFormat(&buf, results); err != nil {
		t.Fatalf("CsvFormat failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(records))
	}
	for i, rec := range records {
		if len(rec) != len(csvHeader) {
			t.Errorf("row %d has %d columns, expected %d", i, len(rec), len(csvHeader))
		}
	}

	buckRow := records[1]
	if buckRow[0] != "step down" || buckRow[1] != "buck" {
		t.Errorf("unexpected buck identity columns: %v", buckRow[:2])
	}
	if buckRow[10] != "1.125000e-04" || buckRow[11] != "5.000000e-06" || buckRow[12] != "" {
		t.Errorf("unexpected buck component columns: %v", buckRow[10:16])
	}

	cukRow := records[2]
	if cukRow[0] != "cuk, inverting" {
		t.Errorf("quoted name not preserved: %q", cukRow[0])
	}
	if cukRow[10] != "" || cukRow[12] != "1.000000e-04" || cukRow[15] != "1.111111e-05" {
		t.Errorf("unexpected cuk component columns: %v", cukRow[10:16])
	}
	if cukRow[18] != "CCM" {
		t.Errorf("mode column = %s", cukRow[18])
	}
}
