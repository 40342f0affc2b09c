// Package converter sizes the passive components of buck, boost, buck-boost
// and Cuk DC-DC converters from their steady-state equations and classifies
// the resulting conduction mode.
//
// Each topology is a pipeline of three pure stages:
//
//	Validate -> Calculate -> Analyse
//
// Calculate only accepts a requirement that passes Validate, and Analyse is
// only defined on a Calculation produced by Calculate, so a Result always
// derives entirely from one validated Requirement.
package converter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/iwvelando/converter-design/pkg/validation"
)

var (
	// ErrUnknownTopology is returned for a topology tag outside the four
	// supported converters.
	ErrUnknownTopology = errors.New("unknown converter topology")

	// ErrNotCalculated is returned when Analyse is called on a Calculation
	// that was not produced by Calculate.
	ErrNotCalculated = errors.New("calculation stage has not run")
)

// Topology identifies a converter circuit.
type Topology int

// Supported topologies, in menu order.
const (
	Buck Topology = iota
	Boost
	BuckBoost
	Cuk
)

// Topologies lists every supported topology in menu order.
var Topologies = []Topology{Buck, Boost, BuckBoost, Cuk}

func (t Topology) String() string {
	switch t {
	case Buck:
		return "buck"
	case Boost:
		return "boost"
	case BuckBoost:
		return "buck-boost"
	case Cuk:
		return "cuk"
	default:
		return fmt.Sprintf("topology(%d)", int(t))
	}
}

// Title is the human-readable converter name.
func (t Topology) Title() string {
	switch t {
	case Buck:
		return "Buck Converter"
	case Boost:
		return "Boost Converter"
	case BuckBoost:
		return "Buck Boost Converter"
	case Cuk:
		return "Cuk Converter"
	default:
		return t.String()
	}
}

// Tag is the upper-case label written at the start of each result log line.
func (t Topology) Tag() string {
	return strings.ToUpper(t.String())
}

// Inverting reports whether the real output voltage is negative with
// respect to the input. Vout is always handled as a magnitude.
func (t Topology) Inverting() bool {
	return t == BuckBoost || t == Cuk
}

// Valid reports whether t is one of the supported topologies.
func (t Topology) Valid() bool {
	_, ok := models[t]
	return ok
}

// ParseTopology converts a name such as "buck", "Buck-Boost" or "cuk" into a
// Topology. Underscores and spaces are accepted in place of the hyphen.
func ParseTopology(name string) (Topology, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("_", "-", " ", "-").Replace(normalized)
	switch normalized {
	case "buck":
		return Buck, nil
	case "boost":
		return Boost, nil
	case "buck-boost", "buckboost":
		return BuckBoost, nil
	case "cuk", "ćuk":
		return Cuk, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTopology, name)
}

// Requirement holds the operating requirements for one design. Vout is the
// output voltage magnitude for every topology.
//
// RippleIPercent applies to the single-inductor topologies. The Cuk
// converter uses RippleI1Percent and RippleI2Percent for its input and
// output inductors plus RippleVCnPercent for the coupling capacitor.
type Requirement struct {
	Topology         Topology `yaml:"-"`
	VinMin           float64  `yaml:"vinMin"`
	VinMax           float64  `yaml:"vinMax"`
	Vout             float64  `yaml:"vout"`
	Pout             float64  `yaml:"pout"`
	FSwitch          float64  `yaml:"fSwitch"`
	RippleIPercent   float64  `yaml:"rippleIPercent,omitempty"`
	RippleI1Percent  float64  `yaml:"rippleI1Percent,omitempty"`
	RippleI2Percent  float64  `yaml:"rippleI2Percent,omitempty"`
	RippleVPercent   float64  `yaml:"rippleVPercent"`
	RippleVCnPercent float64  `yaml:"rippleVCnPercent,omitempty"`
}

// Calculation holds the component values computed from a Requirement.
//
// Single-inductor topologies fill ILAvg, RippleIL, RippleVC, L and C. The
// Cuk converter fills IL1Avg, IL2Avg, DeltaIL1, DeltaIL2, RippleVC (output
// ripple), DeltaVCn, L1, L2, Co and Cn.
type Calculation struct {
	Requirement Requirement

	DutyCycle float64
	RLoad     float64
	IOut      float64

	ILAvg    float64
	RippleIL float64
	RippleVC float64
	L        float64
	C        float64

	IL1Avg   float64
	IL2Avg   float64
	DeltaIL1 float64
	DeltaIL2 float64
	DeltaVCn float64
	L1       float64
	L2       float64
	Co       float64
	Cn       float64

	calculated bool
}

// Result is a fully analysed design.
type Result struct {
	Calculation

	// ILPeak is the worst-case peak inductor current.
	ILPeak float64
	// ILB is the boundary current: an average inductor current at or below
	// it means discontinuous conduction.
	ILB float64
	// CCM is true in continuous conduction mode.
	CCM bool

	Advisories []Advisory
}

// Mode returns "CCM" or "DCM".
func (r Result) Mode() string {
	if r.CCM {
		return "CCM"
	}
	return "DCM"
}

// AdvisoryKind classifies an Advisory.
type AdvisoryKind string

// Advisory kinds.
const (
	AdvisoryDCM            AdvisoryKind = "dcm"
	AdvisoryInductorRipple AdvisoryKind = "inductor-ripple"
	AdvisoryOutputRipple   AdvisoryKind = "output-ripple"
	AdvisoryCouplingRipple AdvisoryKind = "coupling-ripple"
)

// Advisory is a non-fatal design warning. Advisories never change the
// computed values.
type Advisory struct {
	Kind    AdvisoryKind
	Message string
}

// HasAdvisory reports whether the result carries an advisory of kind.
func (r Result) HasAdvisory(kind AdvisoryKind) bool {
	for _, a := range r.Advisories {
		if a.Kind == kind {
			return true
		}
	}
	return false
}

// model is the per-topology strategy.
type model struct {
	validate  func(r *validation.Report, req Requirement)
	calculate func(req Requirement) Calculation
	// analyse returns the relevant average inductor current, the worst-case
	// ripple current and any ripple advisories.
	analyse func(c Calculation) (average, ripple float64, advisories []Advisory)
	dcm     string
}

var models = map[Topology]model{
	Buck: {
		validate:  validateBuck,
		calculate: calculateBuck,
		analyse:   analyseBuck,
		dcm:       "Converter is in DCM",
	},
	Boost: {
		validate:  validateBoost,
		calculate: calculateBoost,
		analyse:   analyseBoost,
		dcm:       "Converter is in DCM at rated load (IL avg <= delta IL/2)",
	},
	BuckBoost: {
		validate:  validateBuckBoost,
		calculate: calculateBuckBoost,
		analyse:   analyseBuckBoost,
		dcm:       "Converter is in DCM at rated load",
	},
	Cuk: {
		validate:  validateCuk,
		calculate: calculateCuk,
		analyse:   analyseCuk,
		dcm:       "Cuk converter may operate in DCM at rated load (IL <= delta IL/2)",
	},
}

// Calculate validates req and computes its component values.
func Calculate(req Requirement) (Calculation, error) {
	if err := Validate(req); err != nil {
		return Calculation{}, err
	}
	c := models[req.Topology].calculate(req)
	if err := c.checkFinite(); err != nil {
		return Calculation{}, err
	}
	c.Requirement = req
	c.calculated = true
	return c, nil
}

// checkFinite rejects calculations whose inputs were individually valid but
// whose derived values overflowed, e.g. an output voltage so large that its
// square is infinite.
func (c Calculation) checkFinite() error {
	var r validation.Report
	r.Finite("requirement values", map[string]float64{
		"duty cycle": c.DutyCycle, "load resistance": c.RLoad, "output current": c.IOut,
		"L": c.L, "C": c.C, "L1": c.L1, "L2": c.L2, "Co": c.Co, "Cn": c.Cn,
		"IL": c.ILAvg, "IL1": c.IL1Avg, "IL2": c.IL2Avg,
		"delta IL": c.RippleIL, "delta IL1": c.DeltaIL1, "delta IL2": c.DeltaIL2,
		"delta VC": c.RippleVC, "delta VCn": c.DeltaVCn,
	})
	return r.Err()
}

// Analyse derives the boundary current, peak current, conduction mode and
// advisories for a completed calculation.
func (c Calculation) Analyse() (Result, error) {
	if !c.calculated {
		return Result{}, ErrNotCalculated
	}
	m := models[c.Requirement.Topology]
	average, ripple, advisories := m.analyse(c)

	res := Result{
		Calculation: c,
		ILB:         ripple / 2.0,
		ILPeak:      average + ripple/2.0,
	}
	res.CCM = average > res.ILB
	if !res.CCM {
		res.Advisories = append(res.Advisories, Advisory{Kind: AdvisoryDCM, Message: m.dcm})
	}
	res.Advisories = append(res.Advisories, advisories...)
	return res, nil
}

// Design runs the whole pipeline for req.
func Design(req Requirement) (Result, error) {
	c, err := Calculate(req)
	if err != nil {
		return Result{}, err
	}
	return c.Analyse()
}
