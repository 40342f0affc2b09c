// Package constants provides shared constants for the converter-design application.
package constants

// Advisory thresholds. These are fixed design heuristics.
const (
	// MaxInductorRipplePercent is the inductor ripple, as a percentage of the
	// average inductor current, above which a larger inductor is advised.
	MaxInductorRipplePercent = 40.0

	// MaxOutputRipplePercent is the output voltage ripple, as a percentage of
	// Vout, above which a larger output capacitor is advised.
	MaxOutputRipplePercent = 5.0

	// MaxCouplingRipplePercent is the Cuk coupling capacitor ripple, as a
	// percentage of Vin, above which a larger Cn is advised.
	MaxCouplingRipplePercent = 10.0

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// MaxRipplePercent is the upper bound accepted for any ripple percentage.
	MaxRipplePercent = 100.0
)

// Result log file names, one per topology.
const (
	BuckLogFile      = "buck_results.txt"
	BoostLogFile     = "boost_results.txt"
	BuckBoostLogFile = "buck_boost_results.txt"
	CukLogFile       = "cuk_results.txt"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultResultsDir is where result logs are appended when nothing else
	// is configured.
	DefaultResultsDir = "."

	// DefaultLogLevel keeps the interactive console free of pipeline traces.
	DefaultLogLevel = "warn"

	// DefaultLogFormat is the encoder used when none is configured.
	DefaultLogFormat = "console"
)

// Server constants
const (
	// DefaultServerAddress is the listen address of the design API.
	DefaultServerAddress = "127.0.0.1:8080"

	// DefaultMaxUploadSize bounds request bodies sent to the design API.
	DefaultMaxUploadSize = "1M"

	// DefaultMaxUploadSizeBytes is DefaultMaxUploadSize in bytes.
	DefaultMaxUploadSizeBytes = 1 << 20
)

// Menu constants
const (
	// MenuItems is the number of menu entries including Exit.
	MenuItems = 5

	// MenuExit is the menu entry that ends the session.
	MenuExit = 5
)
