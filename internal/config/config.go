// Package config defines the data structures related to configuration and
// includes functions for loading and checking the config.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/iwvelando/converter-design/pkg/constants"
	"github.com/iwvelando/converter-design/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for converter-design.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Server  ServerConfig  `yaml:"server,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output configuration options
type OutputConfig struct {
	Format     string `yaml:"format,omitempty"`     // pretty, csv
	ResultsDir string `yaml:"resultsDir,omitempty"` // where the per-topology result logs are appended
}

// ServerConfig holds the design API options
type ServerConfig struct {
	Address       string `yaml:"address,omitempty"`
	MaxUploadSize string `yaml:"maxUploadSize,omitempty"` // e.g. 256K, 1M
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", constants.DefaultLogLevel)
	v.SetDefault("logging.format", constants.DefaultLogFormat)
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("output.resultsDir", constants.DefaultResultsDir)
	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.maxUploadSize", constants.DefaultMaxUploadSize)
}

// Default returns the configuration used when no file is present.
func Default() *Configuration {
	v := viper.New()
	setDefaults(v)
	conf, err := decode(v)
	if err != nil {
		// Defaults are static values that always decode.
		panic(err)
	}
	return conf
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Keys missing from the file take their defaults and
// CONVERTER_DESIGN_* environment variables override both.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix("CONVERTER_DESIGN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadOrDefault loads configPath when it exists. A missing file yields the
// defaults unless required is set.
func LoadOrDefault(configPath string, required bool) (*Configuration, error) {
	if _, err := os.Stat(configPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	return LoadConfiguration(configPath)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// ValidateConfiguration checks the configuration. Hard errors are returned
// as an error; conditions that still allow a run are returned as warnings.
func (c *Configuration) ValidateConfiguration() ([]string, error) {
	var warnings []string
	var report validation.Report

	if err := validation.ValidateOutputFormat(c.Output.Format); err != nil {
		report.Addf("output.format: %v", err)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		report.Addf("logging.level: unsupported level %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		report.Addf("logging.format: unsupported format %q", c.Logging.Format)
	}

	if strings.TrimSpace(c.Server.Address) == "" {
		report.Addf("server.address must not be empty")
	}

	if c.Output.ResultsDir == "" {
		report.Addf("output.resultsDir must not be empty")
	} else if info, err := os.Stat(c.Output.ResultsDir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			warnings = append(warnings, fmt.Sprintf("results directory %s does not exist and will be created on first save", c.Output.ResultsDir))
		} else {
			warnings = append(warnings, fmt.Sprintf("results directory %s is not accessible: %v", c.Output.ResultsDir, err))
		}
	} else if !info.IsDir() {
		report.Addf("output.resultsDir %s is not a directory", c.Output.ResultsDir)
	}

	return warnings, report.Err()
}
