// =============================================================================
// YPBank Transaction Tools - Configuration Module
// =============================================================================
//
// This module loads the optional ypbank.yaml file. Every setting has a
// default, so the tools run without any configuration file at all.
//
// EXAMPLE (ypbank.yaml):
//
//   log_level: info           # debug | info | warn | error
//   log_format: text          # text | json
//   log_file: ""              # empty writes diagnostics to stderr
//   csv:
//     header_check: positional  # positional | strict
//   report:
//     sheet_first: First
//     sheet_second: Second
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "ypbank.yaml"

// Header check strategies for CSV input.
const (
	HeaderCheckPositional = "positional"
	HeaderCheckStrict     = "strict"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of diagnostics.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// LogFormat selects the slog handler.
	// Valid values: "text", "json"
	// Default: "text"
	LogFormat string `yaml:"log_format"`

	// LogFile is the path diagnostics are appended to. Empty means stderr.
	LogFile string `yaml:"log_file"`

	// =========================================================================
	// FORMAT SETTINGS
	// =========================================================================

	CSV CSVSettings `yaml:"csv"`

	Report ReportSettings `yaml:"report"`
}

// CSVSettings tunes CSV decoding.
type CSVSettings struct {
	// HeaderCheck selects how the header row is verified.
	//   positional: the parsed columns must match in order (default)
	//   strict:     the trimmed header line must match exactly
	HeaderCheck string `yaml:"header_check"`
}

// ReportSettings names the record sheets of the comparison workbook.
type ReportSettings struct {
	SheetFirst  string `yaml:"sheet_first"`
	SheetSecond string `yaml:"sheet_second"`
}

// StrictCSVHeader reports whether the strict CSV header check is selected.
func (c *Config) StrictCSVHeader() bool {
	return c.CSV.HeaderCheck == HeaderCheckStrict
}

// =============================================================================
// LOADING FUNCTIONS
// =============================================================================

// Default returns a configuration with every default applied.
func Default() *Config {
	var config Config
	applyDefaults(&config)
	return &config
}

// Load reads the configuration file at path.
//
// PARAMETERS:
//   - path: The path to the YAML file.
//   - required: When false a missing file yields the defaults.
//
// RETURNS:
//   - A pointer to the Config with defaults applied.
//   - An error if the file cannot be read or parsed, or a value is invalid.
func Load(path string, required bool) (*Config, error) {
	// Read the configuration file.
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse the YAML.
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply default values.
	applyDefaults(&config)

	// Validate the configuration.
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// applyDefaults fills in default values for missing settings.
func applyDefaults(config *Config) {
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "text"
	}
	if config.CSV.HeaderCheck == "" {
		config.CSV.HeaderCheck = HeaderCheckPositional
	}
	if config.Report.SheetFirst == "" {
		config.Report.SheetFirst = "First"
	}
	if config.Report.SheetSecond == "" {
		config.Report.SheetSecond = "Second"
	}
}

// validate checks enumerated settings.
func validate(config *Config) error {
	switch config.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", config.LogLevel)
	}

	switch config.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log_format %q", config.LogFormat)
	}

	switch config.CSV.HeaderCheck {
	case HeaderCheckPositional, HeaderCheckStrict:
	default:
		return fmt.Errorf("invalid csv.header_check %q", config.CSV.HeaderCheck)
	}

	if config.Report.SheetFirst == config.Report.SheetSecond {
		return fmt.Errorf("report.sheet_first and report.sheet_second must differ, both are %q", config.Report.SheetFirst)
	}

	return nil
}
