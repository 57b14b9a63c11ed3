// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rename option values, as accepted by --rename
const (
	RenameYes = "yes"
	RenameNo  = "no"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Dir         string `json:"dir,omitempty" yaml:"dir,omitempty"`                   // Directory of resumes to rank
	KeywordFile string `json:"keyword_file,omitempty" yaml:"keyword_file,omitempty"` // One keyword per line, optional " *N" multiplier

	// Output
	Rename     string `json:"rename,omitempty" yaml:"rename,omitempty"`           // "yes" or "no"
	OutputType string `json:"output_type,omitempty" yaml:"output_type,omitempty"` // csv, txt or json
	OutputFile string `json:"output_file,omitempty" yaml:"output_file,omitempty"` // Path of the structured output file

	// Behavior
	Verbose    bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`         // Print ranked file names
	Summary    bool `json:"summary,omitempty" yaml:"summary,omitempty"`         // Print a summary box after ranking
	Debug      bool `json:"debug,omitempty" yaml:"debug,omitempty"`             // Debug-level logging
	Workers    int  `json:"workers,omitempty" yaml:"workers,omitempty"`         // Files extracted and scored concurrently
	DebounceMs int  `json:"debounce_ms,omitempty" yaml:"debounce_ms,omitempty"` // Watch mode event coalescing window
}

// LoadConfig loads configuration from a JSON file, or from YAML when the
// extension is .yaml or .yml.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Normalize lower-cases the enumerated string options
func (c *Config) Normalize() {
	c.Rename = strings.ToLower(strings.TrimSpace(c.Rename))
	c.OutputType = strings.ToLower(strings.TrimSpace(c.OutputType))
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check that paths exist; that happens in setup validation
// right before a run.
func (c *Config) Validate() error {
	if c.Rename != "" && c.Rename != RenameYes && c.Rename != RenameNo {
		return &ConfigurationError{Field: "rename", Message: fmt.Sprintf("must be yes or no, got %q", c.Rename)}
	}

	// Validate numeric ranges
	if c.Workers < 0 {
		return &ConfigurationError{Field: "workers", Message: "must be non-negative"}
	}
	if c.DebounceMs < 0 {
		return &ConfigurationError{Field: "debounce_ms", Message: "must be non-negative"}
	}

	// Validate paired fields
	if c.OutputType != "" && c.OutputFile == "" {
		return &ConfigurationError{Field: "output_type", Message: "must be used in conjunction with 'output_file'"}
	}
	if c.OutputFile != "" && c.OutputType == "" {
		return &ConfigurationError{Field: "output_file", Message: "must be used in conjunction with 'output_type'"}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Dir == "" {
		result.Dir = defaults.Dir
	}
	if result.KeywordFile == "" {
		result.KeywordFile = defaults.KeywordFile
	}
	if result.Rename == "" {
		if defaults.Rename != "" {
			result.Rename = defaults.Rename
		} else {
			result.Rename = RenameYes
		}
	}

	// Output type and file travel together
	if result.OutputType == "" && result.OutputFile == "" {
		result.OutputType = defaults.OutputType
		result.OutputFile = defaults.OutputFile
	}

	// Int fields: use default if zero
	if result.Workers == 0 {
		if defaults.Workers > 0 {
			result.Workers = defaults.Workers
		} else {
			result.Workers = 1
		}
	}
	if result.DebounceMs == 0 {
		result.DebounceMs = defaults.DebounceMs
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// RenameEnabled reports whether ranked files should be renamed in place
func (c *Config) RenameEnabled() bool {
	return c.Rename == "" || c.Rename == RenameYes
}
