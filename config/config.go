// Package config loads the analyzer configuration from YAML. Every field has
// a built-in default, so the tool runs with no config file at all.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults used when the config file is missing or a field is absent or out
// of range.
const (
	DefaultInputPath  = "7_14_2019.txt"
	DefaultMarginCPM  = 5
	DefaultTableWidth = 30
)

// Config represents the complete analyzer configuration
type Config struct {
	InputPath  string `yaml:"input_path"`  // Radiation log to analyze
	MarginCPM  int    `yaml:"margin_cpm"`  // Counts below the max still treated as high
	TableWidth int    `yaml:"table_width"` // Width of the horizontal rules around report tables
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		InputPath:  DefaultInputPath,
		MarginCPM:  DefaultMarginCPM,
		TableWidth: DefaultTableWidth,
	}
}

// Load loads configuration from a YAML file. A missing file is not an error:
// the defaults come back unchanged. Fields the file omits keep their
// defaults, and out-of-range values (negative margin, non-positive width,
// empty input path) are normalized back to defaults rather than rejected. A
// margin of zero is legal and kept; it means only the peak readings count as
// high.
func Load(filename string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

func (c *Config) normalize() {
	if c.InputPath == "" {
		c.InputPath = DefaultInputPath
	}
	if c.MarginCPM < 0 {
		c.MarginCPM = DefaultMarginCPM
	}
	if c.TableWidth <= 0 {
		c.TableWidth = DefaultTableWidth
	}
}
