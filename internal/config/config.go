// Package config loads run configuration for the regionseg CLI from YAML
// files and applies defaults and validation.
//
// The file mirrors the CLI flags; flags given on the command line win over
// file values. Algorithm constants (the 64-pixel minimum region area, the
// (-1,-1) reclamation retry offset, the 200000 iteration cap) are not
// configurable: region boundaries depend on them.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Seed is a seed coordinate in matrix form: X is the row, Y the column.
type Seed struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Crop is a crop rectangle in image coordinates: (X1, Y1) inclusive
// top-left, (X2, Y2) exclusive bottom-right.
type Crop struct {
	X1 int `yaml:"x1"`
	Y1 int `yaml:"y1"`
	X2 int `yaml:"x2"`
	Y2 int `yaml:"y2"`
}

// Config is the YAML-backed run configuration.
type Config struct {
	// Segmentation parameters.
	Segmentation struct {
		// Threshold is the similarity threshold (and the adaptive floor).
		Threshold float64 `yaml:"threshold"`

		// Mode is "fixed" or "adaptive".
		Mode string `yaml:"mode"`

		// Seeds switches to seeded mode when non-empty.
		Seeds []Seed `yaml:"seeds"`
	} `yaml:"segmentation"`

	// Preprocessing applied before segmentation.
	Preprocess struct {
		// Crop restricts segmentation to a sub-rectangle (nil = off).
		Crop *Crop `yaml:"crop"`

		// Scale resizes the input by this factor (0 or 1 = off).
		Scale float64 `yaml:"scale"`

		// BlurSigma applies a Gaussian blur (0 = off).
		BlurSigma float64 `yaml:"blurSigma"`
	} `yaml:"preprocess"`

	// Output parameters.
	Output struct {
		// Path is where the colorized map is written (.png/.jpg).
		Path string `yaml:"path"`

		// Stats prints a JSON region summary to stdout.
		Stats bool `yaml:"stats"`
	} `yaml:"output"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.Segmentation.Threshold = 20
	cfg.Segmentation.Mode = "fixed"
	cfg.Output.Path = "segmented.png"
	return cfg
}

// Load reads a YAML configuration file on top of the defaults. A missing
// path returns the defaults unchanged; a present but unreadable or invalid
// file is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the segmentation core would
// reject, so bad input fails before any image is decoded.
func (c *Config) Validate() error {
	if math.IsNaN(c.Segmentation.Threshold) || math.IsInf(c.Segmentation.Threshold, 0) || c.Segmentation.Threshold < 0 {
		return fmt.Errorf("threshold %v must be a finite non-negative number", c.Segmentation.Threshold)
	}
	switch c.Segmentation.Mode {
	case "fixed", "adaptive":
	default:
		return fmt.Errorf("mode %q must be \"fixed\" or \"adaptive\"", c.Segmentation.Mode)
	}
	if r := c.Preprocess.Crop; r != nil && (r.X1 >= r.X2 || r.Y1 >= r.Y2) {
		return fmt.Errorf("crop rect (%d,%d)-(%d,%d) is empty or inverted", r.X1, r.Y1, r.X2, r.Y2)
	}
	if c.Preprocess.Scale < 0 {
		return fmt.Errorf("scale %v must be non-negative", c.Preprocess.Scale)
	}
	if c.Preprocess.BlurSigma < 0 {
		return fmt.Errorf("blurSigma %v must be non-negative", c.Preprocess.BlurSigma)
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output path must not be empty")
	}
	return nil
}
