// Package config loads and validates the YAML experiment configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ChrisMcGann/pepbench/pkg/core"
)

// Config holds the configuration of a pepbench experiment. Field names mirror
// the camelCase keys of the YAML file.
type Config struct {
	Identifier   string `yaml:"identifier"`
	Proteome     string `yaml:"proteome"`
	PeptidePool  string `yaml:"peptidePool"`
	OutputFolder string `yaml:"outputFolder"`

	RandomSeed int64 `yaml:"randomSeed"`

	CanonicalFraction    float64 `yaml:"canonicalFraction"`
	CissplicedFraction   float64 `yaml:"cissplicedFraction"`
	TranssplicedFraction float64 `yaml:"transsplicedFraction"`

	ClosenessCutOff   int    `yaml:"closenessCutOff"`
	MaxIntervening    int    `yaml:"maxIntervening"`
	MinSequenceLength int    `yaml:"minSequenceLength"`
	MaxSequenceLength int    `yaml:"maxSequenceLength"`
	FilterPTMs        *bool  `yaml:"filterPTMs"`
	EnzymeName        string `yaml:"enzyme"`

	// Enzyme is parsed from EnzymeName during Load.
	Enzyme core.Enzyme `yaml:"-"`
}

// Load reads a YAML config file, rejects unknown keys, applies defaults and
// validates the result.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := &Config{
		RandomSeed:        42,
		ClosenessCutOff:   -1,
		MaxIntervening:    25,
		MinSequenceLength: 7,
		MaxSequenceLength: 30,
	}

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() error {
	enzyme, err := core.ParseEnzyme(c.EnzymeName)
	if err != nil {
		return err
	}
	c.Enzyme = enzyme

	if c.ClosenessCutOff < 0 {
		if c.CissplicedFraction > 0 {
			c.ClosenessCutOff = 3
		} else {
			c.ClosenessCutOff = 1
		}
	}
	if c.FilterPTMs == nil {
		filter := true
		c.FilterPTMs = &filter
	}
	return nil
}

// Validate checks the configuration values, surfacing structural problems as
// fatal errors before any work starts.
func (c *Config) Validate() error {
	if c.Identifier == "" {
		return fmt.Errorf("identifier is required")
	}
	if c.Proteome == "" {
		return fmt.Errorf("proteome is required")
	}
	if _, err := os.Stat(c.Proteome); os.IsNotExist(err) {
		return fmt.Errorf("no proteome file at %s", c.Proteome)
	}
	if c.PeptidePool == "" {
		return fmt.Errorf("peptidePool is required")
	}
	if _, err := os.Stat(c.PeptidePool); os.IsNotExist(err) {
		return fmt.Errorf("no peptide pool file at %s", c.PeptidePool)
	}
	if c.OutputFolder == "" {
		return fmt.Errorf("outputFolder is required")
	}

	total := c.CanonicalFraction + c.CissplicedFraction + c.TranssplicedFraction
	if c.CanonicalFraction < 0 || c.CissplicedFraction < 0 || c.TranssplicedFraction < 0 {
		return fmt.Errorf("stratum fractions must be non-negative")
	}
	if total < 0.999 || total > 1.001 {
		return fmt.Errorf("stratum fractions must sum to 1, got %.3f", total)
	}
	if c.MaxIntervening <= 0 {
		return fmt.Errorf("maxIntervening must be positive")
	}
	if c.MinSequenceLength <= 0 || c.MaxSequenceLength < c.MinSequenceLength {
		return fmt.Errorf("invalid sequence length bounds [%d, %d]", c.MinSequenceLength, c.MaxSequenceLength)
	}
	return nil
}

// EnsureOutputFolder creates the output folder if it does not exist.
func (c *Config) EnsureOutputFolder() error {
	if err := os.MkdirAll(c.OutputFolder, 0o755); err != nil {
		return fmt.Errorf("failed to create output folder: %w", err)
	}
	return nil
}
