// Package config loads the YAML configuration that drives an annotation
// run: where texts and entities come from, which filters apply to each,
// and where and how annotations are written.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/annot/pkg/annot/codec"
	"github.com/cognicore/annot/pkg/annot/filter"
	"github.com/cognicore/annot/pkg/annot/internalerr"
)

// Config is the root of the configuration tree.
type Config struct {
	Texts       Texts       `yaml:"texts"`
	Entities    Entities    `yaml:"entities"`
	Annotations Annotations `yaml:"annotations"`
}

// Input names a source file and whether its rows pass through the
// configured filters.
type Input struct {
	Path   string `yaml:"path"`
	Filter bool   `yaml:"filter"`
}

// Texts configures the raw text source.
type Texts struct {
	Input   Input          `yaml:"input"`
	Filters filter.Filters `yaml:"filters"`
}

// Excludes names a file of entity names to drop before matching.
type Excludes struct {
	Path string `yaml:"path"`
}

// Entities configures the entity source.
type Entities struct {
	Input    Input          `yaml:"input"`
	Filters  filter.Filters `yaml:"filters"`
	Excludes Excludes       `yaml:"excludes"`
}

// Output names where annotations are written.
type Output struct {
	Path string `yaml:"path"`
}

// Annotations configures the export target. Format is one of jsonl,
// spacy, conll, brat, csv; empty defaults to jsonl.
type Annotations struct {
	Output Output `yaml:"output"`
	Format string `yaml:"format"`
}

// Default returns a config with default filters on both inputs and JSONL
// output.
func Default() *Config {
	return &Config{
		Texts:       Texts{Filters: filter.Default()},
		Entities:    Entities{Filters: filter.Default()},
		Annotations: Annotations{Format: "jsonl"},
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes and validates YAML configuration bytes.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %v: %w", err, internalerr.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required fields and normalizes defaults.
func (c *Config) Validate() error {
	if c.Annotations.Format == "" {
		c.Annotations.Format = "jsonl"
	}
	if _, err := codec.ParseFormat(c.Annotations.Format); err != nil {
		return err
	}
	if c.Texts.Filters.MinLength > c.Texts.Filters.MaxLength && c.Texts.Filters.MaxLength > 0 {
		return fmt.Errorf("texts filters: min_length %d exceeds max_length %d: %w",
			c.Texts.Filters.MinLength, c.Texts.Filters.MaxLength, internalerr.ErrInvalidConfig)
	}
	if c.Entities.Filters.MinLength > c.Entities.Filters.MaxLength && c.Entities.Filters.MaxLength > 0 {
		return fmt.Errorf("entities filters: min_length %d exceeds max_length %d: %w",
			c.Entities.Filters.MinLength, c.Entities.Filters.MaxLength, internalerr.ErrInvalidConfig)
	}
	return nil
}

// Format returns the parsed output format. Call after Validate.
func (c *Config) Format() codec.Format {
	f, err := codec.ParseFormat(c.Annotations.Format)
	if err != nil {
		return codec.Jsonl
	}
	return f
}

// Summary renders the effective configuration for log output.
func (c *Config) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "texts: path=%s filter=%t\n", c.Texts.Input.Path, c.Texts.Input.Filter)
	fmt.Fprintf(&b, "entities: path=%s filter=%t excludes=%s\n",
		c.Entities.Input.Path, c.Entities.Input.Filter, orNone(c.Entities.Excludes.Path))
	fmt.Fprintf(&b, "annotations: path=%s format=%s", c.Annotations.Output.Path, c.Annotations.Format)
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
