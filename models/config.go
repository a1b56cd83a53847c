// Package models defines data structures for configuration.
package models

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultURL is the document analyzed when no URL is given.
const DefaultURL = "https://www.gutenberg.org/files/1342/1342-0.txt"

const (
	DefaultWorkers = 4
	DefaultTopN    = 10
	DefaultTimeout = 30 * time.Second
	DefaultWidth   = 50
)

// OutputFormat selects how a run's result is presented.
type OutputFormat string

const (
	FormatChart OutputFormat = "chart"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// ExtractMode controls whether HTML markup is stripped before counting.
type ExtractMode string

const (
	ExtractRaw  ExtractMode = "raw"  // count the body exactly as fetched (default)
	ExtractAuto ExtractMode = "auto" // strip only when the response is HTML
	ExtractHTML ExtractMode = "html" // always treat the body as HTML
)

// Config holds runtime configuration for one analysis run.
// Values come from an optional YAML file, overridden by CLI flags.
type Config struct {
	URL            string        `yaml:"url"`
	Workers        int           `yaml:"workers"`
	TopN           int           `yaml:"top"`
	Format         OutputFormat  `yaml:"format"`
	Extract        ExtractMode   `yaml:"extract"`
	DetectLanguage bool          `yaml:"detect_language"`
	Timeout        time.Duration `yaml:"timeout"`
	Width          int           `yaml:"width"`
}

func DefaultConfig() Config {
	return Config{
		URL:     DefaultURL,
		Workers: DefaultWorkers,
		TopN:    DefaultTopN,
		Format:  FormatChart,
		Extract: ExtractRaw,
		Timeout: DefaultTimeout,
		Width:   DefaultWidth,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	cfg.Format = OutputFormat(strings.ToLower(string(cfg.Format)))
	cfg.Extract = ExtractMode(strings.ToLower(string(cfg.Extract)))
	return cfg, cfg.Validate()
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if strings.TrimSpace(c.URL) == "" {
		return fmt.Errorf("url must not be empty")
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.TopN < 0 {
		return fmt.Errorf("top must not be negative, got %d", c.TopN)
	}
	switch c.Format {
	case FormatChart, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown format %q (want chart, json or yaml)", c.Format)
	}
	switch c.Extract {
	case ExtractAuto, ExtractRaw, ExtractHTML:
	default:
		return fmt.Errorf("unknown extract mode %q (want auto, raw or html)", c.Extract)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}
