// Package config loads generator settings from .sumtype.yaml (or .yml,
// .json, .toml) and merges them over the defaults.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileNames lists the configuration file names looked up by Find, in order.
var FileNames = []string{".sumtype.yaml", ".sumtype.yml", ".sumtype.json", ".sumtype.toml"}

// Config represents the complete configuration.
type Config struct {
	// RawFallback recovers unresolvable directive arguments from their
	// source text, with a warning per use.
	RawFallback bool `yaml:"raw_fallback" json:"raw_fallback" toml:"raw_fallback"`
	// SourceDirsSkip lists directory names ignored during discovery.
	SourceDirsSkip []string `yaml:"source_dirs_skip" json:"source_dirs_skip" toml:"source_dirs_skip"`
	// Header is the first comment line of generated files.
	Header string `yaml:"header" json:"header" toml:"header"`
	// Suffix is the generated filename suffix.
	Suffix   string `yaml:"suffix" json:"suffix" toml:"suffix"`
	LogLevel string `yaml:"log_level" json:"log_level" toml:"log_level"`
}

// fileConfig is the on-disk shape; pointers distinguish unset from zero.
type fileConfig struct {
	RawFallback    *bool    `yaml:"raw_fallback" json:"raw_fallback" toml:"raw_fallback"`
	SourceDirsSkip []string `yaml:"source_dirs_skip" json:"source_dirs_skip" toml:"source_dirs_skip"`
	Header         string   `yaml:"header" json:"header" toml:"header"`
	Suffix         string   `yaml:"suffix" json:"suffix" toml:"suffix"`
	LogLevel       string   `yaml:"log_level" json:"log_level" toml:"log_level"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		SourceDirsSkip: []string{"vendor", "testdata", "_examples"},
		Header:         "Code generated by sumtype-generator. DO NOT EDIT.",
		Suffix:         "_sumtype.go",
		LogLevel:       "info",
	}
}

// Find returns the first configuration file present in dir.
func Find(dir string) (string, bool) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, true
		}
	}

	return "", false
}

// Load returns the defaults merged with the file at path. An empty path
// looks for a configuration file in dir; a missing file yields the defaults.
func Load(path, dir string) (*Config, error) {
	c := New()

	if path == "" {
		found, ok := Find(dir)
		if !ok {
			return c, nil
		}

		path = found
	}

	if err := c.LoadFile(path); err != nil {
		return nil, err
	}

	return c, nil
}

// LoadFile loads configuration from a file (YAML, JSON or TOML based on extension).
func (c *Config) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	var loaded fileConfig

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing YAML config: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &loaded); err != nil {
			return fmt.Errorf("parsing JSON config: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &loaded); err != nil {
			return fmt.Errorf("parsing TOML config: %w", err)
		}
	default:
		// Try YAML first, then JSON
		if err := yaml.Unmarshal(data, &loaded); err != nil {
			if err := json.Unmarshal(data, &loaded); err != nil {
				return errors.New("unable to parse config as YAML or JSON")
			}
		}
	}

	c.merge(&loaded)

	return nil
}

// merge merges the loaded config into the current config.
func (c *Config) merge(loaded *fileConfig) {
	if loaded.RawFallback != nil {
		c.RawFallback = *loaded.RawFallback
	}

	if loaded.SourceDirsSkip != nil {
		c.SourceDirsSkip = loaded.SourceDirsSkip
	}

	if loaded.Header != "" {
		c.Header = loaded.Header
	}

	if loaded.Suffix != "" {
		c.Suffix = loaded.Suffix
	}

	if loaded.LogLevel != "" {
		c.LogLevel = loaded.LogLevel
	}
}

// Validate checks values the generator depends on.
func (c *Config) Validate() error {
	if !strings.HasSuffix(c.Suffix, ".go") {
		return fmt.Errorf("suffix %q must end in .go", c.Suffix)
	}

	if strings.ContainsAny(c.Suffix, `/\`) {
		return fmt.Errorf("suffix %q must not contain a path separator", c.Suffix)
	}

	if strings.Contains(c.Header, "\n") {
		return errors.New("header must be a single line")
	}

	return nil
}

// Skipped reports whether a directory name is excluded from discovery.
func (c *Config) Skipped(name string) bool {
	for _, skip := range c.SourceDirsSkip {
		if name == skip {
			return true
		}
	}

	return false
}
