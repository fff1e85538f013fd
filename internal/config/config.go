// Package config loads the candbc tool configuration from YAML.
//
// Example:
//
//	format: yaml
//	indent: 2
//	log_level: debug
//	strict: true
//	codegen:
//	  package: powertrain
//
// Every field is optional; missing fields keep their defaults. Command-line
// flags override the loaded values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the tool settings.
type Config struct {
	// Format is the default export format: json, yaml or cbor.
	Format string `yaml:"format"`

	// Indent is the JSON/YAML indent width.
	Indent int `yaml:"indent"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// Strict makes the reader reject unresolved references and makes
	// validate treat warnings as errors.
	Strict bool `yaml:"strict"`

	Codegen CodegenConfig `yaml:"codegen"`
}

// CodegenConfig holds settings for the gen command.
type CodegenConfig struct {
	Package string `yaml:"package"`
}

// LoadError describes a configuration that could not be loaded.
type LoadError struct {
	File    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	msg := e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	if e.File != "" {
		return e.File + ": " + msg
	}
	return msg
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Format:   "json",
		Indent:   4,
		LogLevel: "warn",
		Codegen:  CodegenConfig{Package: "candb"},
	}
}

// Parse reads a configuration from YAML bytes on top of the defaults.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Message: "invalid configuration", Cause: err}
	}
	return cfg, nil
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}
	cfg, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.File = path
		}
		return nil, err
	}
	return cfg, nil
}

// Validate checks the field values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Format) {
	case "json", "yaml", "yml", "cbor":
	default:
		return fmt.Errorf("unknown format %q", c.Format)
	}
	if c.Indent < 1 || c.Indent > 16 {
		return fmt.Errorf("indent %d out of range 1..16", c.Indent)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	l, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unknown log level %q", s)
	}
	return l, nil
}
