// Package config holds the runtime configuration of filecrypt and its validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/idelchi/filecrypt/internal/encryption"
)

// Key holds the two mutually exclusive sources of the key.
type Key struct {
	// String is the key itself; its raw bytes are the key material.
	String string `label:"--key" mapstructure:"key" validate:"required_without=File,exclusive=File" yaml:"key"`

	// File is a path to a file holding the key.
	File string `label:"--key-file" mapstructure:"key-file" yaml:"key-file"`
}

// Config represents the configuration of a single run.
type Config struct {
	// Common flags
	Key                Key    `mapstructure:",squash" yaml:",inline"`
	Algorithm          string `label:"--algorithm" mapstructure:"algorithm" validate:"required" yaml:"algorithm"`
	KeySize            int    `label:"--key-size" mapstructure:"key-size" validate:"gte=0" yaml:"key-size"`
	Parallel           int    `label:"--parallel" mapstructure:"parallel" validate:"gte=1" yaml:"parallel"`
	LogLevel           string `label:"--log-level" mapstructure:"log-level" validate:"oneof=debug info warn error" yaml:"log-level"` //nolint:lll
	Quiet              bool   `mapstructure:"quiet" yaml:"quiet"`
	Stats              bool   `mapstructure:"stats" yaml:"stats"`
	Show               bool   `mapstructure:"show" yaml:"-"`
	PreserveTimestamps bool   `mapstructure:"preserve-timestamps" yaml:"preserve-timestamps"`

	// Command-specific flags
	Input  string `label:"--input" mapstructure:"input" validate:"required_without=Jobs" yaml:"input,omitempty"`
	Output string `label:"--output" mapstructure:"output" validate:"required_without=Jobs" yaml:"output,omitempty"`
	Jobs   string `label:"--jobs" mapstructure:"jobs" yaml:"jobs,omitempty"`

	// Mode is set by the encrypt and decrypt commands.
	Mode encryption.Mode `mapstructure:"-" yaml:"-"`
}

// Validate validates the configuration against the struct tags and checks
// that the transformation can be instantiated.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := registerExclusive(validate); err != nil {
		return err
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if c.Input != "" && c.Output != "" && filepath.Clean(c.Input) == filepath.Clean(c.Output) {
		return errors.New("validating configuration: --input and --output must differ")
	}

	if _, err := c.Transformation(); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	return nil
}

// Transformation builds the cipher transformation from the algorithm and key size flags.
func (c *Config) Transformation() (encryption.Transformation, error) {
	transformation, err := encryption.ParseTransformation(c.Algorithm)
	if err != nil {
		return encryption.Transformation{}, err
	}

	transformation.KeySize = c.KeySize

	if err := transformation.Validate(); err != nil {
		return encryption.Transformation{}, err
	}

	return transformation, nil
}

// ResolveKey returns the key string, reading it from the key file if one is configured.
// Trailing line breaks of a key file are not part of the key.
func (c *Config) ResolveKey() (string, error) {
	if c.Key.File == "" {
		return c.Key.String, nil
	}

	data, err := os.ReadFile(c.Key.File) //nolint:gosec // path is from user-supplied config
	if err != nil {
		return "", fmt.Errorf("reading key file: %w", err)
	}

	return strings.TrimRight(string(data), "\r\n"), nil
}

// Display renders the configuration as YAML with the key redacted.
func (c *Config) Display() (string, error) {
	redacted := *c

	if redacted.Key.String != "" {
		redacted.Key.String = strings.Repeat("*", len(redacted.Key.String))
	}

	out, err := yaml.Marshal(redacted)
	if err != nil {
		return "", fmt.Errorf("marshalling configuration: %w", err)
	}

	return string(out), nil
}
