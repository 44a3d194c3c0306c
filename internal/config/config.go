// Package config holds the runtime configuration assembled from flags and environment variables.
package config

import (
	"encoding/hex"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Key selects where the key material comes from. Exactly one of the fields must be set.
type Key struct {
	// String is a hex-encoded key.
	String string `label:"--key"      mapstructure:"key"      validate:"omitempty,hexadecimal,len=16,excluded_with=File"`

	// File is the path to a file holding a raw or hex-encoded key.
	File string `label:"--key-file" mapstructure:"key-file" validate:"required_without=String"`
}

// Suffixes control how output file names are derived from input file names.
type Suffixes struct {
	Encrypt string `mapstructure:"encrypt-ext" validate:"required"`
	Decrypt string `mapstructure:"decrypt-ext"`
}

// Config holds the application's configuration.
type Config struct {
	// Show prints the resolved configuration and exits.
	Show bool

	// Parallel is the number of workers the stream is split across.
	Parallel int `label:"--parallel" validate:"min=1"`

	// Quiet suppresses non-error output.
	Quiet bool

	// Stats prints a summary after processing.
	Stats bool

	// Delete removes the input file after successful processing.
	Delete bool

	// PreserveTimestamps copies the modification time of the input to the output.
	PreserveTimestamps bool `mapstructure:"preserve-timestamps"`

	// Padding is the padding validation policy applied on decryption.
	Padding string `label:"--padding" validate:"oneof=strict lenient"`

	// LogLevel sets the verbosity of diagnostic logs.
	LogLevel string `label:"--log-level" mapstructure:"log-level" validate:"oneof=debug info warn error"`

	Key Key `mapstructure:",squash"`

	Suffixes Suffixes `mapstructure:",squash"`

	// Hex writes generated key files as hex text instead of raw bytes.
	Hex bool

	// Force allows generate to overwrite an existing key file.
	Force bool

	// Decrypt is set by the decrypt command.
	Decrypt bool `mapstructure:"-"`

	// Input and Output are taken from positional arguments.
	Input  string `label:"input" mapstructure:"-" validate:"required"`
	Output string `mapstructure:"-"`
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "" || name == "-" {
			return fld.Name
		}

		return name
	})

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	if c.Key.String != "" {
		if _, err := hex.DecodeString(c.Key.String); err != nil {
			return fmt.Errorf("invalid key format: %w", err)
		}
	}

	return nil
}

// Masked returns a copy of the configuration that is safe to print.
func (c Config) Masked() Config {
	if c.Key.String != "" {
		c.Key.String = "<redacted>"
	}

	return c
}
