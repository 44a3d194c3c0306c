// Package commands provides the command-line interface for the godes tool.
//
// It implements commands for:
//   - key generation
//   - encryption
//   - decryption
//
// The package handles command-line parsing, configuration validation,
// and environment variable binding through cobra and viper.
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/godes/internal/config"
)

// envPrefix is prepended to every flag name to form its environment variable, e.g. GODES_PARALLEL.
const envPrefix = "GODES"

// bind resolves flags and environment variables into cfg.
func bind(v *viper.Viper, cmd *cobra.Command, cfg *config.Config) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}

	return nil
}

// preRun returns a PreRunE handler that takes the input and optional output path from
// the positional args and validates the configuration.
func preRun(cfg *config.Config, decrypt bool) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		cfg.Decrypt = decrypt
		cfg.Input = args[0]

		if len(args) > 1 {
			cfg.Output = args[1]
		}

		return cfg.Validate()
	}
}
