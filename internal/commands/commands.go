package commands

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/idelchi/godes/internal/config"
	"github.com/idelchi/godes/internal/logging"
	"github.com/idelchi/godes/internal/logic"
)

// NewGenerateCommand creates a new cobra command for the generate subcommand.
func NewGenerateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate [flags] [keyfile]",
		Aliases: []string{"gen"},
		Short:   "Generate a new encryption key",
		Long: `Generate a new 8-byte key.
Without a key file the key is printed hex-encoded; otherwise it is written to the file as raw bytes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Show {
				return show(cmd, cfg)
			}

			var path string
			if len(args) == 1 {
				path = args[0]
			}

			return logic.RunGenerate(cfg, path, cmd.OutOrStdout())
		},
	}

	cmd.Flags().Bool("hex", false, "Write the key file hex-encoded instead of raw")
	cmd.Flags().Bool("force", false, "Overwrite an existing key file")

	return cmd
}

// show prints the resolved configuration with secrets masked.
func show(cmd *cobra.Command, cfg *config.Config) error {
	out, err := yaml.Marshal(cfg.Masked())
	if err != nil {
		return fmt.Errorf("marshalling configuration: %w", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), string(out))

	return nil
}

// runProcessor returns the RunE handler shared by encrypt and decrypt.
func runProcessor(cfg *config.Config) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if cfg.Show {
			return show(cmd, cfg)
		}

		log, err := newLogger(cmd, cfg)
		if err != nil {
			return err
		}
		defer log.Sync() //nolint:errcheck

		return logic.Run(cmd.Context(), cfg, log, cmd.OutOrStdout(), cmd.ErrOrStderr())
	}
}

func newLogger(cmd *cobra.Command, cfg *config.Config) (*zap.Logger, error) {
	log, err := logging.New(cfg.LogLevel, cmd.ErrOrStderr())
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	return log.Named("godes"), nil
}
