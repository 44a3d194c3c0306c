package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/godes/internal/config"
)

// NewEncryptCommand creates a new cobra command for the encrypt subcommand.
func NewEncryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "encrypt [flags] input [output]",
		Aliases: []string{"enc"},
		Short:   "Encrypt a file",
		Args:    cobra.RangeArgs(1, 2), //nolint:mnd
		PreRunE: preRun(cfg, false),
		RunE:    runProcessor(cfg),
	}

	addProcessingFlags(cmd)

	return cmd
}
