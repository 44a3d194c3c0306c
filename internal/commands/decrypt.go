package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/godes/internal/config"
)

// NewDecryptCommand creates a new cobra command for the decrypt subcommand.
func NewDecryptCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "decrypt [flags] input [output]",
		Aliases: []string{"dec"},
		Short:   "Decrypt a file",
		Args:    cobra.RangeArgs(1, 2), //nolint:mnd
		PreRunE: preRun(cfg, true),
		RunE:    runProcessor(cfg),
	}

	addProcessingFlags(cmd)

	return cmd
}
