package commands

import (
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/idelchi/godes/internal/config"
)

// NewRootCommand creates the root command with common configuration.
// It sets up environment variable binding and flag handling.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "godes [flags] command [flags]",
		Short: "Parallel DES file encryption utility",
		Long: `A file encryption utility that runs DES over a file split across a pool of workers.
Provides commands for key generation, encryption, and decryption.
Every flag can also be set through the environment, e.g. GODES_PARALLEL=4.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return bind(v, cmd, cfg)
		},
	}

	root.PersistentFlags().BoolP("show", "s", false, "Show the configuration and exit")
	root.PersistentFlags().
		IntP("parallel", "j", runtime.NumCPU(), "Number of parallel workers, defaults to number of CPUs")
	root.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-error output")
	root.PersistentFlags().Bool("stats", false, "Print a summary after processing")
	root.PersistentFlags().String("log-level", "warn", "Diagnostic log level (debug, info, warn, error)")

	root.AddCommand(NewGenerateCommand(cfg), NewEncryptCommand(cfg), NewDecryptCommand(cfg))

	return root
}

// addProcessingFlags registers the flags shared by encrypt and decrypt.
func addProcessingFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("key", "k", "", "Encryption key (8 bytes, hex-encoded)")
	cmd.Flags().
		StringP("key-file", "f", "", "Path to the key file with the encryption key (8 raw bytes or 16 hex characters)")

	cmd.Flags().String("encrypt-ext", ".enc", "Suffix to append to encrypted files")
	cmd.Flags().String("decrypt-ext", "", "Suffix to append to decrypted files, after stripping the encrypted suffix")

	cmd.Flags().BoolP("delete", "d", false, "Delete the original file after successful encryption/decryption")
	cmd.Flags().Bool("preserve-timestamps", false, "Copy the modification time of the input to the output")
	cmd.Flags().String("padding", "strict", "Padding validation on decryption (strict, lenient)")
}
