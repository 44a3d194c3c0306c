// Package logic implements the core business logic for the encryption/decryption.
package logic

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/idelchi/godes/internal/config"
	"github.com/idelchi/godes/internal/encryption"
	"github.com/idelchi/godes/internal/fileutil"
	"github.com/idelchi/godes/internal/pipeline"
)

// Run encrypts or decrypts cfg.Input into the derived output path.
// The output file only appears once the whole stream has been transformed.
func Run(ctx context.Context, cfg *config.Config, log *zap.Logger, stdout, stderr io.Writer) error {
	start := time.Now()

	key, err := loadKey(cfg)
	if err != nil {
		return err
	}

	policy, err := encryption.ParsePolicy(cfg.Padding)
	if err != nil {
		return err
	}

	outPath := OutputPath(cfg)
	if filepath.Clean(outPath) == filepath.Clean(cfg.Input) {
		return fmt.Errorf("%w: %q (set an output path or --decrypt-ext)", ErrOutputIsInput, cfg.Input)
	}

	size, res, err := processFile(ctx, cfg, key, policy, outPath, log)
	if err != nil {
		return fmt.Errorf("processing %q: %w", cfg.Input, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(stdout, "Processed %q -> %q\n", cfg.Input, outPath)
	}

	if cfg.Delete {
		if err := os.Remove(cfg.Input); err != nil {
			return fmt.Errorf("deleting %q: %w", cfg.Input, err)
		}

		if !cfg.Quiet {
			fmt.Fprintf(stdout, "Deleted %q\n", cfg.Input)
		}
	}

	if cfg.Stats {
		printStats(stderr, cfg, res, size, time.Since(start))
	}

	return nil
}

// processFile transforms a single file and writes it atomically to outPath.
func processFile(
	ctx context.Context,
	cfg *config.Config,
	key []byte,
	policy encryption.Policy,
	outPath string,
	log *zap.Logger,
) (size int64, res pipeline.Result, err error) {
	tc, err := fileutil.NewTempContext(cfg.Input, outPath)
	if err != nil {
		return 0, res, fmt.Errorf("preparing atomic write: %w", err)
	}

	defer tc.CleanupOnError(&err)

	input, err := os.ReadFile(filepath.Clean(cfg.Input))
	if err != nil {
		return 0, res, fmt.Errorf("reading input file: %w", err)
	}

	mode := encryption.Encrypt
	if cfg.Decrypt {
		mode = encryption.Decrypt
	}

	log.Info("processing",
		zap.String("input", cfg.Input),
		zap.Stringer("mode", mode),
		zap.Int("bytes", len(input)),
		zap.Int("workers", cfg.Parallel),
	)

	orchestrator := pipeline.New(
		pipeline.WithLogger(log.Named("pipeline")),
		pipeline.WithPolicy(policy),
	)

	res, err = orchestrator.Run(ctx, pipeline.Request{
		Mode:    mode,
		Key:     key,
		Input:   input,
		Workers: cfg.Parallel,
	})
	if err != nil {
		return 0, res, fmt.Errorf("%sing: %w", mode, err)
	}

	if err := tc.Write(res.Output); err != nil {
		return 0, res, err
	}

	if err := tc.Commit(); err != nil {
		return 0, res, err
	}

	size, err = fileutil.FinalizeOutput(outPath, cfg.PreserveTimestamps, tc.SrcInfo.ModTime())
	if err != nil {
		return 0, res, fmt.Errorf("finalizing output: %w", err)
	}

	return size, res, nil
}

// loadKey reads the key from the configured hex string or key file.
func loadKey(cfg *config.Config) ([]byte, error) {
	if cfg.Key.String != "" {
		key, err := encryption.KeyFromHex(cfg.Key.String)
		if err != nil {
			return nil, fmt.Errorf("reading key: %w", err)
		}

		return key, nil
	}

	data, err := os.ReadFile(filepath.Clean(cfg.Key.File))
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}

	key, err := encryption.ParseKey(data)
	if err != nil {
		return nil, fmt.Errorf("reading key file %q: %w", cfg.Key.File, err)
	}

	return key, nil
}

// OutputPath returns the explicit output path, or derives one from the input
// and the configured suffixes.
func OutputPath(cfg *config.Config) string {
	if cfg.Output != "" {
		return cfg.Output
	}

	filename := cfg.Input
	ext := cfg.Suffixes.Encrypt

	if cfg.Decrypt {
		filename = strings.TrimSuffix(filename, cfg.Suffixes.Encrypt)
		ext = cfg.Suffixes.Decrypt
	}

	return filepath.Join(filepath.Dir(filename), filepath.Base(filename)+ext)
}

// ErrOutputIsInput is returned when the output path resolves to the input file.
var ErrOutputIsInput = errors.New("output path is the input file")

// ErrKeyFileExists is returned when generate would overwrite an existing key file.
var ErrKeyFileExists = errors.New("key file already exists")

// RunGenerate creates a new key. With an empty path the key is printed as hex,
// otherwise it is written to path (raw bytes unless cfg.Hex is set).
func RunGenerate(cfg *config.Config, path string, stdout io.Writer) error {
	key, err := encryption.GenerateKey()
	if err != nil {
		return err
	}

	if path == "" {
		fmt.Fprintln(stdout, hex.EncodeToString(key))

		return nil
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !cfg.Force {
		flags |= os.O_EXCL
	}

	const ownerReadWrite = 0o600

	file, err := os.OpenFile(filepath.Clean(path), flags, ownerReadWrite)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return fmt.Errorf("%w: %q (use --force to overwrite)", ErrKeyFileExists, path)
		}

		return fmt.Errorf("opening key file: %w", err)
	}
	defer file.Close()

	data := key
	if cfg.Hex {
		data = []byte(hex.EncodeToString(key) + "\n")
	}

	if _, err := file.Write(data); err != nil {
		return fmt.Errorf("writing key file: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing key file: %w", err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(stdout, "Generated key %q\n", path)
	}

	return nil
}

func printStats(w io.Writer, cfg *config.Config, res pipeline.Result, outSize int64, duration time.Duration) {
	mode := encryption.Encrypt
	if cfg.Decrypt {
		mode = encryption.Decrypt
	}

	fmt.Fprintf(w, "\nStats\n")
	fmt.Fprintf(w, "  Mode:      %s\n", mode)
	fmt.Fprintf(w, "  Blocks:    %d\n", res.Blocks)
	fmt.Fprintf(w, "  Workers:   %d\n", len(res.Workers))

	for _, ws := range res.Workers {
		fmt.Fprintf(w, "    [%d] blocks %d-%d: %s\n",
			ws.Index, ws.Range.Start, ws.Range.End, ws.Elapsed.Round(time.Microsecond))
	}

	//nolint:gosec // outSize is always non-negative (file size)
	fmt.Fprintf(w, "  Size:      %s\n", humanize.IBytes(uint64(max(0, outSize))))
	fmt.Fprintf(w, "  Transform: %s\n", res.Elapsed.Round(time.Microsecond))
	fmt.Fprintf(w, "  Duration:  %s\n", duration.Round(time.Millisecond))
}
