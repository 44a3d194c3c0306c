package logic_test

import (
	"bytes"
	"context"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/idelchi/godes/internal/config"
	"github.com/idelchi/godes/internal/logic"
)

const hexKey = "133457799bbcdff1"

func newConfig(input string, decrypt bool) *config.Config {
	return &config.Config{
		Parallel: 3,
		Padding:  "strict",
		LogLevel: "warn",
		Key:      config.Key{String: hexKey},
		Suffixes: config.Suffixes{Encrypt: ".enc"},
		Decrypt:  decrypt,
		Input:    input,
	}
}

func files(t *testing.T, dir string) []string {
	t.Helper()

	list, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(list))
	for _, e := range list {
		names = append(names, e.Name())
	}

	return names
}

func process(t *testing.T, cfg *config.Config) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	err := logic.Run(context.Background(), cfg, zap.NewNop(), &stdout, &stderr)

	return stdout.String() + stderr.String(), err
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	plain := filepath.Join(dir, "notes.txt")
	content := []byte("the quick brown fox jumps over the lazy dog")

	require.NoError(t, os.WriteFile(plain, content, 0o600))

	out, err := process(t, newConfig(plain, false))
	require.NoError(t, err)
	assert.Contains(t, out, "notes.txt.enc")

	encrypted, err := os.ReadFile(plain + ".enc")
	require.NoError(t, err)
	assert.Len(t, encrypted, 48)

	require.NoError(t, os.Remove(plain))

	cfg := newConfig(plain+".enc", true)
	cfg.Stats = true

	out, err = process(t, cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "Stats")
	assert.Contains(t, out, "Blocks:    6")

	decrypted, err := os.ReadFile(plain)
	require.NoError(t, err)
	assert.Equal(t, content, decrypted)
	assert.ElementsMatch(t, []string{"notes.txt", "notes.txt.enc"}, files(t, dir))
}

func TestKeyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	keyFile := filepath.Join(dir, "key")
	input := filepath.Join(dir, "data.bin")

	raw, err := hex.DecodeString(hexKey)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(keyFile, raw, 0o600))
	require.NoError(t, os.WriteFile(input, []byte("abc"), 0o600))

	cfg := newConfig(input, false)
	cfg.Key = config.Key{File: keyFile}
	cfg.Output = filepath.Join(dir, "viafile")

	_, err = process(t, cfg)
	require.NoError(t, err)

	cfg = newConfig(input, false)
	cfg.Output = filepath.Join(dir, "viahex")

	_, err = process(t, cfg)
	require.NoError(t, err)

	a, err := os.ReadFile(filepath.Join(dir, "viafile"))
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, "viahex"))
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestFailureLeavesNoOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "broken.enc")

	require.NoError(t, os.WriteFile(input, []byte("not a multiple"), 0o600))

	_, err := process(t, newConfig(input, true))
	require.Error(t, err)
	assert.Equal(t, []string{"broken.enc"}, files(t, dir))
}

func TestCancelledLeavesNoOutput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "data")

	require.NoError(t, os.WriteFile(input, make([]byte, 1024), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := logic.Run(ctx, newConfig(input, false), zap.NewNop(), &bytes.Buffer{}, &bytes.Buffer{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []string{"data"}, files(t, dir))
}

func TestDecryptKeepsInputWithoutSuffix(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	plain := filepath.Join(dir, "secret.bin")
	cipherFile := filepath.Join(dir, "cipher")

	require.NoError(t, os.WriteFile(plain, []byte("hello world!"), 0o600))

	cfg := newConfig(plain, false)
	cfg.Output = cipherFile

	_, err := process(t, cfg)
	require.NoError(t, err)

	before, err := os.ReadFile(cipherFile)
	require.NoError(t, err)

	for _, policy := range []string{"strict", "lenient"} {
		cfg = newConfig(cipherFile, true)
		cfg.Padding = policy
		cfg.Delete = true

		_, err = process(t, cfg)
		require.ErrorIs(t, err, logic.ErrOutputIsInput, "policy=%s", policy)

		after, err := os.ReadFile(cipherFile)
		require.NoError(t, err)
		assert.Equal(t, before, after, "policy=%s", policy)
	}

	cfg = newConfig(plain, false)
	cfg.Output = dir + string(filepath.Separator) + "." + string(filepath.Separator) + "secret.bin"

	_, err = process(t, cfg)
	require.ErrorIs(t, err, logic.ErrOutputIsInput)

	assert.ElementsMatch(t, []string{"secret.bin", "cipher"}, files(t, dir))
}

func TestDelete(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "data")

	require.NoError(t, os.WriteFile(input, []byte("payload"), 0o600))

	cfg := newConfig(input, false)
	cfg.Delete = true
	cfg.Quiet = true

	out, err := process(t, cfg)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, []string{"data.enc"}, files(t, dir))
}

func TestOutputPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		output  string
		decrypt bool
		suffix  string
		want    string
	}{
		{name: "encrypt", input: "dir/file.txt", want: filepath.Join("dir", "file.txt.enc")},
		{name: "decrypt", input: "dir/file.txt.enc", decrypt: true, want: filepath.Join("dir", "file.txt")},
		{name: "decrypt with suffix", input: "file.enc", decrypt: true, suffix: ".dec", want: "file.dec"},
		{name: "decrypt foreign name", input: "file.bin", decrypt: true, suffix: ".dec", want: "file.bin.dec"},
		{name: "explicit", input: "file", output: "elsewhere", want: "elsewhere"},
		{name: "decrypt without suffix", input: "dir/cipher", decrypt: true, want: filepath.Join("dir", "cipher")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := newConfig(tt.input, tt.decrypt)
			cfg.Output = tt.output
			cfg.Suffixes.Decrypt = tt.suffix

			assert.Equal(t, tt.want, logic.OutputPath(cfg))
		})
	}
}

func TestRunGenerate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "key")

	var stdout bytes.Buffer

	cfg := &config.Config{}

	require.NoError(t, logic.RunGenerate(cfg, path, &stdout))
	assert.Contains(t, stdout.String(), "Generated key")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, raw, 8)

	require.ErrorIs(t, logic.RunGenerate(cfg, path, &stdout), logic.ErrKeyFileExists)

	cfg.Force = true
	cfg.Hex = true
	cfg.Quiet = true

	stdout.Reset()
	require.NoError(t, logic.RunGenerate(cfg, path, &stdout))
	assert.Empty(t, stdout.String())

	text, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Len(t, text, 17)

	_, err = hex.DecodeString(string(text[:16]))
	require.NoError(t, err)
}

func TestRunGenerateStdout(t *testing.T) {
	t.Parallel()

	var stdout bytes.Buffer

	require.NoError(t, logic.RunGenerate(&config.Config{}, "", &stdout))

	key, err := hex.DecodeString(string(bytes.TrimSpace(stdout.Bytes())))
	require.NoError(t, err)
	assert.Len(t, key, 8)
}
