package logic_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/idelchi/filecrypt/internal/config"
	"github.com/idelchi/filecrypt/internal/encryption"
	"github.com/idelchi/filecrypt/internal/logic"
)

const testKey = "build-time-key-0"

func newConfig(dir string) *config.Config {
	return &config.Config{
		Key:       config.Key{String: testKey},
		Algorithm: "AES",
		Parallel:  2,
		LogLevel:  "info",
		Stats:     true,
		Input:     filepath.Join(dir, "plain.txt"),
		Output:    filepath.Join(dir, "plain.txt.enc"),
	}
}

func TestRunRoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := newConfig(dir)
	plaintext := []byte("api_key=12345\n")

	require.NoError(t, os.WriteFile(cfg.Input, plaintext, 0o600))

	var stats bytes.Buffer

	cfg.Mode = encryption.ModeEncrypt
	require.NoError(t, logic.Run(cfg, zerolog.Nop(), &stats))
	require.Contains(t, stats.String(), "Processed: 1")

	ciphertext, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	require.Len(t, ciphertext, 16)

	cfg.Mode = encryption.ModeDecrypt
	cfg.Input, cfg.Output = cfg.Output, filepath.Join(dir, "plain.dec")
	require.NoError(t, logic.Run(cfg, zerolog.Nop(), &stats))

	got, err := os.ReadFile(cfg.Output)
	require.NoError(t, err)
	require.Equal(t, plaintext, got)
}

func TestRunReportsKind(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := newConfig(dir)
	cfg.Mode = encryption.ModeDecrypt

	require.NoError(t, os.WriteFile(cfg.Input, []byte("not ciphertext"), 0o600))

	var logs, stats bytes.Buffer

	err := logic.Run(cfg, zerolog.New(&logs), &stats)
	require.ErrorIs(t, err, encryption.ErrCipherData)
	require.Contains(t, logs.String(), `"kind":"cipher data error"`)
	require.Contains(t, stats.String(), "Errors:    1")

	_, err = os.Stat(cfg.Output)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunPreserveTimestamps(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := newConfig(dir)
	cfg.Mode = encryption.ModeEncrypt
	cfg.PreserveTimestamps = true

	require.NoError(t, os.WriteFile(cfg.Input, []byte("x"), 0o600))

	modTime := time.Date(2021, time.March, 4, 5, 6, 7, 0, time.UTC)
	require.NoError(t, os.Chtimes(cfg.Input, modTime, modTime))

	require.NoError(t, logic.Run(cfg, zerolog.Nop(), &bytes.Buffer{}))

	info, err := os.Stat(cfg.Output)
	require.NoError(t, err)
	require.True(t, info.ModTime().Equal(modTime))
}

func TestRunKeyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := newConfig(dir)
	cfg.Mode = encryption.ModeEncrypt

	keyFile := filepath.Join(dir, "key")
	require.NoError(t, os.WriteFile(keyFile, []byte(testKey+"\n"), 0o600))
	require.NoError(t, os.WriteFile(cfg.Input, []byte("x"), 0o600))

	cfg.Key = config.Key{File: keyFile}
	require.NoError(t, logic.Run(cfg, zerolog.Nop(), &bytes.Buffer{}))

	require.NoError(t, encryption.Decrypt(testKey, cfg.Output, filepath.Join(dir, "check")))
}

func TestRunJobs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := newConfig(dir)
	cfg.Input, cfg.Output = "", ""
	cfg.Jobs = filepath.Join(dir, "jobs.jsonc")

	inputs := map[string][]byte{
		"a.json": []byte(`{"a":1}`),
		"b.json": bytes.Repeat([]byte("b"), 4096),
		"c.json": nil,
	}

	for name, data := range inputs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), data, 0o600))
	}

	manifest := `[
		// default transformation
		{"mode": "encrypt", "input": "a.json", "output": "a.json.enc"},
		{"mode": "encrypt", "input": "b.json", "output": "b.json.enc", "algorithm": "Twofish"},
		{"mode": "encrypt", "input": "c.json", "output": "c.json.enc", "algorithm": "Blowfish"},
	]`
	require.NoError(t, os.WriteFile(cfg.Jobs, []byte(manifest), 0o600))

	var stats bytes.Buffer

	require.NoError(t, logic.RunJobs(cfg, zerolog.Nop(), &stats))
	require.Contains(t, stats.String(), "Jobs:      3")
	require.Contains(t, stats.String(), "Processed: 3")

	for name, data := range inputs {
		algorithm := map[string]string{"a.json": "AES", "b.json": "Twofish", "c.json": "Blowfish"}[name]

		transformation, err := encryption.ParseTransformation(algorithm)
		require.NoError(t, err)

		out := filepath.Join(dir, name+".dec")
		require.NoError(t, encryption.New(transformation).Decrypt(testKey, filepath.Join(dir, name+".enc"), out),
			fmt.Sprintf("decrypting %s", name))

		got, err := os.ReadFile(out)
		require.NoError(t, err)
		require.Equal(t, len(data), len(got))
		require.True(t, bytes.Equal(data, got))
	}
}

func TestRunJobsContinuesAfterFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := newConfig(dir)
	cfg.Parallel = 1
	cfg.Jobs = filepath.Join(dir, "jobs.jsonc")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "present"), []byte("data"), 0o600))

	manifest := `[
		{"mode": "encrypt", "input": "missing", "output": "missing.enc"},
		{"mode": "encrypt", "input": "present", "output": "present.enc"}
	]`
	require.NoError(t, os.WriteFile(cfg.Jobs, []byte(manifest), 0o600))

	var stats bytes.Buffer

	err := logic.RunJobs(cfg, zerolog.Nop(), &stats)
	require.ErrorIs(t, err, encryption.ErrIO)
	require.Contains(t, stats.String(), "Processed: 1")
	require.Contains(t, stats.String(), "Errors:    1")

	_, err = os.Stat(filepath.Join(dir, "present.enc"))
	require.NoError(t, err)
}

func TestRunJobsKeepsKeySizePin(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := newConfig(dir)
	cfg.KeySize = 32
	cfg.Jobs = filepath.Join(dir, "jobs.jsonc")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a"), []byte("data"), 0o600))
	require.NoError(t, os.WriteFile(cfg.Jobs, []byte(`[
		{"mode": "encrypt", "input": "a", "output": "a.enc", "algorithm": "Twofish"}
	]`), 0o600))

	err := logic.RunJobs(cfg, zerolog.Nop(), &bytes.Buffer{})
	require.ErrorIs(t, err, encryption.ErrUnsupportedKeySize)

	_, err = os.Stat(filepath.Join(dir, "a.enc"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
