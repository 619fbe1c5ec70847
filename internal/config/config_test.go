package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Display.Currency = "£"
	cfg.Git.AutoCommit = true

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.AccountsFile, got.AccountsFile)
	assert.Equal(t, cfg.HistoryFile, got.HistoryFile)
	assert.Equal(t, "£", got.Display.Currency)
	assert.True(t, got.Git.AutoCommit)
	assert.Equal(t, cfg.Git.AuthorName, got.Git.AuthorName)
	assert.Equal(t, cfg.Git.AuthorEmail, got.Git.AuthorEmail)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "accounts.csv", cfg.AccountsFile)
	assert.Equal(t, "history.csv", cfg.HistoryFile)
	assert.Empty(t, cfg.Display.Currency)
	assert.False(t, cfg.Git.AutoCommit)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("display:\n  currency: \"$\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "$", cfg.Display.Currency)
	assert.Equal(t, "accounts.csv", cfg.AccountsFile)
	assert.Equal(t, "history.csv", cfg.HistoryFile)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, Default()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "accounts_file: accounts.csv")
	assert.Contains(t, contents, "history_file: history.csv")
	assert.Contains(t, contents, "auto_commit: false")
	assert.NotContains(t, contents, "data_dir")
}

func TestResolve_MissingConfigUsesDefaults(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvCurrency, "")
	t.Setenv(EnvAutoCommit, "")
	dir := t.TempDir()

	cfg, err := Resolve("", dir)
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dir, "accounts.csv"), cfg.AccountsPath())
	assert.Equal(t, filepath.Join(dir, "history.csv"), cfg.HistoryPath())
}

func TestResolve_ReadsConfigFromDataDir(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvCurrency, "")
	t.Setenv(EnvAutoCommit, "")
	dir := t.TempDir()

	cfg := Default()
	cfg.AccountsFile = "mine.csv"
	require.NoError(t, Save(filepath.Join(dir, FileName), cfg))

	got, err := Resolve("", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mine.csv"), got.AccountsPath())
}

func TestResolve_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)
	t.Setenv(EnvCurrency, "€")
	t.Setenv(EnvAutoCommit, "true")

	cfg, err := Resolve("", "")
	require.NoError(t, err)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "€", cfg.Display.Currency)
	assert.True(t, cfg.Git.AutoCommit)
}

func TestResolve_BadBool(t *testing.T) {
	t.Setenv(EnvDataDir, "")
	t.Setenv(EnvCurrency, "")
	t.Setenv(EnvAutoCommit, "sometimes")

	_, err := Resolve("", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvAutoCommit)
}

func TestAbsoluteFileNames(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "elsewhere.csv")
	cfg := Default()
	cfg.DataDir = "/data"
	cfg.HistoryFile = abs
	assert.Equal(t, abs, cfg.HistoryPath())
	assert.Equal(t, filepath.Join("/data", "accounts.csv"), cfg.AccountsPath())
}
