package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the data directory.
const FileName = "fintrack.yaml"

// Environment overrides, read after .env is loaded.
const (
	EnvDataDir    = "FINTRACK_DATA_DIR"
	EnvCurrency   = "FINTRACK_CURRENCY"
	EnvAutoCommit = "FINTRACK_GIT_AUTO_COMMIT"
)

// Config represents the top-level fintrack.yaml configuration.
type Config struct {
	DataDir      string        `yaml:"data_dir,omitempty"`
	AccountsFile string        `yaml:"accounts_file"`
	HistoryFile  string        `yaml:"history_file"`
	Display      DisplayConfig `yaml:"display"`
	Git          GitConfig     `yaml:"git"`
}

// DisplayConfig controls how amounts are printed.
type DisplayConfig struct {
	Currency string `yaml:"currency,omitempty"` // symbol prefix, e.g. "£"
}

// GitConfig controls git integration of the data directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a fintrack.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config that keeps both CSV files in the working directory.
func Default() *Config {
	return &Config{
		AccountsFile: "accounts.csv",
		HistoryFile:  "history.csv",
		Git: GitConfig{
			AutoCommit:  false,
			AuthorName:  "fintrack",
			AuthorEmail: "fintrack@localhost",
		},
	}
}

// Resolve builds the effective config: .env is loaded if present, the
// config file is read from path (or from dataDir/fintrack.yaml when path is
// empty), and environment variables are applied on top. A missing config
// file is not an error. A non-empty dataDir wins over everything else.
func Resolve(path, dataDir string) (*Config, error) {
	_ = godotenv.Load()

	if dataDir == "" {
		dataDir = os.Getenv(EnvDataDir)
	}
	if path == "" {
		path = filepath.Join(dataDir, FileName)
	}

	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = Default()
	} else if err != nil {
		return nil, err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Dir(path)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		cfg.Display.Currency = v
	}
	if v := os.Getenv(EnvAutoCommit); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", EnvAutoCommit, v, err)
		}
		cfg.Git.AutoCommit = b
	}
	return nil
}

// AccountsPath returns the accounts file path. Relative file names are
// resolved against the data directory.
func (c *Config) AccountsPath() string {
	return c.resolve(c.AccountsFile)
}

// HistoryPath returns the history file path.
func (c *Config) HistoryPath() string {
	return c.resolve(c.HistoryFile)
}

func (c *Config) resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}
