package commands

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/accounts"
	"github.com/fintrack-dev/fintrack/internal/config"
	"github.com/fintrack-dev/fintrack/internal/csvfile"
	"github.com/fintrack-dev/fintrack/internal/gitops"
	"github.com/fintrack-dev/fintrack/internal/history"
)

type initOptions struct {
	sample   bool
	git      bool
	currency string
}

func newInitCommand(global *globalOptions) *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create a data directory with empty account and history files",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := global.dataDir
			if len(args) > 0 {
				dir = args[0]
			}
			if dir == "" {
				dir = "."
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.OutOrStdout(), absDir, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.sample, "sample", false, "seed accounts.csv with one sample account of each type")
	cmd.Flags().BoolVar(&opts.git, "git", false, "initialize a git repository and commit changes automatically")
	cmd.Flags().StringVar(&opts.currency, "currency", "", "currency symbol shown before amounts")

	return cmd
}

func runInit(out io.Writer, dir string, opts initOptions) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	// Write fintrack.yaml.
	cfg := config.Default()
	cfg.Display.Currency = opts.currency
	cfg.Git.AutoCommit = opts.git
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	cfg.DataDir = dir

	// Write accounts.csv, keeping any accounts already there.
	acctStore := accounts.NewFileStore(cfg.AccountsPath())
	existing, err := acctStore.Load()
	if err != nil {
		return fmt.Errorf("reading accounts: %w", err)
	}
	if opts.sample && len(existing) == 0 {
		if err := acctStore.Rewrite(accounts.SampleAccounts()); err != nil {
			return fmt.Errorf("writing sample accounts: %w", err)
		}
	}

	// Write history.csv.
	if err := csvfile.Touch(cfg.HistoryPath()); err != nil {
		return fmt.Errorf("creating %s: %w", history.FileName, err)
	}

	if opts.git {
		repo := gitops.Repo{Dir: dir, AuthorName: cfg.Git.AuthorName, AuthorEmail: cfg.Git.AuthorEmail}
		if !repo.IsRepo() {
			if err := repo.Init(); err != nil {
				return fmt.Errorf("git init: %w", err)
			}
		}
		hash, err := repo.Commit("init: fintrack data", cfgPath, cfg.AccountsPath(), cfg.HistoryPath())
		if err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
		fmt.Fprintf(out, "Initialized fintrack data at %s (%s)\n", dir, hash)
		return nil
	}

	fmt.Fprintf(out, "Initialized fintrack data at %s\n", dir)
	return nil
}
