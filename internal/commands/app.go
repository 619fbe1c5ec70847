package commands

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fintrack-dev/fintrack/internal/accounts"
	"github.com/fintrack-dev/fintrack/internal/config"
	"github.com/fintrack-dev/fintrack/internal/gitops"
	"github.com/fintrack-dev/fintrack/internal/history"
	"github.com/fintrack-dev/fintrack/internal/render"
	"github.com/fintrack-dev/fintrack/internal/session"
)

// app is the state a subcommand works against: resolved config, an open
// session and the output writer.
type app struct {
	cfg     *config.Config
	session *session.Session
	out     io.Writer
	format  render.Formatter
}

func openApp(cmd *cobra.Command, opts *globalOptions) (*app, error) {
	cfg, err := config.Resolve(opts.configPath, opts.dataDir)
	if err != nil {
		return nil, err
	}
	slog.Debug("config resolved", "data_dir", cfg.DataDir, "accounts", cfg.AccountsPath(), "history", cfg.HistoryPath())

	sess, err := session.Open(
		accounts.NewFileStore(cfg.AccountsPath()),
		history.NewFileStore(cfg.HistoryPath()),
	)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:     cfg,
		session: sess,
		out:     cmd.OutOrStdout(),
		format:  render.Formatter{Currency: cfg.Display.Currency},
	}, nil
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// commit records a saved change in git when auto-commit is enabled. The
// change is already on disk, so a failed commit is only logged.
func (a *app) commit(message string, paths ...string) {
	if !a.cfg.Git.AutoCommit {
		return
	}
	repo := gitops.Repo{Dir: a.cfg.DataDir, AuthorName: a.cfg.Git.AuthorName, AuthorEmail: a.cfg.Git.AuthorEmail}
	if !repo.IsRepo() {
		slog.Warn("auto-commit enabled but data dir is not a git repository", "data_dir", a.cfg.DataDir)
		return
	}
	hash, err := repo.Commit(message, paths...)
	if err != nil {
		slog.Warn("auto-commit failed", "error", err)
		return
	}
	if hash != "" {
		slog.Debug("committed", "hash", hash, "message", message)
	}
}
