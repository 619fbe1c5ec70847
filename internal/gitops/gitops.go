// Package gitops versions the data directory with git so every saved change
// to the CSV files becomes a commit.
package gitops

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Repo is a git working tree holding fintrack data.
type Repo struct {
	Dir         string
	AuthorName  string
	AuthorEmail string
}

// Init initializes a new git repository at r.Dir.
func (r Repo) Init() error {
	if out, err := r.git("init").CombinedOutput(); err != nil {
		return fmt.Errorf("git init: %s: %w", out, err)
	}
	return nil
}

// IsRepo reports whether r.Dir is inside a git work tree.
func (r Repo) IsRepo() bool {
	out, err := r.git("rev-parse", "--is-inside-work-tree").Output()
	return err == nil && strings.TrimSpace(string(out)) == "true"
}

// Commit stages paths (all changes when none are given) and commits them.
// It returns the short hash, or "" when there was nothing to commit.
func (r Repo) Commit(message string, paths ...string) (string, error) {
	args := []string{"add", "-A", "--"}
	if len(paths) == 0 {
		args = append(args, ".")
	}
	for _, p := range paths {
		rel, err := filepath.Rel(r.Dir, p)
		if err != nil {
			rel = p
		}
		args = append(args, rel)
	}
	if out, err := r.git(args...).CombinedOutput(); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	// diff --cached --quiet exits 1 when something is staged.
	err := r.git("diff", "--cached", "--quiet").Run()
	if err == nil {
		return "", nil
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 1 {
		return "", fmt.Errorf("git diff: %w", err)
	}

	author := fmt.Sprintf("%s <%s>", r.AuthorName, r.AuthorEmail)
	commit := r.git("-c", "user.name="+r.AuthorName, "-c", "user.email="+r.AuthorEmail,
		"commit", "-m", message, "--author", author)
	if out, err := commit.CombinedOutput(); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}

	out, err := r.git("rev-parse", "--short", "HEAD").Output()
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func (r Repo) git(args ...string) *exec.Cmd {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	return cmd
}
