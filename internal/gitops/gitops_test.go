package gitops

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRepo(t *testing.T) Repo {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	return Repo{Dir: t.TempDir(), AuthorName: "Test Author", AuthorEmail: "test@example.com"}
}

func TestInit(t *testing.T) {
	repo := testRepo(t)
	require.NoError(t, repo.Init())

	_, err := os.Stat(filepath.Join(repo.Dir, ".git"))
	require.NoError(t, err, ".git directory should exist")
}

func TestIsRepo(t *testing.T) {
	repo := testRepo(t)
	assert.False(t, repo.IsRepo(), "empty dir should not be a repo")

	require.NoError(t, repo.Init())
	assert.True(t, repo.IsRepo(), "initialized dir should be a repo")
}

func TestCommit(t *testing.T) {
	repo := testRepo(t)
	require.NoError(t, repo.Init())

	path := filepath.Join(repo.Dir, "accounts.csv")
	require.NoError(t, os.WriteFile(path, []byte("Everyday,Monzo,100,0,Current\n"), 0o644))

	hash, err := repo.Commit("account: add Everyday", path)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)

	log := exec.Command("git", "log", "--format=%s", "-1")
	log.Dir = repo.Dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "account: add Everyday")

	authorLog := exec.Command("git", "log", "--format=%an <%ae>", "-1")
	authorLog.Dir = repo.Dir
	out, err = authorLog.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "Test Author <test@example.com>")
}

func TestCommit_NothingToCommit(t *testing.T) {
	repo := testRepo(t)
	require.NoError(t, repo.Init())

	require.NoError(t, os.WriteFile(filepath.Join(repo.Dir, "history.csv"), nil, 0o644))
	_, err := repo.Commit("init")
	require.NoError(t, err)

	hash, err := repo.Commit("again")
	require.NoError(t, err)
	assert.Empty(t, hash)
}

func TestCommit_OnlyNamedPaths(t *testing.T) {
	repo := testRepo(t)
	require.NoError(t, repo.Init())

	tracked := filepath.Join(repo.Dir, "accounts.csv")
	require.NoError(t, os.WriteFile(tracked, []byte("a\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(repo.Dir, "scratch.txt"), []byte("x"), 0o644))

	_, err := repo.Commit("account: add a", tracked)
	require.NoError(t, err)

	ls := exec.Command("git", "ls-files")
	ls.Dir = repo.Dir
	out, err := ls.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "accounts.csv")
	assert.NotContains(t, string(out), "scratch.txt")
}
