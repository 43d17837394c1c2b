package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_err"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenInvalidPath(t *testing.T) {
	_, err := Open(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Equal(t, commitia_err.CategoryGit, commitia_err.CategoryOf(err))
	assert.Contains(t, err.Error(), "not a valid git repository")
	assert.NotEmpty(t, commitia_err.Remediation(err))
}

func TestOpenFromSubdirectory(t *testing.T) {
	dir, _ := initRepo(t)
	sub := filepath.Join(dir, "nested", "deeper")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	r := openRepo(t, sub)
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	root, err := filepath.EvalSymlinks(r.Root())
	require.NoError(t, err)
	assert.Equal(t, resolved, root)
}

func TestRecentCommits(t *testing.T) {
	dir, repo := initRepo(t)
	for _, msg := range []string{"commit 1", "commit 2", "commit 3", "commit 4", "commit 5"} {
		writeFile(t, dir, "f.txt", msg+"\n")
		stage(t, repo, "f.txt")
		commitStaged(t, repo, msg+"\n\n")
	}

	r := openRepo(t, dir)
	recent, err := r.RecentCommits(3)
	require.NoError(t, err)
	assert.Equal(t, []string{"commit 5", "commit 4", "commit 3"}, recent)

	none, err := r.RecentCommits(0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestRecentCommitsEmptyRepository(t *testing.T) {
	dir, _ := initRepo(t)
	recent, err := openRepo(t, dir).RecentCommits(3)
	require.NoError(t, err)
	assert.NotNil(t, recent)
	assert.Empty(t, recent)
}

func TestBranch(t *testing.T) {
	dir, repo := initRepo(t)
	assert.Equal(t, "master", openRepo(t, dir).Branch())

	writeFile(t, dir, "a.txt", "a\n")
	stage(t, repo, "a.txt")
	commitStaged(t, repo, "initial")
	assert.Equal(t, "master", openRepo(t, dir).Branch())
}

func TestCommitWithAuthor(t *testing.T) {
	dir, repo := initRepo(t)
	writeFile(t, dir, "a.txt", "a\n")
	stage(t, repo, "a.txt")

	r := openRepo(t, dir)
	hash, err := r.Commit("feat: add a", testSignature())
	require.NoError(t, err)
	assert.Len(t, hash, 40)
	assert.True(t, r.HasCommits())

	recent, err := r.RecentCommits(1)
	require.NoError(t, err)
	assert.Equal(t, []string{"feat: add a"}, recent)

	staged, err := r.HasStagedChanges()
	require.NoError(t, err)
	assert.False(t, staged)
}

func isolateGitConfig(t *testing.T) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
}

func TestCommitUsesConfiguredIdentity(t *testing.T) {
	isolateGitConfig(t)
	dir, repo := initRepo(t)

	cfg, err := repo.Config()
	require.NoError(t, err)
	cfg.User.Name = "Repo Dev"
	cfg.User.Email = "repo@example.com"
	require.NoError(t, repo.SetConfig(cfg))

	writeFile(t, dir, "a.txt", "a\n")
	stage(t, repo, "a.txt")

	r := openRepo(t, dir)
	hash, err := r.Commit("chore: init", nil)
	require.NoError(t, err)

	c, err := repo.CommitObject(r.head.Hash)
	require.NoError(t, err)
	assert.Equal(t, hash, c.Hash.String())
	assert.Equal(t, "Repo Dev", c.Author.Name)
	assert.Equal(t, "repo@example.com", c.Author.Email)
}

func TestCommitWithoutIdentity(t *testing.T) {
	isolateGitConfig(t)
	dir, repo := initRepo(t)
	writeFile(t, dir, "a.txt", "a\n")
	stage(t, repo, "a.txt")

	_, err := openRepo(t, dir).Commit("chore: init", nil)
	require.Error(t, err)
	assert.Equal(t, commitia_err.CategoryGit, commitia_err.CategoryOf(err))
	assert.Contains(t, commitia_err.Remediation(err)[0], "user.name")
}

func TestCommitInvalidEmail(t *testing.T) {
	isolateGitConfig(t)
	dir, repo := initRepo(t)
	cfg, err := repo.Config()
	require.NoError(t, err)
	cfg.User.Name = "Repo Dev"
	cfg.User.Email = "not-an-email"
	require.NoError(t, repo.SetConfig(cfg))

	_, err = openRepo(t, dir).Identity()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid email address")
}

func TestCommitEmptyMessage(t *testing.T) {
	dir, _ := initRepo(t)
	_, err := openRepo(t, dir).Commit("  ", &object.Signature{Name: "a", Email: "a@b.c"})
	require.Error(t, err)
	assert.Equal(t, commitia_err.CategoryValidation, commitia_err.CategoryOf(err))
}
