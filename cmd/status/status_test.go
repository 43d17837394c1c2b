package status

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_err"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewStatusCmd()
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestStatusReport(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	sig := &object.Signature{Name: "Test Dev", Email: "dev@example.com", When: time.Now()}
	for _, msg := range []string{"chore: one", "chore: two", "chore: three", "feat: four"} {
		write(t, dir, "log.txt", msg+"\n")
		_, err = wt.Add("log.txt")
		require.NoError(t, err)
		_, err = wt.Commit(msg, &gogit.CommitOptions{Author: sig})
		require.NoError(t, err)
	}

	write(t, dir, "new.txt", "a\nb\n")
	_, err = wt.Add("new.txt")
	require.NoError(t, err)
	write(t, dir, "log.txt", "dirty\n")

	out, err := run(t, "-r", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Branch: master\n")
	assert.Contains(t, out, "Staged changes: 1 file(s)\n")
	assert.Contains(t, out, "   A new.txt (+2/-0)\n")
	assert.Contains(t, out, "Unstaged changes present\n")
	assert.Contains(t, out, "   1. feat: four\n")
	assert.Contains(t, out, "   3. chore: two\n")
	assert.NotContains(t, out, "chore: one")
}

func TestStatusEmptyRepository(t *testing.T) {
	dir := t.TempDir()
	_, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	out, err := run(t, "--repo-path", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No staged changes")
	assert.NotContains(t, out, "Recent commits")
}

func TestStatusInvalidRepository(t *testing.T) {
	_, err := run(t, "-r", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, commitia_err.CategoryGit, commitia_err.CategoryOf(err))
}
