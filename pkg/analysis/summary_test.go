package analysis

import (
	"strings"
	"testing"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/git"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleChanges() []git.ChangeRecord {
	return []git.ChangeRecord{
		{FilePath: "README.md", Kind: git.Modified, LinesAdded: 3, LinesRemoved: 1, Diff: "@@\n+a\n+b\n+c\n-d\n"},
		{FilePath: "cmd/main.go", Kind: git.Added, LinesAdded: 10, Diff: "+x\n"},
		{FilePath: "docs/new.md", OldPath: "docs/old.md", Kind: git.Renamed},
		{FilePath: "Makefile", Kind: git.Deleted, LinesRemoved: 4, Diff: "-y\n"},
	}
}

func TestSummarizeGroupsByKind(t *testing.T) {
	s := Summarize(sampleChanges(), []string{"one", "two", "three", "four"}, DefaultLimits())

	assert.Equal(t, 4, s.TotalFiles)
	assert.Equal(t, 13, s.LinesAdded)
	assert.Equal(t, 5, s.LinesRemoved)
	assert.Len(t, s.FilesByType["modified"], 1)
	assert.Len(t, s.FilesByType["added"], 1)
	assert.Len(t, s.FilesByType["deleted"], 1)
	assert.Equal(t, "docs/old.md", s.FilesByType["renamed"][0].From)
	assert.Equal(t, 2, s.FileExtensions[".md"])
	assert.Equal(t, 1, s.FileExtensions["no-ext"])
	assert.Equal(t, []string{"one", "two", "three"}, s.RecentCommits)
	assert.Len(t, s.Diffs, 3)
}

func TestChangeLine(t *testing.T) {
	changes := sampleChanges()
	assert.Equal(t, "README.md (modified) - +3/-1 lines", ChangeLine(changes[0]))
	assert.Equal(t, "docs/new.md (renamed)", ChangeLine(changes[2]))
	assert.Equal(t, "Makefile (deleted) - +0/-4 lines", ChangeLine(changes[3]))
}

func TestSummarizeDiffBudgets(t *testing.T) {
	long := strings.Repeat("+line\n", 100)
	changes := []git.ChangeRecord{
		{FilePath: "a", Kind: git.Added, LinesAdded: 100, Diff: long},
		{FilePath: "b", Kind: git.Added, LinesAdded: 100, Diff: long},
		{FilePath: "c", Kind: git.Added, LinesAdded: 100, Diff: long},
	}

	s := Summarize(changes, nil, Limits{RecentCommits: 3, MaxDiffBytes: 60, MaxTotalDiffBytes: 96})

	require.Len(t, s.Diffs, 2)
	assert.True(t, s.Diffs[0].Truncated)
	assert.Equal(t, strings.Repeat("+line\n", 10), s.Diffs[0].Diff)
	assert.True(t, s.Diffs[1].Truncated)
	assert.Equal(t, strings.Repeat("+line\n", 6), s.Diffs[1].Diff)
	assert.Equal(t, 1, s.OmittedDiffs)
	assert.Empty(t, s.RecentCommits)
}

func TestTruncate(t *testing.T) {
	text, cut := truncate("short", 10)
	assert.Equal(t, "short", text)
	assert.False(t, cut)

	text, cut = truncate("héllo", 2)
	assert.Equal(t, "h", text)
	assert.True(t, cut)

	text, cut = truncate("ab\ncd\nef", 7)
	assert.Equal(t, "ab\ncd\n", text)
	assert.True(t, cut)
}

func TestRenderNoChanges(t *testing.T) {
	out, err := Summarize(nil, []string{"x"}, DefaultLimits()).Render()
	require.NoError(t, err)
	assert.Equal(t, NoChangesText, out)
}

func TestRenderYAML(t *testing.T) {
	out, err := Summarize(sampleChanges(), []string{"feat: start"}, DefaultLimits()).Render()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 4, doc["total_files"])
	assert.Contains(t, out, "README.md (modified) - +3/-1 lines")
	assert.Equal(t, []any{"feat: start"}, doc["recent_commits"])
}
