package commitmsg

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/analysis"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/git"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/llm"
)

type fakeSource struct {
	changes []git.ChangeRecord
	recent  []string
	err     error
	asked   int
}

func (f *fakeSource) StagedChanges() ([]git.ChangeRecord, error) { return f.changes, f.err }

func (f *fakeSource) RecentCommits(count int) ([]string, error) {
	f.asked = count
	return f.recent, nil
}

type recordingModel struct {
	replies  []string
	requests []llm.Request
}

func (m *recordingModel) Name() string { return "recording" }

func (m *recordingModel) Generate(_ context.Context, req llm.Request) (llm.Response, error) {
	m.requests = append(m.requests, req)
	return llm.Response{Text: m.replies[len(m.requests)-1]}, nil
}

func TestGitAnalysisTool(t *testing.T) {
	src := &fakeSource{
		changes: []git.ChangeRecord{{FilePath: "main.go", Kind: git.Modified, LinesAdded: 2, LinesRemoved: 1, Diff: "+a\n+b\n-c\n"}},
		recent:  []string{"feat: start"},
	}
	tool := &GitAnalysisTool{Source: src, Limits: analysis.DefaultLimits()}

	out, err := tool.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "git_analysis", tool.Name())
	assert.Equal(t, 3, src.asked)
	assert.Contains(t, out, "main.go (modified) - +2/-1 lines")
	assert.Contains(t, out, "feat: start")
}

func TestGitAnalysisToolNoChanges(t *testing.T) {
	tool := &GitAnalysisTool{Source: &fakeSource{}, Limits: analysis.DefaultLimits()}
	out, err := tool.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, analysis.NoChangesText, out)
}

func TestGitAnalysisToolError(t *testing.T) {
	tool := &GitAnalysisTool{Source: &fakeSource{err: errors.New("index unreadable")}}
	_, err := tool.Run(context.Background())
	assert.ErrorContains(t, err, "index unreadable")
}

func TestNewCrewPipeline(t *testing.T) {
	src := &fakeSource{changes: []git.ChangeRecord{{FilePath: "README.md", Kind: git.Added, LinesAdded: 1, Diff: "+hi\n"}}}
	model := &recordingModel{replies: []string{"Docs were added.", "docs: add readme"}}

	crew := NewCrew(model, src, Options{Limits: analysis.DefaultLimits()})
	require.Len(t, crew.Tasks, 2)
	assert.Equal(t, AnalysisTaskName, crew.Tasks[0].Name)
	assert.Equal(t, crew.Tasks[0], crew.Tasks[1].Context[0])

	result, err := crew.Kickoff(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "docs: add readme", result.Output)

	require.Len(t, model.requests, 2)
	assert.Contains(t, model.requests[0].System, analystRole)
	assert.Contains(t, model.requests[0].Prompt, "README.md (added) - +1/-0 lines")
	assert.Contains(t, model.requests[1].System, specialistRole)
	assert.Contains(t, model.requests[1].Prompt, "Docs were added.")
	assert.Contains(t, model.requests[1].Prompt, "Return ONLY the commit message")
}
