// Package commitmsg builds the analyze → generate pipeline that writes a
// Conventional Commits message, and cleans and checks what the model returns.
package commitmsg

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/agent"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/analysis"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/git"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/llm"
)

const (
	AnalysisTaskName   = "analyze_changes"
	GenerationTaskName = "generate_commit_message"
)

// ChangeSource is the part of *git.Repository the analysis tool reads.
type ChangeSource interface {
	StagedChanges() ([]git.ChangeRecord, error)
	RecentCommits(count int) ([]string, error)
}

// GitAnalysisTool renders the staged changes and recent history as a summary.
type GitAnalysisTool struct {
	Source ChangeSource
	Limits analysis.Limits
}

func (t *GitAnalysisTool) Name() string { return "git_analysis" }

func (t *GitAnalysisTool) Description() string {
	return "Analyzes staged changes in the Git repository and returns detailed information"
}

func (t *GitAnalysisTool) Run(_ context.Context) (string, error) {
	changes, err := t.Source.StagedChanges()
	if err != nil {
		return "", err
	}
	recent, err := t.Source.RecentCommits(t.Limits.RecentCommits)
	if err != nil {
		return "", err
	}
	return analysis.Summarize(changes, recent, t.Limits).Render()
}

type Options struct {
	Verbose bool
	Limits  analysis.Limits
}

// NewCrew wires the code analyst and the commit specialist. The generation
// task receives the analysis output as context.
func NewCrew(model llm.Model, src ChangeSource, opts Options) *agent.Crew {
	analyst := &agent.Agent{
		Role:      analystRole,
		Goal:      analystGoal,
		Backstory: analystBackstory,
		Tools:     []agent.Tool{&GitAnalysisTool{Source: src, Limits: opts.Limits}},
		Model:     model,
	}
	specialist := &agent.Agent{
		Role:      specialistRole,
		Goal:      specialistGoal,
		Backstory: specialistBackstory,
		Model:     model,
	}

	analysisTask := &agent.Task{
		Name:           AnalysisTaskName,
		Description:    analysisDescription,
		ExpectedOutput: analysisExpectedOutput,
		Agent:          analyst,
	}
	generationTask := &agent.Task{
		Name:           GenerationTaskName,
		Description:    generationDescription,
		ExpectedOutput: generationExpectedOutput,
		Agent:          specialist,
		Context:        []*agent.Task{analysisTask},
	}

	return &agent.Crew{
		Tasks:   []*agent.Task{analysisTask, generationTask},
		Verbose: opts.Verbose,
	}
}
