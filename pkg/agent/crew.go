package agent

import (
	"context"
	"fmt"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/llm"
)

const contextSeparator = "\n\n----------\n\n"

// Crew runs its tasks sequentially. When Verbose is set each stage is echoed
// to the terminal through the context logger.
type Crew struct {
	Tasks   []*Task
	Verbose bool
}

type TaskOutput struct {
	Task       string
	Agent      string
	Output     string
	TokensUsed int
}

// Result holds the final task output and every intermediate one.
type Result struct {
	Output     string
	Outputs    []TaskOutput
	TokensUsed int
}

func (c *Crew) validate() error {
	if len(c.Tasks) == 0 {
		return cerr.New("crew has no tasks")
	}
	seen := make(map[*Task]bool, len(c.Tasks))
	for i, t := range c.Tasks {
		if t == nil {
			return cerr.Newf("task %d is nil", i)
		}
		if t.Agent == nil || t.Agent.Model == nil {
			return cerr.Newf("task %q has no agent model", t.Name)
		}
		for _, dep := range t.Context {
			if !seen[dep] {
				return cerr.Newf("task %q uses context from a task that does not run before it", t.Name)
			}
		}
		seen[t] = true
	}
	return nil
}

// Kickoff runs every task in order. The first failure stops the pipeline.
func (c *Crew) Kickoff(ctx context.Context) (*Result, error) {
	log := otelzap.Ctx(ctx)

	if err := c.validate(); err != nil {
		return nil, cerr.WithStack(err)
	}

	outputs := make(map[*Task]string, len(c.Tasks))
	result := &Result{}

	for i, t := range c.Tasks {
		if err := ctx.Err(); err != nil {
			return nil, cerr.Wrapf(err, "task %q", t.Name)
		}

		log.Debug("Starting task",
			zap.Int("step", i+1),
			zap.String("task", t.Name),
			zap.String("agent", t.Agent.Role))
		if c.Verbose {
			log.Info(fmt.Sprintf("terminal prompt: [%d/%d] %s: %s", i+1, len(c.Tasks), t.Agent.Role, t.Name))
		}

		toolResults, err := runTools(ctx, t)
		if err != nil {
			return nil, err
		}

		contextOutputs := make([]string, 0, len(t.Context))
		for _, dep := range t.Context {
			contextOutputs = append(contextOutputs, outputs[dep])
		}

		resp, err := t.Agent.Model.Generate(ctx, llm.Request{
			System: t.Agent.SystemPrompt(),
			Prompt: composePrompt(t, contextOutputs, toolResults),
		})
		if err != nil {
			return nil, cerr.Wrapf(err, "task %q", t.Name)
		}

		text := strings.TrimSpace(resp.Text)
		if text == "" {
			return nil, cerr.Newf("task %q produced no output", t.Name)
		}

		outputs[t] = text
		result.Outputs = append(result.Outputs, TaskOutput{
			Task:       t.Name,
			Agent:      t.Agent.Role,
			Output:     text,
			TokensUsed: resp.TokensUsed,
		})
		result.TokensUsed += resp.TokensUsed

		if c.Verbose {
			log.Info("terminal prompt:", zap.String("output", text))
		}
	}

	result.Output = result.Outputs[len(result.Outputs)-1].Output
	log.Debug("Crew finished",
		zap.Int("tasks", len(c.Tasks)),
		zap.Int("tokens_used", result.TokensUsed))

	return result, nil
}

type toolResult struct {
	name   string
	output string
}

func runTools(ctx context.Context, t *Task) ([]toolResult, error) {
	results := make([]toolResult, 0, len(t.Agent.Tools))
	for _, tool := range t.Agent.Tools {
		out, err := tool.Run(ctx)
		if err != nil {
			return nil, cerr.Wrapf(err, "task %q: tool %s", t.Name, tool.Name())
		}
		results = append(results, toolResult{name: tool.Name(), output: out})
	}
	return results, nil
}

func composePrompt(t *Task, contextOutputs []string, tools []toolResult) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(t.Description))

	if t.ExpectedOutput != "" {
		fmt.Fprintf(&sb, "\n\nThis is the expected criteria for your final answer: %s\n", t.ExpectedOutput)
		sb.WriteString("You MUST return the actual complete content as the final answer, not a summary.")
	}

	if len(contextOutputs) > 0 {
		sb.WriteString("\n\nThis is the context you're working with:\n")
		sb.WriteString(strings.Join(contextOutputs, contextSeparator))
	}

	for _, tr := range tools {
		fmt.Fprintf(&sb, "\n\nTool: %s\nResult:\n%s", tr.name, tr.output)
	}

	return sb.String()
}
