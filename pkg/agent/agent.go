// Package agent runs a fixed, sequential pipeline of model-backed tasks.
//
// It is deliberately small: agents carry a persona and tools, tasks carry
// instructions and may consume the outputs of earlier tasks, and a Crew runs
// the tasks in order.
package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/llm"
)

// Tool gathers input for an agent before its model call.
type Tool interface {
	Name() string
	Description() string
	Run(ctx context.Context) (string, error)
}

type Agent struct {
	Role      string
	Goal      string
	Backstory string
	Tools     []Tool
	Model     llm.Model
}

// SystemPrompt renders the agent persona.
func (a *Agent) SystemPrompt() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s.\n", a.Role)
	if a.Backstory != "" {
		sb.WriteString(strings.TrimSpace(a.Backstory))
		sb.WriteString("\n")
	}
	if a.Goal != "" {
		fmt.Fprintf(&sb, "\nYour personal goal is: %s\n", a.Goal)
	}
	if len(a.Tools) > 0 {
		sb.WriteString("\nYou were given the results of these tools:\n")
		for _, t := range a.Tools {
			fmt.Fprintf(&sb, "- %s: %s\n", t.Name(), t.Description())
		}
	}
	return sb.String()
}

type Task struct {
	Name           string
	Description    string
	ExpectedOutput string
	Agent          *Agent

	// Context lists earlier tasks whose outputs are included in this task's prompt.
	Context []*Task
}
