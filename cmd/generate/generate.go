// cmd/generate/generate.go

package generate

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_cli"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_err"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_io"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitmsg"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/config"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/display"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/git"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/interaction"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/llm"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/logger"
)

// Swapped in tests.
var (
	newModel = func(cfg llm.Config) (llm.Model, error) { return llm.NewGemini(cfg) }

	stdin       io.Reader = os.Stdin
	interactive           = interaction.Interactive
)

var GenerateCmd = NewGenerateCmd()

// NewGenerateCmd builds the generate command with its flags.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a commit message for the staged changes",
		Long: `Analyze the staged changes of a git repository and generate a
Conventional Commits message with an LLM.

The message is printed between separator lines. With --auto-commit the
commit is created straight away; otherwise you are asked to confirm when
running on a terminal.

Examples:
  commitia generate
  commitia generate -c
  commitia generate -v -r ../other-repo`,
		Args: cobra.NoArgs,
		RunE: commitia_cli.Wrap(runGenerate),
	}

	cli.AddBoolFlag(cmd, "auto-commit", "c", false, "Commit automatically after generating the message")
	cli.AddBoolFlag(cmd, "verbose", "v", false, "Show each pipeline stage and debug logs")
	cli.AddStringFlag(cmd, "repo-path", "r", ".", "Path to the git repository")
	return cmd
}

func runGenerate(rc *commitia_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	log := otelzap.Ctx(rc.Ctx)
	out := cmd.OutOrStdout()

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		logger.SetVerbose(true)
	}

	log.Info("terminal prompt: Analyzing git repository...")

	repo, err := git.Open(rc.Ctx, cli.GetString(cmd, "repo-path"))
	if err != nil {
		return err
	}

	staged, err := repo.HasStagedChanges()
	if err != nil {
		return err
	}
	if !staged {
		return reportNothingStaged(rc, repo)
	}

	cfg, err := config.Load(config.Options{
		RepoRoot: repo.Root(),
		Flags:    cmd.Flags(),
		Log:      rc.Log,
	})
	if err != nil {
		return err
	}
	if cfg.Verbose {
		logger.SetVerbose(true)
	}
	if err := cfg.RequireCredential(); err != nil {
		return err
	}

	model, err := newModel(cfg.LLM())
	if err != nil {
		return err
	}
	rc.Attributes["model"] = model.Name()

	log.Info("terminal prompt: Generating commit message with AI...")

	crew := commitmsg.NewCrew(model, repo, commitmsg.Options{
		Verbose: cfg.Verbose,
		Limits:  cfg.Limits(),
	})
	result, err := crew.Kickoff(rc.Ctx)
	if err != nil {
		return pipelineError(err)
	}
	log.Debug("Pipeline finished", zap.Int("tokens_used", result.TokensUsed))

	message := commitmsg.Clean(result.Output)
	if message == "" {
		return commitia_err.NewPipelineError("model returned an empty commit message", nil)
	}
	if verr := commitmsg.Validate(message); verr != nil {
		log.Warn("Generated message does not follow Conventional Commits", zap.Error(verr))
	}

	display.Message(out, message)

	if !cfg.AutoCommit {
		ok, err := confirmCommit(rc, repo)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "Message kept. Run 'git commit -m %q' to commit manually.\n", message)
			return nil
		}
	}

	hash, err := repo.Commit(message, nil)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Commit created: %s\n", shortHash(hash))
	return nil
}

func reportNothingStaged(rc *commitia_io.RuntimeContext, repo *git.Repository) error {
	log := otelzap.Ctx(rc.Ctx)

	unstaged, err := repo.HasUnstagedChanges()
	if err != nil {
		return err
	}
	if unstaged {
		log.Info("terminal prompt: There are unstaged changes. Run 'git add' first.")
	} else {
		log.Info("terminal prompt: No changes to commit.")
	}
	return nil
}

// confirmCommit shows the safety warnings and asks before committing.
// Without a terminal nothing is committed.
func confirmCommit(rc *commitia_io.RuntimeContext, repo *git.Repository) (bool, error) {
	log := otelzap.Ctx(rc.Ctx)

	if !interactive() {
		log.Debug("Not a terminal, skipping commit confirmation")
		return false, nil
	}

	changes, err := repo.StagedChanges()
	if err != nil {
		return false, err
	}
	report := git.CheckSafety(repo.Branch(), changes)
	if report.ProtectedBranch {
		log.Warn("Committing to protected branch", zap.String("branch", report.Branch))
	}
	if len(report.Artifacts) > 0 {
		log.Warn("Potential build artifacts staged", zap.Strings("files", report.Artifacts))
	}

	return interaction.Confirm(rc.Ctx, stdin, "Commit with this message?", false)
}

func pipelineError(cause error) error {
	err := commitia_err.NewPipelineError("failed to generate commit message", cause)
	switch {
	case llm.IsAuthError(cause):
		return commitia_err.WrapWithHint(err, "Check that GOOGLE_API_KEY is valid and enabled for the Gemini API")
	case llm.IsRateLimitError(cause):
		return commitia_err.WrapWithHint(err, "Wait a minute and try again, or lower requests_per_minute in the config file")
	}
	return err
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}
