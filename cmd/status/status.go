// cmd/status/status.go

package status

import (
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_cli"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_io"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/display"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/git"
)

// RecentCommitCount is how many commits the report lists.
const RecentCommitCount = 3

var StatusCmd = NewStatusCmd()

func NewStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show staged changes and recent commits",
		Long: `Show the current branch, the staged files with their change code and
line counts, whether unstaged changes exist, and the last three commits.`,
		Args: cobra.NoArgs,
		RunE: commitia_cli.Wrap(runStatus),
	}
	cli.AddStringFlag(cmd, "repo-path", "r", ".", "Path to the git repository")
	return cmd
}

func runStatus(rc *commitia_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	log := otelzap.Ctx(rc.Ctx)

	repo, err := git.Open(rc.Ctx, cli.GetString(cmd, "repo-path"))
	if err != nil {
		return err
	}

	changes, err := repo.StagedChanges()
	if err != nil {
		return err
	}
	unstaged, err := repo.HasUnstagedChanges()
	if err != nil {
		return err
	}
	recent, err := repo.RecentCommits(RecentCommitCount)
	if err != nil {
		return err
	}

	report := display.StatusReport{
		Branch:   repo.Branch(),
		Unstaged: unstaged,
		Recent:   recent,
	}
	for _, c := range changes {
		report.Staged = append(report.Staged, display.StagedFile{
			Path:    c.FilePath,
			Code:    c.Kind.Code(),
			Added:   c.LinesAdded,
			Removed: c.LinesRemoved,
		})
	}

	log.Debug("Repository status collected",
		zap.Int("staged", len(report.Staged)),
		zap.Bool("unstaged", unstaged),
		zap.Int("recent", len(recent)))

	display.Status(cmd.OutOrStdout(), report)
	return nil
}
