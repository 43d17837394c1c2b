// cmd/setup/setup.go
package setup

import (
	"fmt"
	"io"

	cerr "github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_cli"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_err"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_io"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/config"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/display"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/git"
)

// SetupCmd represents the setup command
var SetupCmd = NewSetupCmd()

func NewSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Check that commitia is ready to use",
		Long: `Setup verifies that the current directory is a git repository and that
a model API key is configured. Every check is reported with a hint on how
to fix it. Exits non-zero when any check fails.

The git identity used for commits is also reported, but a missing
identity does not fail setup.`,
		Args: cobra.NoArgs,
		RunE: commitia_cli.Wrap(runSetup),
	}
}

func runSetup(rc *commitia_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	log := otelzap.Ctx(rc.Ctx)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Checking configuration...")

	var result *multierror.Error

	repo, err := git.Open(rc.Ctx, ".")
	if err != nil {
		display.Check(out, false, "Not inside a git repository", commitia_err.Remediation(err)...)
		result = multierror.Append(result, err)
	} else {
		display.Check(out, true, "Git repository found: "+repo.Root())
	}

	if err := checkCredential(rc, out, repo); err != nil {
		result = multierror.Append(result, err)
	}

	if repo != nil {
		checkIdentity(out, repo)
	}

	if err := result.ErrorOrNil(); err != nil {
		log.Warn("Setup checks failed", zap.Int("failed", len(result.Errors)))
		return commitia_err.NewExpectedError(cerr.Wrap(err, "setup checks failed"))
	}

	fmt.Fprintln(out, "Configuration OK! Use 'commitia generate' to get started.")
	return nil
}

func checkCredential(rc *commitia_io.RuntimeContext, out io.Writer, repo *git.Repository) error {
	opts := config.Options{Log: rc.Log}
	if repo != nil {
		opts.RepoRoot = repo.Root()
	}

	cfg, err := config.Load(opts)
	if err != nil {
		display.Check(out, false, "Configuration could not be loaded", commitia_err.Remediation(err)...)
		return err
	}
	if cfg.File != "" {
		display.Check(out, true, "Config file: "+cfg.File)
	}

	if err := cfg.RequireCredential(); err != nil {
		display.Check(out, false, "GOOGLE_API_KEY not found", commitia_err.Remediation(err)...)
		return err
	}
	display.Check(out, true, "GOOGLE_API_KEY configured")
	return nil
}

func checkIdentity(out io.Writer, repo *git.Repository) {
	sig, err := repo.Identity()
	if err != nil {
		display.Check(out, false, "Git identity not configured (needed to commit)", commitia_err.Remediation(err)...)
		return
	}
	display.Check(out, true, fmt.Sprintf("Git identity: %s <%s>", sig.Name, sig.Email))
}
