/* cmd/root.go */

package cmd

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/commitia/cmd/generate"
	"github.com/CodeMonkeyCybersecurity/commitia/cmd/setup"
	"github.com/CodeMonkeyCybersecurity/commitia/cmd/status"
	"github.com/CodeMonkeyCybersecurity/commitia/cmd/telemetry"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_err"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/shared"
)

var registerOnce sync.Once

// RootCmd is the base command for commitia.
var RootCmd = &cobra.Command{
	Use:   "commitia",
	Short: "Generate commit messages for staged changes with an LLM",
	Long: `commitia analyzes the staged changes of a git repository and asks an
LLM to write a Conventional Commits message for them.

Run 'commitia setup' once to check your environment, then
'commitia generate' whenever you have staged changes.`,
	Version:       shared.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			commitia_err.SetDebugMode(true)
			logger.SetVerbose(true)
		}
	},
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	registerOnce.Do(func() {
		RootCmd.PersistentFlags().Bool("debug", false, "Print debug logs and error stack traces")

		for _, subCmd := range []*cobra.Command{
			generate.GenerateCmd,
			status.StatusCmd,
			setup.SetupCmd,
			telemetry.TelemetryCmd,
		} {
			RootCmd.AddCommand(subCmd)
		}
	})
}

// Execute runs the root command and returns the process exit code.
// SIGINT and SIGTERM cancel the command context.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	RegisterCommands()

	err := RootCmd.ExecuteContext(ctx)
	if err != nil {
		logger.L().Debug("CLI execution error", zap.Error(err))
		commitia_err.PrintError(os.Stderr, "commitia", err)
	}
	return commitia_err.GetExitCode(err)
}
