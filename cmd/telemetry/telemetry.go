// cmd/telemetry/telemetry.go

package telemetry

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_cli"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_err"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_io"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/telemetry"
)

var TelemetryCmd = NewTelemetryCmd()

func NewTelemetryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "telemetry [on|off|status]",
		Short: "Manage local telemetry collection",
		Long: `Manage local telemetry for commitia commands.

Spans are written to ~/.commitia/telemetry/telemetry.jsonl. Nothing is
sent to external servers.

Commands:
  on     - Enable telemetry collection
  off    - Disable telemetry collection
  status - Show telemetry status`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off", "status"},
		RunE:      commitia_cli.Wrap(runTelemetry),
	}
}

func runTelemetry(rc *commitia_io.RuntimeContext, cmd *cobra.Command, args []string) error {
	log := otelzap.Ctx(rc.Ctx)
	out := cmd.OutOrStdout()

	switch action := args[0]; action {
	case "on":
		if err := telemetry.Enable(); err != nil {
			log.Error("Failed to write telemetry toggle file", zap.Error(err))
			return err
		}
		fmt.Fprintf(out, "Telemetry enabled. Spans are written to %s\n", telemetry.FilePath())
	case "off":
		if err := telemetry.Disable(); err != nil {
			log.Error("Failed to remove telemetry toggle file", zap.Error(err))
			return err
		}
		fmt.Fprintln(out, "Telemetry disabled.")
	case "status":
		showStatus(cmd)
	default:
		log.Warn("Invalid telemetry argument", zap.String("arg", action))
		return commitia_err.NewExpectedError(
			commitia_err.NewValidationError("usage: telemetry [on|off|status]"))
	}
	return nil
}

func showStatus(cmd *cobra.Command) {
	out := cmd.OutOrStdout()

	if !telemetry.IsEnabled() {
		fmt.Fprintln(out, "Telemetry: disabled")
		fmt.Fprintln(out, "Enable with: commitia telemetry on")
		return
	}

	fmt.Fprintln(out, "Telemetry: enabled")
	fmt.Fprintf(out, "Data file: %s\n", telemetry.FilePath())
	if info, err := os.Stat(telemetry.FilePath()); err == nil {
		fmt.Fprintf(out, "Data size: %d bytes\n", info.Size())
	}
	fmt.Fprintf(out, "Anonymous id: %s\n", telemetry.AnonTelemetryID())
}
