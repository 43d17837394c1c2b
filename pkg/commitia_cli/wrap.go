// pkg/commitia_cli/wrap.go

package commitia_cli

import (
	"context"

	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_err"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_io"
)

// Wrap gives a command a RuntimeContext with panic recovery, span and outcome logging.
func Wrap(fn func(rc *commitia_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}

		rc := commitia_io.NewContext(parent, cmd.Name())
		defer rc.End(&err)

		defer func() {
			if r := recover(); r != nil {
				err = cerr.AssertionFailedf("panic: %v", r)
				rc.Log.Error("Panic recovered", zap.Any("panic", r))
			}
		}()

		err = fn(rc, cmd, args)
		if err != nil && !commitia_err.IsExpectedUserError(err) {
			err = cerr.WithStack(commitia_err.ClassifyError(err, cmd.Name()))
		}
		return err
	}
}
