package commitia_cli

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_err"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_io"
)

func newCmd(t *testing.T) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "probe"}
	cmd.SetContext(context.Background())
	return cmd
}

func TestWrapPassesRuntimeContext(t *testing.T) {
	var seen *commitia_io.RuntimeContext
	run := Wrap(func(rc *commitia_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		seen = rc
		assert.Equal(t, []string{"x"}, args)
		return nil
	})

	require.NoError(t, run(newCmd(t), []string{"x"}))
	require.NotNil(t, seen)
	assert.Equal(t, "probe", seen.Command)
}

func TestWrapRecoversPanics(t *testing.T) {
	run := Wrap(func(*commitia_io.RuntimeContext, *cobra.Command, []string) error {
		panic("boom")
	})

	err := run(newCmd(t), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic: boom")
}

func TestWrapKeepsErrorClassification(t *testing.T) {
	cause := commitia_err.NewConfigError("no key", nil)
	run := Wrap(func(*commitia_io.RuntimeContext, *cobra.Command, []string) error {
		return cause
	})

	err := run(newCmd(t), nil)
	require.Error(t, err)
	assert.Equal(t, commitia_err.CategoryConfig, commitia_err.CategoryOf(err))
	assert.Equal(t, 1, commitia_err.GetExitCode(err))
}

func TestWrapLeavesUserErrorsAlone(t *testing.T) {
	cause := commitia_err.NewExpectedError(errors.New("nothing staged"))
	run := Wrap(func(*commitia_io.RuntimeContext, *cobra.Command, []string) error {
		return cause
	})

	err := run(newCmd(t), nil)
	assert.Same(t, cause, err)
}

func TestWrapClassifiesPlainErrors(t *testing.T) {
	run := Wrap(func(*commitia_io.RuntimeContext, *cobra.Command, []string) error {
		return errors.New("disk full")
	})

	err := run(newCmd(t), nil)
	require.Error(t, err)
	assert.Equal(t, commitia_err.CategorySystem, commitia_err.CategoryOf(err))
	assert.Contains(t, err.Error(), "probe failed")
	assert.Contains(t, err.Error(), "disk full")
}
