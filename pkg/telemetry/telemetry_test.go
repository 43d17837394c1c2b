package telemetry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_err"
)

func withHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestEnableDisable(t *testing.T) {
	home := withHome(t)
	assert.Equal(t, filepath.Join(home, ".commitia"), Dir())
	assert.False(t, IsEnabled())

	require.NoError(t, Enable())
	assert.True(t, IsEnabled())

	require.NoError(t, Disable())
	assert.False(t, IsEnabled())
	require.NoError(t, Disable())
}

func TestAnonTelemetryIDIsStable(t *testing.T) {
	withHome(t)
	first := AnonTelemetryID()
	assert.True(t, strings.HasPrefix(first, "anon-"))
	assert.Equal(t, first, AnonTelemetryID())
}

func TestInitDisabledUsesNoop(t *testing.T) {
	withHome(t)
	require.NoError(t, Init("commitia-test"))

	_, span := Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()
	assert.NoFileExists(t, FilePath())
}

func TestInitEnabledWritesSpans(t *testing.T) {
	withHome(t)
	require.NoError(t, Enable())
	require.NoError(t, Init("commitia-test"))

	_, span := Start(context.Background(), "generate")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
	require.NoError(t, Shutdown(context.Background()))

	data, err := os.ReadFile(FilePath())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Name":"generate"`)

	require.NoError(t, Disable())
	require.NoError(t, Init("commitia-test"))
}

func TestClassifyError(t *testing.T) {
	assert.Empty(t, ClassifyError(nil))
	assert.Equal(t, "user", ClassifyError(commitia_err.NewExpectedError(errors.New("x"))))
	assert.Equal(t, "config", ClassifyError(commitia_err.NewConfigError("x", nil)))
	assert.Equal(t, "system", ClassifyError(errors.New("x")))
}

func TestTruncateArgs(t *testing.T) {
	assert.Equal(t, "generate -c", TruncateArgs([]string{"generate", "-c"}))
	long := TruncateArgs([]string{strings.Repeat("a", 300)})
	assert.Len(t, long, 259)
}
