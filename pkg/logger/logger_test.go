package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"TRACE", zapcore.DebugLevel},
		{" info ", zapcore.InfoLevel},
		{"warning", zapcore.WarnLevel},
		{"ERROR", zapcore.ErrorLevel},
		{"", zapcore.WarnLevel},
		{"loud", zapcore.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in, zapcore.WarnLevel))
		})
	}
}

func TestSetVerbose(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Cleanup(func() { SetVerbose(false) })

	SetVerbose(true)
	assert.Equal(t, zapcore.DebugLevel, ConsoleLevel())

	SetVerbose(false)
	assert.Equal(t, zapcore.WarnLevel, ConsoleLevel())

	t.Setenv("LOG_LEVEL", "info")
	SetVerbose(false)
	assert.Equal(t, zapcore.InfoLevel, ConsoleLevel())
}

func TestOpenFirstWritableSkipsUnusablePaths(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	good := filepath.Join(dir, "state", "commitia.log")
	writer, path, err := openFirstWritable([]string{
		filepath.Join(blocker, "nested", "commitia.log"),
		good,
	})
	require.NoError(t, err)
	assert.Equal(t, good, path)

	_, err = writer.Write([]byte("{}\n"))
	require.NoError(t, err)
	assert.FileExists(t, good)
}

func TestOpenFirstWritableNoCandidates(t *testing.T) {
	_, _, err := openFirstWritable(nil)
	assert.Error(t, err)
}

func TestGenerateTraceID(t *testing.T) {
	id := GenerateTraceID()
	assert.Len(t, id, 8)
	assert.NotEqual(t, id, GenerateTraceID())
}
