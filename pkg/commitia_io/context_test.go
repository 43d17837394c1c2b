package commitia_io

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/logger"
)

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	prev := logger.L()
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(prev) })
	return logs
}

func TestNewContextAssignsTraceID(t *testing.T) {
	observe(t)
	rc := NewContext(context.Background(), "status")
	require.NotNil(t, rc.Ctx)
	assert.Equal(t, "status", rc.Command)
	assert.NotEmpty(t, rc.TraceID)
	assert.NotNil(t, rc.Attributes)
}

func TestEndLogsOutcome(t *testing.T) {
	logs := observe(t)

	rc := NewContext(context.Background(), "generate")
	var err error
	rc.End(&err)
	assert.Equal(t, 1, logs.FilterMessage("Command completed").Len())

	rc = NewContext(context.Background(), "generate")
	err = errors.New("boom")
	rc.End(&err)
	failed := logs.FilterMessage("Command failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, "generate", failed[0].ContextMap()["command"])
}

func TestHandlePanic(t *testing.T) {
	observe(t)
	rc := NewContext(context.Background(), "generate")

	run := func() (err error) {
		defer rc.HandlePanic(&err)
		panic("kaboom")
	}

	err := run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}
