// pkg/commitia_io/context.go

package commitia_io

import (
	"context"
	"os"
	"runtime"
	"time"

	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/telemetry"
)

// RuntimeContext carries the per-command context, logger and span.
type RuntimeContext struct {
	Ctx        context.Context
	Log        *zap.Logger
	Timestamp  time.Time
	Span       trace.Span
	Command    string
	TraceID    string
	Attributes map[string]string
}

// NewContext starts the command span and a logger tagged with its trace id.
func NewContext(parent context.Context, cmdName string) *RuntimeContext {
	ctx, span := telemetry.Start(parent, cmdName)

	traceID := logger.GenerateTraceID()
	if sc := span.SpanContext(); sc.IsValid() {
		traceID = sc.TraceID().String()
	}

	log := logger.L().With(
		zap.String("command", cmdName),
		zap.String("trace_id", traceID),
	)
	log.Debug("Command started",
		zap.String("os", runtime.GOOS),
		zap.String("version", shared.Version))

	return &RuntimeContext{
		Ctx:        ctx,
		Span:       span,
		Log:        log,
		Timestamp:  time.Now(),
		Command:    cmdName,
		TraceID:    traceID,
		Attributes: make(map[string]string),
	}
}

// HandlePanic recovers panics, logs them, and converts to an error.
func (rc *RuntimeContext) HandlePanic(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = cerr.AssertionFailedf("panic: %v", r)
		rc.Log.Error("panic recovered", zap.Any("panic", r))
	}
}

// End logs the outcome, records the command span and flushes the log.
func (rc *RuntimeContext) End(errPtr *error) {
	defer rc.Span.End()

	var err error
	if errPtr != nil {
		err = *errPtr
	}
	duration := time.Since(rc.Timestamp)

	if err == nil {
		rc.Log.Info("Command completed", zap.Duration("duration", duration))
	} else {
		rc.Log.Error("Command failed", zap.Duration("duration", duration), zap.Error(err))
	}

	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("os", runtime.GOOS),
		attribute.String("args", telemetry.TruncateArgs(argv())),
		attribute.String("version", shared.Version),
		attribute.String("category", telemetry.CommandCategory(rc.Command)),
		attribute.String("error_type", telemetry.ClassifyError(err)),
	}
	for k, v := range rc.Attributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	rc.Span.SetAttributes(attrs...)

	_ = logger.Sync()
}

func argv() []string {
	if len(os.Args) < 2 {
		return nil
	}
	return os.Args[1:]
}
