// pkg/telemetry/telemetry.go
package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_err"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/commitia/pkg/xdg"
)

var (
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	file     *os.File
)

// Dir is ~/.commitia, where the telemetry toggle, id and spans live.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, "."+shared.AppID)
}

// StateFile enables telemetry by existing.
func StateFile() string { return filepath.Join(Dir(), "telemetry_on") }

// FilePath is the JSONL span file.
func FilePath() string { return filepath.Join(Dir(), "telemetry", "telemetry.jsonl") }

// Init configures OpenTelemetry; call this early in main().
// Spans go to a local JSONL file when enabled and nowhere otherwise.
func Init(service string) error {
	if !IsEnabled() {
		tp := noop.NewTracerProvider()
		otel.SetTracerProvider(tp)
		tracer = tp.Tracer(service)
		return nil
	}

	path := FilePath()
	if err := xdg.EnsureDir(path); err != nil {
		return cerr.Wrap(err, "failed to create telemetry directory")
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, xdg.FilePermOwnerReadWrite)
	if err != nil {
		return cerr.Wrap(err, "failed to open telemetry file")
	}

	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(f),
		stdouttrace.WithoutTimestamps(),
	)
	if err != nil {
		_ = f.Close()
		return cerr.Wrap(err, "failed to create file exporter")
	}

	provider = sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(
			sdkresource.NewWithAttributes(
				semconv.SchemaURL,
				attribute.String("service.name", service),
				attribute.String("service.version", shared.Version),
				attribute.String("user_id", AnonTelemetryID()),
			),
		),
	)
	file = f

	otel.SetTracerProvider(provider)
	tracer = provider.Tracer(service)
	return nil
}

// Shutdown flushes pending spans and closes the span file.
func Shutdown(ctx context.Context) error {
	if provider == nil {
		return nil
	}
	err := provider.Shutdown(ctx)
	if file != nil {
		if cerr2 := file.Close(); err == nil {
			err = cerr2
		}
	}
	provider, file = nil, nil
	return err
}

// Start a telemetry span with optional attributes.
func Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	t := tracer
	if t == nil {
		t = otel.Tracer(shared.AppID)
	}
	return t.Start(ctx, name, trace.WithAttributes(attrs...))
}

func IsEnabled() bool {
	_, err := os.Stat(StateFile())
	return err == nil
}

// Enable creates the toggle file.
func Enable() error {
	if err := xdg.EnsureDir(StateFile()); err != nil {
		return cerr.Wrap(err, "failed to create telemetry directory")
	}
	if err := os.WriteFile(StateFile(), []byte("on\n"), xdg.FilePermOwnerReadWrite); err != nil {
		return cerr.Wrap(err, "enable telemetry")
	}
	return nil
}

// Disable removes the toggle file. Already disabled is not an error.
func Disable() error {
	if err := os.Remove(StateFile()); err != nil && !os.IsNotExist(err) {
		return cerr.Wrap(err, "disable telemetry")
	}
	return nil
}

// AnonTelemetryID returns a stable random id, creating it on first use.
func AnonTelemetryID() string {
	path := filepath.Join(Dir(), "telemetry_id")

	if data, err := os.ReadFile(path); err == nil {
		return strings.TrimSpace(string(data))
	}

	id := "anon-" + uuid.New().String()
	_ = xdg.EnsureDir(path)
	_ = os.WriteFile(path, []byte(id), xdg.FilePermOwnerReadWrite)

	return id
}

func TruncateArgs(args []string) string {
	full := strings.Join(args, " ")
	if len(full) > 256 {
		return full[:256] + "..."
	}
	return full
}

// CommandCategory groups commands for span attributes.
func CommandCategory(cmd string) string {
	switch cmd {
	case "generate":
		return "pipeline"
	case "status", "setup":
		return "inspect"
	case "telemetry":
		return "admin"
	default:
		return "general"
	}
}

// ClassifyError names the error kind recorded on the command span.
func ClassifyError(err error) string {
	if err == nil {
		return ""
	}
	if commitia_err.IsExpectedUserError(err) {
		return "user"
	}
	return commitia_err.CategoryOf(err).String()
}
