package logger

import (
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log *zap.Logger

	// consoleLevel gates structured console output. Terminal prompts bypass it.
	consoleLevel = zap.NewAtomicLevelAt(zapcore.WarnLevel)
)

// L returns the process logger, or zap's global logger before initialization.
func L() *zap.Logger {
	if log == nil {
		return zap.L()
	}
	return log
}

// SetLogger installs l as the process logger, the zap global and the otelzap global
// used by otelzap.Ctx in command handlers.
func SetLogger(l *zap.Logger) {
	log = l
	zap.ReplaceGlobals(l)
	otelzap.ReplaceGlobals(otelzap.New(l))
}

// SetVerbose switches console output to debug level, or back to the LOG_LEVEL default.
func SetVerbose(verbose bool) {
	if verbose {
		consoleLevel.SetLevel(zapcore.DebugLevel)
		return
	}
	consoleLevel.SetLevel(defaultConsoleLevel())
}

// ConsoleLevel reports the current console level.
func ConsoleLevel() zapcore.Level {
	return consoleLevel.Level()
}

// Sync flushes any buffered log entries. Should be called before the application exits.
func Sync() error {
	if log == nil {
		return nil
	}
	return log.Sync()
}
