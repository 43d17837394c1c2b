/* pkg/logger/fallback.go */

package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewFallbackLogger builds a console-only logger on stderr.
func NewFallbackLogger() *zap.Logger {
	console := zapcore.NewCore(
		zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
		zapcore.Lock(os.Stderr),
		consoleLevel,
	)
	return zap.New(newTerminalConsoleCore(console, os.Stdout), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// InitializeWithFallback sets up console logging on stderr, human-facing terminal
// prompts on stdout and, when a log path is writable, JSON logs to file.
func InitializeWithFallback() {
	consoleLevel.SetLevel(defaultConsoleLevel())

	writer, path, err := OpenLogFile()
	if err != nil {
		fallback := NewFallbackLogger()
		SetLogger(fallback)
		fallback.Debug("No writable log path found, logging to console only", zap.Error(err))
		return
	}

	console := zapcore.NewCore(
		zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
		zapcore.Lock(os.Stderr),
		consoleLevel,
	)
	core := zapcore.NewTee(
		newTerminalConsoleCore(console, os.Stdout),
		zapcore.NewCore(zapcore.NewJSONEncoder(defaultFileEncoderConfig()), writer, zap.InfoLevel),
	)

	l := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	SetLogger(l)
	l.Debug("Logger initialized",
		zap.String("console_level", consoleLevel.Level().String()),
		zap.String("log_path", path),
	)
}
