// pkg/logger/writer.go

package logger

import (
	"fmt"
	"os"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/xdg"
	"go.uber.org/zap/zapcore"
)

// GetLogFileWriter opens path for appending, creating its directory owner-only.
func GetLogFileWriter(path string) (zapcore.WriteSyncer, error) {
	if err := xdg.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("log directory error: %w", err)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, xdg.FilePermOwnerReadWrite)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	return zapcore.AddSync(file), nil
}

// OpenLogFile returns a writer for the first usable platform log path.
func OpenLogFile() (zapcore.WriteSyncer, string, error) {
	return openFirstWritable(PlatformLogPaths())
}

func openFirstWritable(paths []string) (zapcore.WriteSyncer, string, error) {
	var lastErr error
	for _, path := range paths {
		writer, err := GetLogFileWriter(path)
		if err == nil {
			return writer, path, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("no candidate paths")
	}
	return nil, "", fmt.Errorf("no writable log path found: %w", lastErr)
}
