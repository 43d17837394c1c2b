// pkg/interaction/reader.go

package interaction

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// ReadLine returns one trimmed line. A final line without a newline is still returned.
func ReadLine(ctx context.Context, reader *bufio.Reader) (string, error) {
	text, err := reader.ReadString('\n')
	if err != nil && !(err == io.EOF && text != "") {
		if err != io.EOF {
			otelzap.Ctx(ctx).Error("Failed to read user input", zap.Error(err))
		}
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// IsTerminal reports whether f is attached to an interactive terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// Interactive is true when both stdin and stdout are terminals.
func Interactive() bool {
	return IsTerminal(os.Stdin) && IsTerminal(os.Stdout)
}
