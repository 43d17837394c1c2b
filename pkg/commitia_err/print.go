// pkg/commitia_err/print.go

package commitia_err

import (
	"fmt"
	"io"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

var debugMode bool

func SetDebugMode(enabled bool) {
	debugMode = enabled
}

func DebugEnabled() bool {
	return debugMode
}

// FormatError renders err for humans: the message, remediation steps and hints.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(err.Error())

	steps := append([]string{}, Remediation(err)...)
	steps = append(steps, cerr.GetAllHints(err)...)
	if len(steps) > 0 {
		sb.WriteString("\n\nHow to fix:")
		for i, step := range steps {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
	}

	if DebugEnabled() {
		sb.WriteString(fmt.Sprintf("\n\n%+v", err))
	}

	return sb.String()
}

// PrintError prints a human-readable error message without exiting.
func PrintError(w io.Writer, userMessage string, err error) {
	if err == nil {
		return
	}

	if IsExpectedUserError(err) {
		zap.L().Warn(userMessage, zap.Error(err))
		fmt.Fprintf(w, "Notice: %s: %s\n", userMessage, FormatError(err))
		return
	}

	zap.L().Error(userMessage, zap.Error(err), zap.String("category", CategoryOf(err).String()))
	fmt.Fprintf(w, "Error: %s: %s\n", userMessage, FormatError(err))
}
