// pkg/interaction/prompt.go

package interaction

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/logger"
)

const (
	YesShort = "y"
	YesLong  = "yes"
	NoShort  = "n"
	NoLong   = "no"

	DefaultYesPrompt = "Y/n"
	DefaultNoPrompt  = "y/N"
)

// Confirm asks a yes/no question on the terminal and reads one line from in.
// Empty or unrecognised answers and EOF return defaultYes.
func Confirm(ctx context.Context, in io.Reader, prompt string, defaultYes bool) (bool, error) {
	log := otelzap.Ctx(ctx)

	hint := DefaultNoPrompt
	if defaultYes {
		hint = DefaultYesPrompt
	}
	log.Info(logger.TerminalPrefix + " " + prompt + " (" + hint + ")")

	input, err := ReadLine(ctx, bufio.NewReader(in))
	if err != nil {
		if err == io.EOF {
			return defaultYes, nil
		}
		return false, err
	}

	if answer, ok := NormalizeYesNoInput(input); ok {
		log.Debug("User input parsed", zap.Bool("answer", answer))
		return answer, nil
	}

	log.Debug("Default applied", zap.String("input", input), zap.Bool("default_yes", defaultYes))
	return defaultYes, nil
}

// NormalizeYesNoInput reports the answer and whether input was recognised.
func NormalizeYesNoInput(input string) (bool, bool) {
	input = strings.TrimSpace(strings.ToLower(input))
	switch input {
	case YesShort, YesLong:
		return true, true
	case NoShort, NoLong:
		return false, true
	}
	return false, false
}
