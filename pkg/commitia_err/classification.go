// pkg/commitia_err/classification.go
//
// Error classification with remediation hints and exit codes.

package commitia_err

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCategory classifies errors for appropriate handling
type ErrorCategory int

const (
	// CategorySystem - OS/filesystem issues
	CategorySystem ErrorCategory = iota
	// CategoryGit - invalid repository, unreadable objects, missing identity
	CategoryGit
	// CategoryConfig - missing credential or unusable configuration
	CategoryConfig
	// CategoryValidation - input validation failures
	CategoryValidation
	// CategoryNetwork - model provider unreachable or rejecting requests
	CategoryNetwork
	// CategoryPipeline - the analyze/generate pipeline failed
	CategoryPipeline
	// CategoryInternal - bugs in commitia itself
	CategoryInternal
)

var categoryNames = map[ErrorCategory]string{
	CategorySystem:     "system",
	CategoryGit:        "git",
	CategoryConfig:     "config",
	CategoryValidation: "validation",
	CategoryNetwork:    "network",
	CategoryPipeline:   "pipeline",
	CategoryInternal:   "internal",
}

func (c ErrorCategory) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// ClassifiedError wraps an error with category and remediation info
type ClassifiedError struct {
	Category    ErrorCategory
	Message     string
	Cause       error
	Remediation []string
}

// Error implements the error interface
func (e *ClassifiedError) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Message)

	if e.Cause != nil && e.Cause.Error() != e.Message {
		sb.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	return sb.String()
}

// Unwrap returns the underlying error
func (e *ClassifiedError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the process exit code for this error.
// Every failure category exits with 1.
func (e *ClassifiedError) ExitCode() int {
	return 1
}

// GetExitCode extracts exit code from any error.
// Returns 0 for nil, 1 for everything else.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.ExitCode()
	}

	return 1
}

// Remediation returns the remediation steps attached to err, if any.
func Remediation(err error) []string {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Remediation
	}
	return nil
}

// CategoryOf returns the category of err, CategorySystem when unclassified.
func CategoryOf(err error) ErrorCategory {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Category
	}
	return CategorySystem
}

// NewGitError creates an error for git-specific issues
func NewGitError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryGit,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewConfigError creates an error for missing or unusable configuration.
func NewConfigError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryConfig,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewValidationError creates an error for input validation failures
func NewValidationError(message string, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryValidation,
		Message:     message,
		Remediation: remediation,
	}
}

// NewNetworkError creates an error for network issues
func NewNetworkError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryNetwork,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewPipelineError creates an error for a failed analyze/generate run.
func NewPipelineError(message string, cause error, remediation ...string) error {
	return &ClassifiedError{
		Category:    CategoryPipeline,
		Message:     message,
		Cause:       cause,
		Remediation: remediation,
	}
}

// NewInternalError creates an error for commitia bugs
func NewInternalError(message string, cause error) error {
	return &ClassifiedError{
		Category: CategoryInternal,
		Message:  message,
		Cause:    cause,
		Remediation: []string{
			"This is likely a bug in commitia",
			"Rerun with --verbose and include the output when reporting it",
		},
	}
}

// ClassifyError attempts to classify an existing error.
// Already classified errors are returned unchanged.
func ClassifyError(err error, context string) error {
	if err == nil {
		return nil
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return err
	}

	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "timeout"),
		strings.Contains(errStr, "deadline exceeded"),
		strings.Contains(errStr, "connection refused"),
		strings.Contains(errStr, "no such host"),
		strings.Contains(errStr, "network is unreachable"):
		return NewNetworkError(
			fmt.Sprintf("%s: network error", context),
			err,
			"Check your network connection",
			"Verify the model provider is reachable",
		)

	case strings.Contains(errStr, "repository does not exist"),
		strings.Contains(errStr, "object not found"):
		return NewGitError(fmt.Sprintf("%s: git error", context), err)

	default:
		return &ClassifiedError{
			Category: CategorySystem,
			Message:  fmt.Sprintf("%s failed", context),
			Cause:    err,
		}
	}
}
