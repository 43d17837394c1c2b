// Package llm holds the language-model client used by the commit pipeline.
package llm

import (
	"context"
	"time"
)

const (
	DefaultModel       = "gemini-2.0-flash-lite"
	DefaultTemperature = 0.3
	DefaultBaseURL     = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultMaxTokens   = 1024
	DefaultTimeout     = 60 * time.Second
)

// Request is one system + user exchange.
type Request struct {
	System string
	Prompt string
}

type Response struct {
	Text       string
	TokensUsed int
}

// Model generates text. Implementations must not retry.
type Model interface {
	Generate(ctx context.Context, req Request) (Response, error)
	Name() string
}

// Config is resolved once by the config package and injected here.
type Config struct {
	APIKey            string
	Model             string
	BaseURL           string
	Temperature       float64
	MaxTokens         int
	Timeout           time.Duration
	RequestsPerMinute int
}
