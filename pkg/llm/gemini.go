package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/commitia/pkg/commitia_err"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const maxResponseBytes = 4 << 20

// Gemini calls the Google Generative Language generateContent endpoint.
type Gemini struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
}

// NewGemini builds a client from cfg, filling defaults for zero values.
func NewGemini(cfg Config) (*Gemini, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, commitia_err.NewConfigError("model API key is empty", nil,
			"Set GOOGLE_API_KEY (or GEMINI_API_KEY) in your environment")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(cfg.RequestsPerMinute))
	}

	return &Gemini{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

func (g *Gemini) Name() string { return "gemini/" + g.cfg.Model }

// Generate sends one request. Failures are returned as-is; nothing is retried.
func (g *Gemini) Generate(ctx context.Context, req Request) (Response, error) {
	log := otelzap.Ctx(ctx)

	if err := g.limiter.Wait(ctx); err != nil {
		return Response{}, cerr.Wrap(err, "waiting for rate limiter")
	}

	temperature := g.cfg.Temperature
	body := geminiRequest{
		Contents: []geminiContent{{
			Role:  "user",
			Parts: []geminiPart{{Text: req.Prompt}},
		}},
		GenerationConfig: &geminiGenConfig{
			MaxOutputTokens: g.cfg.MaxTokens,
			Temperature:     &temperature,
		},
	}
	if req.System != "" {
		body.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: req.System}}}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return Response{}, cerr.Wrap(err, "marshaling request")
	}

	url := fmt.Sprintf("%s/%s:generateContent", g.cfg.BaseURL, g.cfg.Model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Response{}, cerr.Wrap(err, "creating request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-goog-api-key", g.cfg.APIKey)

	log.Debug("Sending generateContent request",
		zap.String("model", g.cfg.Model),
		zap.Int("prompt_bytes", len(req.Prompt)),
		zap.Float64("temperature", temperature))

	start := time.Now()
	httpResp, err := g.client.Do(httpReq)
	if err != nil {
		return Response{}, commitia_err.NewNetworkError("model provider unreachable", err,
			"Check your network connection",
			"Verify "+g.cfg.BaseURL+" is reachable")
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return Response{}, cerr.Wrap(err, "reading response")
	}

	switch {
	case httpResp.StatusCode == http.StatusUnauthorized || httpResp.StatusCode == http.StatusForbidden:
		return Response{}, &AuthError{StatusCode: httpResp.StatusCode, Body: string(respBody)}
	case httpResp.StatusCode == http.StatusTooManyRequests:
		return Response{}, &RateLimitError{Body: string(respBody)}
	case httpResp.StatusCode != http.StatusOK:
		return Response{}, &APIError{StatusCode: httpResp.StatusCode, Body: string(respBody)}
	}

	var result geminiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return Response{}, cerr.Wrap(err, "parsing response")
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return Response{}, ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	log.Debug("Received generateContent response",
		zap.Int("tokens_used", result.UsageMetadata.TotalTokenCount),
		zap.Duration("elapsed", time.Since(start)))

	return Response{
		Text:       sb.String(),
		TokensUsed: result.UsageMetadata.TotalTokenCount,
	}, nil
}

type geminiRequest struct {
	SystemInstruction *geminiContent   `json:"systemInstruction,omitempty"`
	Contents          []geminiContent  `json:"contents"`
	GenerationConfig  *geminiGenConfig `json:"generationConfig,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
	Temperature     *float64 `json:"temperature,omitempty"`
}

type geminiResponse struct {
	Candidates    []geminiCandidate `json:"candidates"`
	UsageMetadata geminiUsage       `json:"usageMetadata"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiUsage struct {
	TotalTokenCount int `json:"totalTokenCount"`
}
