// Package openai implements the AI provider gateway over an OpenAI-compatible
// chat-completions API. Both operations fail closed: transport errors,
// timeouts, and unusable bodies come back as errors for the engine to absorb,
// never as partial results.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/travelcommerce/smartsearch/internal/domain"
	"github.com/travelcommerce/smartsearch/internal/metrics"
)

// completionTemperature keeps provider output near-deterministic for the
// structured interpretation and ranking tasks.
const completionTemperature = 0.2

// Gateway calls an OpenAI-compatible chat-completions API for query
// interpretation and candidate ranking.
type Gateway struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

// Config holds the provider connection settings.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

// NewGateway creates the provider adapter. BaseURL may point at any
// OpenAI-compatible endpoint.
func NewGateway(cfg *Config) *Gateway {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Gateway{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   cfg.Model,
		timeout: cfg.Timeout,
		logger:  logger,
	}
}

// rawInterpretation is the wire shape of the interpret response. Validation
// against the allow-lists happens in the engine, not here.
type rawInterpretation struct {
	Intent     string   `json:"intent"`
	Categories []string `json:"categories"`
	Place      string   `json:"place"`
	District   string   `json:"district"`
}

// Interpret asks the provider for a structured reading of the query,
// constrained to a single JSON object.
func (g *Gateway) Interpret(ctx context.Context, query string) (*domain.ProviderInterpretation, error) {
	raw, err := g.complete(ctx, "interpret", interpretationPrompt(query))
	if err != nil {
		return nil, err
	}

	obj, err := extractJSONObject(raw)
	if err != nil {
		return nil, fmt.Errorf("interpret response: %w", err)
	}

	var parsed rawInterpretation
	if err := json.Unmarshal([]byte(obj), &parsed); err != nil {
		return nil, fmt.Errorf("interpret response: %v: %w", err, domain.ErrProviderResponse)
	}

	return &domain.ProviderInterpretation{
		Intent:     parsed.Intent,
		Place:      parsed.Place,
		District:   parsed.District,
		Categories: parsed.Categories,
	}, nil
}

// Rank asks the provider to order the compacted catalog by relevance. The
// result is the raw ordered ID list; existence checks against the catalog
// are the engine's job.
func (g *Gateway) Rank(
	ctx context.Context, query string,
	interp domain.Interpretation, posts []domain.CompactPost,
) ([]string, error) {
	payload, err := json.Marshal(posts)
	if err != nil {
		return nil, fmt.Errorf("marshal compact posts: %w", err)
	}

	raw, err := g.complete(ctx, "rank", rankingPrompt(query, interp, string(payload)))
	if err != nil {
		return nil, err
	}

	arr, err := extractJSONArray(raw)
	if err != nil {
		return nil, fmt.Errorf("rank response: %w", err)
	}

	ids, err := parseIDArray(arr)
	if err != nil {
		return nil, fmt.Errorf("rank response: %w", err)
	}
	return ids, nil
}

// complete runs one bounded chat completion and returns the message content.
func (g *Gateway) complete(ctx context.Context, op, prompt string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	start := time.Now()

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: completionTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})

	duration := time.Since(start)

	if err != nil {
		metrics.ProviderRequestsTotal.WithLabelValues(op, "error").Inc()
		return "", parseAPIError(err)
	}

	metrics.ProviderRequestsTotal.WithLabelValues(op, "success").Inc()
	metrics.ProviderRequestDuration.WithLabelValues(op).Observe(duration.Seconds())

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response: %w", domain.ErrProviderResponse)
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("completion missing content: %w", domain.ErrProviderResponse)
	}
	return content, nil
}

// parseAPIError extracts a readable message from the API error and wraps it
// with the provider-unavailable sentinel so callers can degrade uniformly.
func parseAPIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("provider API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, domain.ErrProviderUnavailable)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("provider API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), domain.ErrProviderUnavailable)
	}

	return fmt.Errorf("provider request failed: %v: %w", err, domain.ErrProviderUnavailable)
}
