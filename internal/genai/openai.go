// Package genai provides the oracle layer for LLM-backed generation.
// This file contains the unified OpenAI-compatible Generator used for
// Groq and Cerebras.
package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openaiGenerator produces text using an OpenAI-compatible API.
type openaiGenerator struct {
	client   openai.Client
	model    string
	provider Provider
}

// NewOpenAIGenerator creates a generator for an OpenAI-compatible
// provider (Groq, Cerebras). Returns an error if apiKey is empty or
// the provider has no known endpoint.
func NewOpenAIGenerator(provider Provider, apiKey, model string) (Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%s api key is required", provider)
	}

	baseURL, ok := ProviderEndpoint[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported OpenAI-compatible provider: %s", provider)
	}

	if model == "" {
		switch provider {
		case ProviderGroq:
			model = DefaultGroqModels[0]
		case ProviderCerebras:
			model = DefaultCerebrasModels[0]
		}
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &openaiGenerator{
		client:   client,
		model:    model,
		provider: provider,
	}, nil
}

// Generate returns the model's text response for the request.
func (g *openaiGenerator) Generate(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	messages = append(messages, openai.UserMessage(req.Prompt))

	params := openai.ChatCompletionNewParams{
		Model:       g.model,
		Messages:    messages,
		Temperature: openai.Float(float64(req.Temperature)),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	start := time.Now()
	resp, err := g.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "oracle call failed",
			"provider", string(g.provider),
			"model", g.model,
			"operation", string(req.Operation),
			"prompt_length", len(req.Prompt),
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return "", errors.New("empty response from model")
	}

	result := strings.TrimSpace(resp.Choices[0].Message.Content)
	if result == "" {
		return "", errors.New("empty response from model")
	}

	if resp.Usage.TotalTokens > 0 {
		slog.DebugContext(ctx, "oracle call completed",
			"provider", string(g.provider),
			"model", g.model,
			"operation", string(req.Operation),
			"input_tokens", resp.Usage.PromptTokens,
			"output_tokens", resp.Usage.CompletionTokens,
			"duration_ms", duration.Milliseconds())
	}

	return result, nil
}

// Provider returns the provider type for metrics.
func (g *openaiGenerator) Provider() Provider {
	return g.provider
}
