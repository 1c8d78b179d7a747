// Package genai provides the oracle layer for LLM-backed generation.
// This file builds the provider chain from application configuration.
package genai

import (
	"context"
	"fmt"

	"github.com/tumchatbot/tum-chatbot-go/internal/config"
	"github.com/tumchatbot/tum-chatbot-go/internal/metrics"
)

// NewFromConfig builds the oracle fallback chain from configuration.
// The primary provider comes first, the fallback provider second, and
// any remaining configured provider last. Returns an error when no
// provider has an API key.
func NewFromConfig(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (*FallbackGenerator, error) {
	if !cfg.HasOracleProvider() {
		return nil, fmt.Errorf("no oracle provider configured (set GEMINI_API_KEY, GROQ_API_KEY or CEREBRAS_API_KEY)")
	}

	order := providerOrder(Provider(cfg.OraclePrimaryProvider), Provider(cfg.OracleFallbackProvider))

	var chain []Generator
	for _, p := range order {
		gens, err := buildProvider(ctx, p, cfg)
		if err != nil {
			return nil, err
		}
		chain = append(chain, gens...)
	}

	if len(chain) == 0 {
		return nil, fmt.Errorf("no oracle provider configured for order %v", order)
	}

	return NewFallbackGenerator(chain, DefaultRetryConfig(), m), nil
}

// providerOrder returns all providers with primary and fallback first,
// deduplicated.
func providerOrder(primary, fallback Provider) []Provider {
	all := []Provider{ProviderGemini, ProviderGroq, ProviderCerebras}
	order := make([]Provider, 0, len(all))
	seen := make(map[Provider]bool, len(all))

	for _, p := range []Provider{primary, fallback} {
		if p != "" && !seen[p] {
			seen[p] = true
			order = append(order, p)
		}
	}
	for _, p := range all {
		if !seen[p] {
			seen[p] = true
			order = append(order, p)
		}
	}
	return order
}

// buildProvider creates the generators for one provider, or none when
// the provider has no API key configured. Gemini contributes a second
// chain entry on its fallback model, so a model-level outage falls
// through before leaving the provider.
func buildProvider(ctx context.Context, p Provider, cfg *config.Config) ([]Generator, error) {
	switch p {
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, nil
		}
		var gens []Generator
		for _, model := range geminiModels(cfg) {
			gen, err := NewGeminiGenerator(ctx, cfg.GeminiAPIKey, model)
			if err != nil {
				return nil, err
			}
			gens = append(gens, gen)
		}
		return gens, nil
	case ProviderGroq:
		if cfg.GroqAPIKey == "" {
			return nil, nil
		}
		gen, err := NewOpenAIGenerator(ProviderGroq, cfg.GroqAPIKey, cfg.GroqModel)
		if err != nil {
			return nil, err
		}
		return []Generator{gen}, nil
	case ProviderCerebras:
		if cfg.CerebrasAPIKey == "" {
			return nil, nil
		}
		gen, err := NewOpenAIGenerator(ProviderCerebras, cfg.CerebrasAPIKey, cfg.CerebrasModel)
		if err != nil {
			return nil, err
		}
		return []Generator{gen}, nil
	default:
		return nil, fmt.Errorf("unknown oracle provider: %s", p)
	}
}

// geminiModels resolves the configured primary and fallback Gemini
// models, deduplicated, with defaults applied.
func geminiModels(cfg *config.Config) []string {
	primary := cfg.GeminiModel
	if primary == "" {
		primary = DefaultGeminiModels[0]
	}
	fallback := cfg.GeminiFallbackModel
	if fallback == "" {
		fallback = DefaultGeminiModels[1]
	}

	if fallback == primary {
		return []string{primary}
	}
	return []string{primary, fallback}
}
