// Package genai provides the oracle layer: LLM-backed text generation
// used for answer composition, context extraction, and YES/NO
// classification.
//
// Architecture:
//   - Gemini: google.golang.org/genai (official SDK)
//   - Groq/Cerebras: github.com/openai/openai-go/v3 (OpenAI-compatible API)
//
// Fallback strategy (2-layer):
//  1. Same provider retried with exponential backoff
//  2. Next provider in the configured chain
package genai

import (
	"context"
	"time"
)

// Provider represents an LLM provider.
type Provider string

const (
	// ProviderGemini represents Google's Gemini API (non-OpenAI-compatible).
	ProviderGemini Provider = "gemini"
	// ProviderGroq represents Groq's API (OpenAI-compatible, fast inference).
	ProviderGroq Provider = "groq"
	// ProviderCerebras represents Cerebras's API (OpenAI-compatible, ultra-fast inference).
	ProviderCerebras Provider = "cerebras"
)

// ProviderEndpoint defines the base URL for OpenAI-compatible providers.
// Gemini is not included as it uses a different SDK.
var ProviderEndpoint = map[Provider]string{
	ProviderGroq:     "https://api.groq.com/openai/v1/",
	ProviderCerebras: "https://api.cerebras.ai/v1/",
}

// String returns the string representation of the provider.
func (p Provider) String() string {
	return string(p)
}

// Operation labels the purpose of an oracle call, used for metrics
// and logging.
type Operation string

const (
	// OpGenerate is full answer composition with knowledge context.
	OpGenerate Operation = "generate"
	// OpExtract is structured role/campus extraction.
	OpExtract Operation = "extract"
	// OpClassify is a YES/NO classification call.
	OpClassify Operation = "classify"
	// OpSecurity is prompt injection screening.
	OpSecurity Operation = "security"
)

// Request is a single oracle generation request.
type Request struct {
	// Operation labels the call for metrics.
	Operation Operation

	// System is the system instruction, may be empty.
	System string

	// Prompt is the user-visible prompt text.
	Prompt string

	// Temperature controls sampling randomness. Structured calls
	// (extract, classify) use low values for consistency.
	Temperature float32

	// MaxTokens caps the response length.
	MaxTokens int
}

// Generator produces text from a prompt. Implementations exist for
// Gemini and OpenAI-compatible providers.
type Generator interface {
	// Generate returns the model's text response.
	Generate(ctx context.Context, req Request) (string, error)
	// Provider returns the provider type for metrics.
	Provider() Provider
}

// RetryConfig defines retry behavior for oracle API calls.
// Uses AWS-recommended Full Jitter exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	MaxAttempts int

	// InitialDelay is the base delay before first retry.
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between retries.
	MaxDelay time.Duration
}

// Retry configuration defaults.
const (
	DefaultMaxRetryAttempts  = 2
	DefaultInitialRetryDelay = 500 * time.Millisecond
	DefaultMaxRetryDelay     = 3 * time.Second
)

// DefaultRetryConfig returns the standard retry settings.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  DefaultMaxRetryAttempts,
		InitialDelay: DefaultInitialRetryDelay,
		MaxDelay:     DefaultMaxRetryDelay,
	}
}

// Default models per provider. The first entry is primary; the rest
// are same-provider fallbacks.
var (
	DefaultGeminiModels   = []string{"gemini-2.5-flash", "gemini-2.5-flash-lite"}
	DefaultGroqModels     = []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant"}
	DefaultCerebrasModels = []string{"llama-3.3-70b", "llama-3.1-8b"}
)
