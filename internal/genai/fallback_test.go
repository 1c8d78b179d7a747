package genai

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/tumchatbot/tum-chatbot-go/internal/errors"
)

type fakeGenerator struct {
	provider Provider
	result   string
	err      error
	calls    int
}

func (f *fakeGenerator) Generate(_ context.Context, _ Request) (string, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeGenerator) Provider() Provider {
	return f.provider
}

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestFallbackGenerator_PrimarySucceeds(t *testing.T) {
	t.Parallel()

	primary := &fakeGenerator{provider: ProviderGemini, result: "answer"}
	secondary := &fakeGenerator{provider: ProviderGroq, result: "unused"}
	gen := NewFallbackGenerator([]Generator{primary, secondary}, fastRetry(), nil)

	got, err := gen.Generate(context.Background(), Request{Operation: OpGenerate, Prompt: "hi"})
	if err != nil {
		t.Fatalf("Generate = %v", err)
	}
	if got != "answer" {
		t.Errorf("Generate = %q, want %q", got, "answer")
	}
	if secondary.calls != 0 {
		t.Error("secondary provider should not be called when primary succeeds")
	}
}

func TestFallbackGenerator_FallsThroughToSecondary(t *testing.T) {
	t.Parallel()

	primary := &fakeGenerator{provider: ProviderGemini, err: errors.New("quota exceeded")}
	secondary := &fakeGenerator{provider: ProviderGroq, result: "rescued"}
	gen := NewFallbackGenerator([]Generator{primary, secondary}, fastRetry(), nil)

	got, err := gen.Generate(context.Background(), Request{Operation: OpGenerate, Prompt: "hi"})
	if err != nil {
		t.Fatalf("Generate = %v", err)
	}
	if got != "rescued" {
		t.Errorf("Generate = %q, want %q", got, "rescued")
	}
	if primary.calls != 1 {
		t.Errorf("quota error should not be retried, primary calls = %d", primary.calls)
	}
}

func TestFallbackGenerator_RetriesTransientBeforeFallingThrough(t *testing.T) {
	t.Parallel()

	primary := &fakeGenerator{provider: ProviderGemini, err: errors.New("503 service unavailable")}
	secondary := &fakeGenerator{provider: ProviderGroq, result: "rescued"}
	gen := NewFallbackGenerator([]Generator{primary, secondary}, fastRetry(), nil)

	got, err := gen.Generate(context.Background(), Request{Operation: OpClassify, Prompt: "hi"})
	if err != nil {
		t.Fatalf("Generate = %v", err)
	}
	if got != "rescued" {
		t.Errorf("Generate = %q, want %q", got, "rescued")
	}
	if primary.calls != 2 {
		t.Errorf("transient error should be retried, primary calls = %d", primary.calls)
	}
}

func TestFallbackGenerator_AllFail(t *testing.T) {
	t.Parallel()

	primary := &fakeGenerator{provider: ProviderGemini, err: errors.New("quota exceeded")}
	secondary := &fakeGenerator{provider: ProviderGroq, err: errors.New("invalid api key")}
	gen := NewFallbackGenerator([]Generator{primary, secondary}, fastRetry(), nil)

	_, err := gen.Generate(context.Background(), Request{Operation: OpExtract, Prompt: "hi"})
	if err == nil {
		t.Fatal("expected error when all providers fail")
	}

	var oracleErr *apperrors.OracleError
	if !errors.As(err, &oracleErr) {
		t.Errorf("error = %T, want *apperrors.OracleError", err)
	}
}

func TestFallbackGenerator_ContextCancelEndsChain(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	primary := &fakeGenerator{provider: ProviderGemini, err: context.Canceled}
	secondary := &fakeGenerator{provider: ProviderGroq, result: "unreachable"}
	gen := NewFallbackGenerator([]Generator{primary, secondary}, fastRetry(), nil)

	cancel()
	_, err := gen.Generate(ctx, Request{Operation: OpGenerate, Prompt: "hi"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Generate = %v, want context.Canceled", err)
	}
	if secondary.calls != 0 {
		t.Error("cancelled context should not reach the next provider")
	}
}

func TestFallbackGenerator_Provider(t *testing.T) {
	t.Parallel()

	gen := NewFallbackGenerator([]Generator{
		&fakeGenerator{provider: ProviderCerebras},
		&fakeGenerator{provider: ProviderGroq},
	}, fastRetry(), nil)

	if got := gen.Provider(); got != ProviderCerebras {
		t.Errorf("Provider = %v, want %v", got, ProviderCerebras)
	}

	empty := NewFallbackGenerator(nil, fastRetry(), nil)
	if got := empty.Provider(); got != "" {
		t.Errorf("empty chain Provider = %q, want empty", got)
	}
}
