package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

type flakyProvider struct {
	failures int
	calls    int
	output   string
}

func (p *flakyProvider) Chat(ctx context.Context, history []Message, opts ...Option) (string, error) {
	return p.Generate(ctx, "", opts...)
}

func (p *flakyProvider) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	p.calls++
	if p.calls <= p.failures {
		return "", errors.New("model unavailable")
	}
	return p.output, nil
}

func TestRetryingGeneratorSucceedsAfterFailures(t *testing.T) {
	provider := &flakyProvider{failures: 2, output: "a question"}
	gen := NewRetryingGenerator(provider, 3, 0, nil)

	got := gen.Generate(context.Background(), "prompt")
	if got != "a question" {
		t.Errorf("Generate() = %q, want %q", got, "a question")
	}
	if provider.calls != 3 {
		t.Errorf("calls = %d, want 3", provider.calls)
	}
}

func TestRetryingGeneratorExhaustsToEmpty(t *testing.T) {
	provider := &flakyProvider{failures: 10}
	gen := NewRetryingGenerator(provider, 3, 0, nil)

	got := gen.Generate(context.Background(), "prompt")
	if got != "" {
		t.Errorf("Generate() = %q, want empty after exhaustion", got)
	}
	if provider.calls != 3 {
		t.Errorf("calls = %d, want exactly 3 attempts", provider.calls)
	}
}

func TestRetryingGeneratorFirstTry(t *testing.T) {
	provider := &flakyProvider{output: "instant"}
	gen := NewRetryingGenerator(provider, 3, 0, nil)

	if got := gen.Generate(context.Background(), "prompt"); got != "instant" {
		t.Errorf("Generate() = %q, want instant", got)
	}
	if provider.calls != 1 {
		t.Errorf("calls = %d, want 1", provider.calls)
	}
}

func TestRetryingGeneratorHonorsCancelledContext(t *testing.T) {
	provider := &flakyProvider{failures: 10}
	gen := NewRetryingGenerator(provider, 3, time.Second, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := gen.Generate(ctx, "prompt"); got != "" {
		t.Errorf("Generate() = %q, want empty on cancelled context", got)
	}
	if provider.calls != 1 {
		t.Errorf("calls = %d, want 1 before cancellation stops retries", provider.calls)
	}
}
