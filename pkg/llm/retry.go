package llm

import (
	"context"
	"log"
	"time"
)

// RetryingGenerator wraps an LLMProvider with the bounded retry contract the
// interview engine relies on: a fixed number of attempts with a fixed delay,
// then an empty string. Callers never see an error; the engine substitutes
// its own fallback text when the result is empty.
type RetryingGenerator struct {
	provider LLMProvider
	attempts int
	delay    time.Duration
	logger   *log.Logger
}

func NewRetryingGenerator(provider LLMProvider, attempts int, delay time.Duration, logger *log.Logger) *RetryingGenerator {
	if attempts <= 0 {
		attempts = 3
	}
	return &RetryingGenerator{
		provider: provider,
		attempts: attempts,
		delay:    delay,
		logger:   logger,
	}
}

// Generate returns the model output, or "" once every attempt has failed or
// the context is done.
func (g *RetryingGenerator) Generate(ctx context.Context, prompt string) string {
	for attempt := 1; attempt <= g.attempts; attempt++ {
		text, err := g.provider.Generate(ctx, prompt)
		if err == nil {
			return text
		}

		if g.logger != nil {
			g.logger.Printf("[WARN] generation attempt %d/%d failed: %v", attempt, g.attempts, err)
		}

		if attempt == g.attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ""
		case <-time.After(g.delay):
		}
	}

	if g.logger != nil {
		g.logger.Printf("[ERROR] generation failed after %d attempts", g.attempts)
	}
	return ""
}
