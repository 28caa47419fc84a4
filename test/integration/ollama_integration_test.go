// FILE: test/integration/ollama_integration_test.go
// PURPOSE: Exercises the Ollama LLM provider against a locally running
// Ollama daemon. Skipped automatically when Ollama is not reachable.

package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"ai-interviewer-be/pkg/llm"
	"ai-interviewer-be/pkg/llm/ollama"
)

const (
	ollamaBaseURL = "http://localhost:11434"
	ollamaModel   = "gemma:2b"
)

func requireOllama(t *testing.T) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}
	res, err := client.Get(ollamaBaseURL + "/api/tags")
	if err != nil {
		t.Skipf("Ollama not reachable at %s: %v", ollamaBaseURL, err)
	}
	res.Body.Close()
}

func TestOllamaGenerate(t *testing.T) {
	requireOllama(t)

	provider := ollama.NewOllamaProvider(ollamaBaseURL, ollamaModel)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	out, err := provider.Generate(ctx, "Reply with exactly one word: ping")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out == "" {
		t.Error("Generate() returned empty output")
	}
}

func TestOllamaChatHistory(t *testing.T) {
	requireOllama(t)

	provider := ollama.NewOllamaProvider(ollamaBaseURL, ollamaModel)
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	history := []llm.Message{
		{Role: "user", Content: "My name is Riley."},
		{Role: "assistant", Content: "Nice to meet you, Riley."},
		{Role: "user", Content: "What is my name?"},
	}
	out, err := provider.Chat(ctx, history)
	if err != nil {
		t.Fatalf("Chat() error = %v", err)
	}
	if out == "" {
		t.Error("Chat() returned empty output")
	}
}
