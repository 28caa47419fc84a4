package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short", 100, 10)
	if len(chunks) != 1 || chunks[0] != "short" {
		t.Errorf("SplitText() = %v, want single chunk", chunks)
	}
}

func TestSplitTextChunksAndOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 30) // 300 chars
	chunks := SplitText(text, 100, 20)

	if len(chunks) < 3 {
		t.Fatalf("got %d chunks, want at least 3", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 100 {
			t.Errorf("chunk %d length = %d, exceeds chunk size", i, len(c))
		}
	}

	// Consecutive chunks share the overlap region.
	first, second := chunks[0], chunks[1]
	if !strings.HasPrefix(second, first[len(first)-20:]) {
		t.Error("second chunk does not start with the overlap of the first")
	}
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	text := strings.Repeat("x", 50)
	chunks := SplitText(text, 10, 10) // degenerate overlap falls back to full step
	if len(chunks) == 0 {
		t.Fatal("no chunks produced")
	}
	var rebuilt strings.Builder
	for _, c := range chunks {
		rebuilt.WriteString(c)
	}
	if !strings.Contains(rebuilt.String(), text[:10]) {
		t.Error("content lost while splitting")
	}
}
