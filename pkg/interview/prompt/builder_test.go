package prompt

import (
	"strings"
	"testing"
)

func TestSafeText(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"empty", "", 100, ""},
		{"strips carriage returns", "a\r\nb", 100, "a\nb"},
		{"tabs become spaces", "a\tb", 100, "a    b"},
		{"truncates", strings.Repeat("x", 50), 10, strings.Repeat("x", 10)},
		{"no truncation when zero max", "hello", 0, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeText(tt.input, tt.maxLen); got != tt.want {
				t.Errorf("SafeText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSetupDeterministic(t *testing.T) {
	a := Setup("some context", "distributed systems", true)
	b := Setup("some context", "distributed systems", true)
	if a != b {
		t.Error("Setup is not deterministic for identical inputs")
	}
	if !strings.Contains(a, "distributed systems") {
		t.Error("Setup prompt does not mention the topic")
	}
	if !strings.Contains(a, "broad, general") {
		t.Error("broad style not reflected in setup prompt")
	}

	narrow := Setup("some context", "distributed systems", false)
	if !strings.Contains(narrow, "specific, detailed") {
		t.Error("narrow style not reflected in setup prompt")
	}
}

func TestInstruction(t *testing.T) {
	t.Run("followup references previous answer", func(t *testing.T) {
		got := Instruction(true, false, "I used Kafka for event streaming")
		if !strings.Contains(got, "I used Kafka for event streaming") {
			t.Errorf("followup instruction missing previous answer: %q", got)
		}
		if !strings.Contains(got, "specific, detailed") {
			t.Errorf("narrow style missing: %q", got)
		}
	})

	t.Run("followup with empty previous answer degrades gracefully", func(t *testing.T) {
		got := Instruction(true, true, "   ")
		if !strings.Contains(got, "builds on the previous discussion") {
			t.Errorf("expected generic continuation, got: %q", got)
		}
	})

	t.Run("non-followup ignores previous answer", func(t *testing.T) {
		got := Instruction(false, true, "should not appear")
		if strings.Contains(got, "should not appear") {
			t.Errorf("non-followup instruction leaked previous answer: %q", got)
		}
		if !strings.Contains(got, "new aspect") {
			t.Errorf("expected new-aspect instruction: %q", got)
		}
	})
}

func TestNextQuestionNumbering(t *testing.T) {
	got := NextQuestion("ctx", "instruction", "golang", 1)
	if !strings.Contains(got, "Question number: 2") {
		t.Errorf("expected question number 2 at step 1, got: %q", got)
	}
}

func TestEvaluationKinds(t *testing.T) {
	q := Evaluation(KindQuestion, "msgs", "content", "transcript", "Q?", "A.")
	a := Evaluation(KindAnswer, "msgs", "content", "transcript", "Q?", "A.")

	if !strings.Contains(q, "question quality") {
		t.Errorf("question evaluation prompt wrong kind: %q", q)
	}
	if !strings.Contains(a, "candidate answer quality") {
		t.Errorf("answer evaluation prompt wrong kind: %q", a)
	}
	if !strings.Contains(q, `"rating"`) {
		t.Error("evaluation prompt missing JSON schema hint")
	}
}

func TestContentTruncationInFrame(t *testing.T) {
	long := strings.Repeat("z", maxContentLen*2)
	got := Setup(long, "topic", true)
	if strings.Contains(got, strings.Repeat("z", maxContentLen+1)) {
		t.Error("reference content not truncated to maxContentLen")
	}
}
