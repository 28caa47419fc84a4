package transcript

import (
	"strings"
	"testing"

	"ai-interviewer-be/pkg/interview/state"
)

func TestBuild(t *testing.T) {
	turns := []state.Turn{
		{Question: "What is a goroutine?", Answer: "A lightweight thread."},
		{Question: "How do channels work?", Answer: "They pass values between goroutines."},
	}
	feedback := []state.TurnFeedback{
		{QuestionRating: 8, QuestionFeedback: "Clear question.", AnswerRating: 7, AnswerFeedback: "Accurate."},
	}

	got := Build(turns, feedback)

	if !strings.Contains(got, "Q1: What is a goroutine?") {
		t.Errorf("missing first question: %q", got)
	}
	if !strings.Contains(got, "A2: They pass values between goroutines.") {
		t.Errorf("missing second answer: %q", got)
	}
	if !strings.Contains(got, "Question Feedback: Clear question.") {
		t.Errorf("missing first turn feedback: %q", got)
	}

	// Second turn has no feedback yet, lines render empty.
	if !strings.Contains(got, "Question Feedback: \nAnswer Feedback:") {
		t.Errorf("unfed turn should render empty feedback lines: %q", got)
	}

	if strings.HasSuffix(got, "\n") {
		t.Error("output should be trimmed")
	}
}

func TestBuildEmpty(t *testing.T) {
	if got := Build(nil, nil); got != "" {
		t.Errorf("Build(nil, nil) = %q, want empty", got)
	}
}
