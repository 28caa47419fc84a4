// Package transcript renders the interview history into the plain-text
// form fed to evaluation prompts and persisted reports.
package transcript

import (
	"fmt"
	"strings"

	"ai-interviewer-be/pkg/interview/state"
)

// Build renders every turn with its feedback, matching feedback entries to
// turns positionally. Turns without feedback yet (the just-answered one
// during evaluation) render with empty feedback lines.
func Build(turns []state.Turn, feedback []state.TurnFeedback) string {
	var b strings.Builder
	for i, turn := range turns {
		var qf, af string
		if i < len(feedback) {
			qf = feedback[i].QuestionFeedback
			af = feedback[i].AnswerFeedback
		}
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n", i+1, turn.Question, i+1, turn.Answer)
		fmt.Fprintf(&b, "Question Feedback: %s\nAnswer Feedback: %s\n\n", qf, af)
	}
	return strings.TrimSpace(b.String())
}
