package prompt

import (
	"fmt"
	"strings"
)

// maxContentLen bounds the sanitized context block injected into prompts so
// accumulated snippets cannot overflow the model context window.
const maxContentLen = 2000

// SafeText normalizes and truncates text that is interpolated into a prompt.
// It never fails; a nil-ish input just yields "".
func SafeText(text string, maxLen int) string {
	if text == "" {
		return ""
	}
	sanitized := strings.ReplaceAll(text, "\r", "")
	sanitized = strings.ReplaceAll(sanitized, "\t", "    ")
	if maxLen > 0 && len(sanitized) > maxLen {
		sanitized = sanitized[:maxLen]
	}
	return sanitized
}

// build assembles the standard prompt frame: persona, sanitized reference
// content, task body.
func build(roleDesc, content, body string) string {
	var b strings.Builder
	b.WriteString("You are ")
	b.WriteString(roleDesc)
	b.WriteString(".\n")
	b.WriteString("Using the following reference content:\n")
	b.WriteString(SafeText(content, maxContentLen))
	b.WriteString("\n\n")
	b.WriteString(body)
	return strings.TrimSpace(b.String())
}

// Setup builds the prompt for the opening question.
func Setup(contentText, topic string, isBroad bool) string {
	style := "Ask a specific, detailed question."
	if isBroad {
		style = "Ask a broad, general question."
	}
	body := fmt.Sprintf("Generate question #1 for the topic: %s.\n%s\nReturn ONLY the question text.", topic, style)
	return build("an expert interviewer", contentText, body)
}

// Instruction builds the style-specific instruction for subsequent
// questions. When continuity is follow-up but no previous answer exists it
// degrades to a generic build-on-the-discussion instruction instead of
// referencing an empty string.
func Instruction(isFollowup, isBroad bool, previousAnswer string) string {
	style := "specific, detailed"
	if isBroad {
		style = "broad, general"
	}

	if !isFollowup {
		return fmt.Sprintf("Generate a %s question that explores a new aspect of the topic, independent of the previous answer.", style)
	}
	if strings.TrimSpace(previousAnswer) == "" {
		return fmt.Sprintf("Generate a %s follow-up question that builds on the previous discussion.", style)
	}
	return fmt.Sprintf("Generate a %s follow-up question that directly probes details from the previous answer: %s", style, previousAnswer)
}

// NextQuestion builds the prompt for question number step+1.
func NextQuestion(contentText, instruction, topic string, step int) string {
	body := fmt.Sprintf("%s\nTopic: %s\nQuestion number: %d\nReturn ONLY the question text.", instruction, topic, step+1)
	return build("an expert interviewer", contentText, body)
}

// Evaluation kinds.
const (
	KindQuestion = "question"
	KindAnswer   = "answer"
)

// Evaluation builds the prompt scoring either the question or the answer of
// the just-completed turn against the whole interview history.
func Evaluation(kind, fullMessages, fullContent, transcript, lastQuestion, lastAnswer string) string {
	kindDesc := "candidate answer"
	if kind == KindQuestion {
		kindDesc = "question"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Evaluate the following %s for its clarity, relevance, and ability to probe understanding,\n", kindDesc)
	b.WriteString("considering the ENTIRE interview history, accumulated context, all previous messages, questions, answers, and feedback.\n\n")
	fmt.Fprintf(&b, "Full Interview History (Messages): %s\n", SafeText(fullMessages, maxContentLen))
	fmt.Fprintf(&b, "Accumulated Context (Search Snippets): %s\n", SafeText(fullContent, maxContentLen))
	fmt.Fprintf(&b, "Previous Q&A Transcript: %s\n", SafeText(transcript, maxContentLen))
	fmt.Fprintf(&b, "Current Question: %s\n", SafeText(lastQuestion, maxContentLen))
	fmt.Fprintf(&b, "Current Candidate Answer: %s\n\n", SafeText(lastAnswer, maxContentLen))
	fmt.Fprintf(&b, "Provide a rating (1-10) for %s quality and 2-3 sentence feedback.\n", kindDesc)
	b.WriteString("Return in JSON format:\n{\n    \"rating\": 0,\n    \"feedback\": \"...\"\n}")

	return build("an expert interviewer", "", b.String())
}

// FinalEvaluation builds the prompt for the holistic end-of-interview summary.
func FinalEvaluation(transcript string) string {
	var b strings.Builder
	b.WriteString("Based on this transcript, produce a JSON summary evaluation of the questions:\n")
	b.WriteString(SafeText(transcript, maxContentLen))
	b.WriteString("\n\nJSON format ONLY, with explicit types:\n")
	b.WriteString("{\n")
	b.WriteString("    \"overall_quality\": 0,\n")
	b.WriteString("    \"strengths\": [\"...\"],\n")
	b.WriteString("    \"areas_for_improvement\": [\"...\"],\n")
	b.WriteString("    \"recommendation\": \"...\",\n")
	b.WriteString("    \"final_feedback\": \"...\"\n")
	b.WriteString("}")
	return build("an expert interviewer", "", b.String())
}
