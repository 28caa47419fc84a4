// Package parse extracts structured evaluation records from raw model
// output. Models are instructed to return JSON but routinely wrap it in
// prose, so parsing is defensive: locate a brace-delimited object anywhere
// in the text, validate it, and substitute documented defaults on any
// failure. Nothing in this package ever returns an error.
package parse

import (
	"encoding/json"
	"regexp"

	"ai-interviewer-be/pkg/interview/state"
)

var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// TurnRating is the (rating, feedback) pair extracted for one evaluated
// question or answer.
type TurnRating struct {
	Rating   int    `json:"rating"`
	Feedback string `json:"feedback"`
}

// DefaultTurnRating is returned whenever extraction or validation fails.
func DefaultTurnRating() TurnRating {
	return TurnRating{Rating: 0, Feedback: "No feedback"}
}

// DefaultFinalEvaluation carries the conservative terminal defaults.
func DefaultFinalEvaluation() state.FinalEvaluation {
	return state.FinalEvaluation{
		OverallQuality:      0,
		Strengths:           []string{},
		AreasForImprovement: []string{},
		Recommendation:      "revise",
		FinalFeedback:       "No feedback available.",
	}
}

// extractJSON returns the first-to-last brace span of the text, or "" when
// no object-like block is present.
func extractJSON(raw string) string {
	return jsonBlockRe.FindString(raw)
}

func clampRating(r int) int {
	if r < 0 {
		return 0
	}
	if r > 10 {
		return 10
	}
	return r
}

// TurnRatingFrom parses a rating/feedback object out of raw model output.
func TurnRatingFrom(raw string) TurnRating {
	block := extractJSON(raw)
	if block == "" {
		return DefaultTurnRating()
	}

	var parsed TurnRating
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		return DefaultTurnRating()
	}

	parsed.Rating = clampRating(parsed.Rating)
	if parsed.Feedback == "" {
		parsed.Feedback = DefaultTurnRating().Feedback
	}
	return parsed
}

// FinalEvaluationFrom parses the holistic summary out of raw model output.
// Missing or invalid fields degrade per-field to the defaults rather than
// discarding the rest of the object.
func FinalEvaluationFrom(raw string) state.FinalEvaluation {
	defaults := DefaultFinalEvaluation()

	block := extractJSON(raw)
	if block == "" {
		return defaults
	}

	var parsed state.FinalEvaluation
	if err := json.Unmarshal([]byte(block), &parsed); err != nil {
		return defaults
	}

	parsed.OverallQuality = clampRating(parsed.OverallQuality)
	if parsed.Strengths == nil {
		parsed.Strengths = defaults.Strengths
	}
	if parsed.AreasForImprovement == nil {
		parsed.AreasForImprovement = defaults.AreasForImprovement
	}
	switch parsed.Recommendation {
	case "keep", "revise", "remove":
	default:
		parsed.Recommendation = defaults.Recommendation
	}
	if parsed.FinalFeedback == "" {
		parsed.FinalFeedback = defaults.FinalFeedback
	}
	return parsed
}
