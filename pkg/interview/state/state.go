package state

import (
	"time"

	"github.com/google/uuid"
)

// Question style axes: breadth (broad vs narrow) and continuity
// (followup vs nonfollowup).
const (
	StyleBroadFollowup     = "broad_followup"
	StyleNarrowFollowup    = "narrow_followup"
	StyleBroadNonFollowup  = "broad_nonfollowup"
	StyleNarrowNonFollowup = "narrow_nonfollowup"
)

// Session lifecycle status.
const (
	StatusAwaitingAnswer = "AWAITING_ANSWER"
	StatusCompleted      = "COMPLETED"
)

// Message roles mirrored into the message log.
const (
	RoleUser        = "user"
	RoleInterviewer = "assistant"
	RoleCandidate   = "candidate"
	RoleSystem      = "system"
)

// NormalizeStyle returns a valid question style, falling back to
// broad_followup for anything unrecognized.
func NormalizeStyle(style string) (string, bool) {
	switch style {
	case StyleBroadFollowup, StyleNarrowFollowup, StyleBroadNonFollowup, StyleNarrowNonFollowup:
		return style, true
	default:
		return StyleBroadFollowup, false
	}
}

// Turn is one asked question and the candidate's answer to it.
type Turn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// TurnFeedback carries the two independent evaluations of a completed turn.
type TurnFeedback struct {
	QuestionRating   int    `json:"question_rating"`
	QuestionFeedback string `json:"question_feedback"`
	AnswerRating     int    `json:"answer_rating"`
	AnswerFeedback   string `json:"answer_feedback"`
}

// FinalEvaluation is the holistic summary produced exactly once, at the
// terminal step.
type FinalEvaluation struct {
	OverallQuality      int      `json:"overall_quality"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	Recommendation      string   `json:"recommendation"` // keep | revise | remove
	FinalFeedback       string   `json:"final_feedback"`
}

// Message is one entry of the session's conversational log.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// SessionState is the single mutable record threaded through an interview.
// It is created at setup, mutated by every engine step, and carried across
// requests by the session store.
type SessionState struct {
	SessionID     uuid.UUID `json:"session_id"`
	Topic         string    `json:"topic"`
	QuestionStyle string    `json:"question_style"`
	CVContent     string    `json:"cv_content,omitempty"`
	HasCVIndex    bool      `json:"has_cv_index"`

	// Append-only accumulations.
	BackgroundContext []string       `json:"background_context"`
	Transcript        []Turn         `json:"transcript"`
	Feedback          []TurnFeedback `json:"feedback"`
	Messages          []Message      `json:"messages"`

	Step     int `json:"step"`
	MaxSteps int `json:"max_steps"`

	// PendingQuestion is replaced, never appended, on each new question.
	PendingQuestion string `json:"pending_question"`

	// Transient per-turn retrieval decision. Recomputed before every
	// question generation; meaningless outside a single turn.
	RetrievalFlag   bool     `json:"retrieval_flag"`
	SimilarityScore *float64 `json:"similarity_score,omitempty"`

	FinalEvaluation *FinalEvaluation `json:"final_evaluation,omitempty"`

	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// New builds the initial state for a session. The first question is filled
// in by the engine's setup step.
func New(sessionID uuid.UUID, topic, style, cvContent string, maxSteps int) *SessionState {
	normalized, _ := NormalizeStyle(style)
	return &SessionState{
		SessionID:         sessionID,
		Topic:             topic,
		QuestionStyle:     normalized,
		CVContent:         cvContent,
		BackgroundContext: []string{},
		Transcript:        []Turn{},
		Feedback:          []TurnFeedback{},
		Messages:          []Message{},
		Step:              0,
		MaxSteps:          maxSteps,
		Status:            StatusAwaitingAnswer,
		CreatedAt:         time.Now(),
	}
}

// IsFollowup reports whether the style references the previous answer.
func (s *SessionState) IsFollowup() bool {
	return s.QuestionStyle == StyleBroadFollowup || s.QuestionStyle == StyleNarrowFollowup
}

// IsBroad reports whether the style asks general rather than detailed questions.
func (s *SessionState) IsBroad() bool {
	return s.QuestionStyle == StyleBroadFollowup || s.QuestionStyle == StyleBroadNonFollowup
}

// LastAnswer returns the most recent candidate answer, or "" before the
// first answer arrives.
func (s *SessionState) LastAnswer() string {
	if len(s.Transcript) == 0 {
		return ""
	}
	return s.Transcript[len(s.Transcript)-1].Answer
}

// AppendContext appends snippets to the accumulated background context.
func (s *SessionState) AppendContext(snippets ...string) {
	s.BackgroundContext = append(s.BackgroundContext, snippets...)
}
