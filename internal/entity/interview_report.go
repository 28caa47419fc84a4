package entity

import (
	"time"

	"github.com/google/uuid"

	"ai-interviewer-be/pkg/interview/state"
)

// InterviewReport is the persisted terminal snapshot of a completed
// interview session.
type InterviewReport struct {
	Id              uuid.UUID
	SessionId       uuid.UUID
	Topic           string
	QuestionStyle   string
	Steps           int
	Transcript      []state.Turn
	Feedback        []state.TurnFeedback
	FinalEvaluation state.FinalEvaluation
	CreatedAt       time.Time
	UpdatedAt       *time.Time
	DeletedAt       *time.Time
	IsDeleted       bool
}
