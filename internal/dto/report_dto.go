package dto

import (
	"time"

	"github.com/google/uuid"
)

type InterviewReportResponse struct {
	Id              uuid.UUID                `json:"id"`
	SessionId       uuid.UUID                `json:"session_id"`
	Topic           string                   `json:"topic"`
	QuestionStyle   string                   `json:"question_style"`
	Steps           int                      `json:"steps"`
	Transcript      []TurnResponse           `json:"transcript"`
	Feedback        []TurnFeedbackResponse   `json:"feedback"`
	FinalEvaluation *FinalEvaluationResponse `json:"final_evaluation"`
	CreatedAt       time.Time                `json:"created_at"`
}

type ListReportsRequest struct {
	Topic  string `query:"topic"`
	Limit  int    `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int    `query:"offset" validate:"omitempty,min=0"`
}
