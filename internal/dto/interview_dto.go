package dto

import (
	"time"

	"github.com/google/uuid"

	"ai-interviewer-be/pkg/interview/state"
)

type CreateInterviewRequest struct {
	Topic         string `json:"topic" form:"topic" validate:"required,min=2"`
	QuestionStyle string `json:"question_style" form:"question_style"`
	MaxSteps      int    `json:"max_steps" form:"max_steps" validate:"omitempty,min=1,max=20"`
}

type CreateInterviewResponse struct {
	SessionId     uuid.UUID `json:"session_id"`
	Topic         string    `json:"topic"`
	QuestionStyle string    `json:"question_style"`
	Question      string    `json:"question"`
	Step          int       `json:"step"`
	MaxSteps      int       `json:"max_steps"`
	Status        string    `json:"status"`
	CvIndexing    bool      `json:"cv_indexing"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

type TurnFeedbackResponse struct {
	QuestionRating   int    `json:"question_rating"`
	QuestionFeedback string `json:"question_feedback"`
	AnswerRating     int    `json:"answer_rating"`
	AnswerFeedback   string `json:"answer_feedback"`
}

type FinalEvaluationResponse struct {
	OverallQuality      int      `json:"overall_quality"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
	Recommendation      string   `json:"recommendation"`
	FinalFeedback       string   `json:"final_feedback"`
}

type SubmitAnswerResponse struct {
	SessionId uuid.UUID `json:"session_id"`
	Status    string    `json:"status"`
	Step      int       `json:"step"`
	MaxSteps  int       `json:"max_steps"`

	// Question is the next question, empty once the session completed.
	Question string `json:"question,omitempty"`

	LastFeedback *TurnFeedbackResponse `json:"last_feedback,omitempty"`

	// Populated only on the terminal answer.
	Feedback        []TurnFeedbackResponse   `json:"feedback,omitempty"`
	FinalEvaluation *FinalEvaluationResponse `json:"final_evaluation,omitempty"`
}

type TurnResponse struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

type SessionStatusResponse struct {
	SessionId       uuid.UUID                `json:"session_id"`
	Topic           string                   `json:"topic"`
	QuestionStyle   string                   `json:"question_style"`
	Status          string                   `json:"status"`
	Step            int                      `json:"step"`
	MaxSteps        int                      `json:"max_steps"`
	PendingQuestion string                   `json:"pending_question,omitempty"`
	HasCvIndex      bool                     `json:"has_cv_index"`
	RetrievalUsed   bool                     `json:"retrieval_used"`
	SimilarityScore *float64                 `json:"similarity_score,omitempty"`
	Transcript      []TurnResponse           `json:"transcript"`
	Feedback        []TurnFeedbackResponse   `json:"feedback"`
	FinalEvaluation *FinalEvaluationResponse `json:"final_evaluation,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
}

func ToTurnFeedbackResponses(feedback []state.TurnFeedback) []TurnFeedbackResponse {
	out := make([]TurnFeedbackResponse, len(feedback))
	for i, f := range feedback {
		out[i] = TurnFeedbackResponse(f)
	}
	return out
}

func ToFinalEvaluationResponse(final *state.FinalEvaluation) *FinalEvaluationResponse {
	if final == nil {
		return nil
	}
	return &FinalEvaluationResponse{
		OverallQuality:      final.OverallQuality,
		Strengths:           final.Strengths,
		AreasForImprovement: final.AreasForImprovement,
		Recommendation:      final.Recommendation,
		FinalFeedback:       final.FinalFeedback,
	}
}
