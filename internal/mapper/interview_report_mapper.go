package mapper

import (
	"encoding/json"
	"time"

	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/model"
	"ai-interviewer-be/pkg/interview/state"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type InterviewReportMapper struct{}

func NewInterviewReportMapper() *InterviewReportMapper {
	return &InterviewReportMapper{}
}

func (m *InterviewReportMapper) ToEntity(e *model.InterviewReport) *entity.InterviewReport {
	if e == nil {
		return nil
	}

	var deletedAt *time.Time
	if e.DeletedAt.Valid {
		t := e.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !e.UpdatedAt.IsZero() {
		t := e.UpdatedAt
		updatedAt = &t
	}

	// Corrupt JSON columns degrade to zero values; the report header is
	// still usable.
	var transcript []state.Turn
	_ = json.Unmarshal(e.Transcript, &transcript)
	var feedback []state.TurnFeedback
	_ = json.Unmarshal(e.Feedback, &feedback)
	var finalEval state.FinalEvaluation
	_ = json.Unmarshal(e.FinalEvaluation, &finalEval)

	return &entity.InterviewReport{
		Id:              e.Id,
		SessionId:       e.SessionId,
		Topic:           e.Topic,
		QuestionStyle:   e.QuestionStyle,
		Steps:           e.Steps,
		Transcript:      transcript,
		Feedback:        feedback,
		FinalEvaluation: finalEval,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
		IsDeleted:       e.DeletedAt.Valid,
	}
}

func (m *InterviewReportMapper) ToModel(e *entity.InterviewReport) *model.InterviewReport {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if e.UpdatedAt != nil {
		updatedAt = *e.UpdatedAt
	}

	transcript, _ := json.Marshal(e.Transcript)
	feedback, _ := json.Marshal(e.Feedback)
	finalEval, _ := json.Marshal(e.FinalEvaluation)

	return &model.InterviewReport{
		Id:              e.Id,
		SessionId:       e.SessionId,
		Topic:           e.Topic,
		QuestionStyle:   e.QuestionStyle,
		Steps:           e.Steps,
		Transcript:      datatypes.JSON(transcript),
		Feedback:        datatypes.JSON(feedback),
		FinalEvaluation: datatypes.JSON(finalEval),
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       updatedAt,
		DeletedAt:       deletedAt,
	}
}

func (m *InterviewReportMapper) ToEntities(reports []*model.InterviewReport) []*entity.InterviewReport {
	entities := make([]*entity.InterviewReport, len(reports))
	for i, e := range reports {
		entities[i] = m.ToEntity(e)
	}
	return entities
}
