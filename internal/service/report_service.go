package service

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"ai-interviewer-be/internal/dto"
	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/pkg/serverutils"
	"ai-interviewer-be/internal/repository/specification"
	"ai-interviewer-be/internal/repository/unitofwork"
)

type IReportService interface {
	Show(ctx context.Context, sessionId uuid.UUID) (*dto.InterviewReportResponse, error)
	List(ctx context.Context, req *dto.ListReportsRequest) ([]*dto.InterviewReportResponse, error)
}

type reportService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewReportService(uowFactory unitofwork.RepositoryFactory) IReportService {
	return &reportService{
		uowFactory: uowFactory,
	}
}

func (s *reportService) Show(ctx context.Context, sessionId uuid.UUID) (*dto.InterviewReportResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	report, err := uow.InterviewReportRepository().FindBySessionId(ctx, sessionId)
	if err != nil {
		return nil, err
	}
	if report == nil {
		return nil, serverutils.NewHttpError(fiber.StatusNotFound, "interview report not found")
	}
	return toReportResponse(report), nil
}

func (s *reportService) List(ctx context.Context, req *dto.ListReportsRequest) ([]*dto.InterviewReportResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: req.Offset},
	}
	if req.Topic != "" {
		specs = append(specs, specification.ByTopic{Topic: req.Topic})
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	reports, err := uow.InterviewReportRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.InterviewReportResponse, len(reports))
	for i, report := range reports {
		out[i] = toReportResponse(report)
	}
	return out, nil
}

func toReportResponse(report *entity.InterviewReport) *dto.InterviewReportResponse {
	transcript := make([]dto.TurnResponse, len(report.Transcript))
	for i, turn := range report.Transcript {
		transcript[i] = dto.TurnResponse(turn)
	}

	finalEval := report.FinalEvaluation
	return &dto.InterviewReportResponse{
		Id:              report.Id,
		SessionId:       report.SessionId,
		Topic:           report.Topic,
		QuestionStyle:   report.QuestionStyle,
		Steps:           report.Steps,
		Transcript:      transcript,
		Feedback:        dto.ToTurnFeedbackResponses(report.Feedback),
		FinalEvaluation: dto.ToFinalEvaluationResponse(&finalEval),
		CreatedAt:       report.CreatedAt,
	}
}
