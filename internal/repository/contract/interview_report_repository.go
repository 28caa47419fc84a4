package contract

import (
	"context"

	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/repository/specification"

	"github.com/google/uuid"
)

type InterviewReportRepository interface {
	Create(ctx context.Context, report *entity.InterviewReport) error
	FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.InterviewReport, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InterviewReport, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
