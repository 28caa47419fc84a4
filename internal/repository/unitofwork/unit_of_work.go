package unitofwork

import (
	"context"

	"ai-interviewer-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CvEmbeddingRepository() contract.CvEmbeddingRepository
	InterviewReportRepository() contract.InterviewReportRepository
}
