package implementation

import (
	"context"
	"errors"

	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/mapper"
	"ai-interviewer-be/internal/model"
	"ai-interviewer-be/internal/repository/contract"
	"ai-interviewer-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InterviewReportRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.InterviewReportMapper
}

func NewInterviewReportRepository(db *gorm.DB) contract.InterviewReportRepository {
	return &InterviewReportRepositoryImpl{
		db:     db,
		mapper: mapper.NewInterviewReportMapper(),
	}
}

func (r *InterviewReportRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *InterviewReportRepositoryImpl) Create(ctx context.Context, report *entity.InterviewReport) error {
	m := r.mapper.ToModel(report)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*report = *r.mapper.ToEntity(m)
	return nil
}

func (r *InterviewReportRepositoryImpl) FindBySessionId(ctx context.Context, sessionId uuid.UUID) (*entity.InterviewReport, error) {
	var m model.InterviewReport
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionId).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *InterviewReportRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.InterviewReport, error) {
	var models []*model.InterviewReport
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *InterviewReportRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.InterviewReport{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
