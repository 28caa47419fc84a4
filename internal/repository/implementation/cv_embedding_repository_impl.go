package implementation

import (
	"context"

	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/mapper"
	"ai-interviewer-be/internal/model"
	"ai-interviewer-be/internal/repository/contract"
	"ai-interviewer-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CvEmbeddingRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.CvEmbeddingMapper
}

func NewCvEmbeddingRepository(db *gorm.DB) contract.CvEmbeddingRepository {
	return &CvEmbeddingRepositoryImpl{
		db:     db,
		mapper: mapper.NewCvEmbeddingMapper(),
	}
}

func (r *CvEmbeddingRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *CvEmbeddingRepositoryImpl) Create(ctx context.Context, embedding *entity.CvEmbedding) error {
	m := r.mapper.ToModel(embedding)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*embedding = *r.mapper.ToEntity(m)
	return nil
}

func (r *CvEmbeddingRepositoryImpl) CreateBulk(ctx context.Context, embeddings []*entity.CvEmbedding) error {
	if len(embeddings) == 0 {
		return nil
	}

	models := r.mapper.ToModels(embeddings)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}

	for i, m := range models {
		*embeddings[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *CvEmbeddingRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionId).Delete(&model.CvEmbedding{}).Error
}

func (r *CvEmbeddingRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CvEmbedding, error) {
	var models []*model.CvEmbedding
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *CvEmbeddingRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.CvEmbedding{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SearchSimilarWithDistance orders a session's chunks by cosine distance
// to the query vector. pgvector's <=> operator computes cosine distance
// directly (0 = identical, 2 = opposite).
func (r *CvEmbeddingRepositoryImpl) SearchSimilarWithDistance(ctx context.Context, sessionId uuid.UUID, embedding []float32, limit int) ([]*contract.ScoredCvEmbedding, error) {
	if limit <= 0 {
		limit = 5
	}

	type result struct {
		model.CvEmbedding
		Distance float64
	}
	var results []result

	queryVector := pgvector.NewVector(embedding)

	err := r.db.WithContext(ctx).
		Table("cv_embeddings").
		Select("cv_embeddings.*, embedding_value <=> ? as distance", queryVector).
		Where("session_id = ?", sessionId).
		Where("deleted_at IS NULL").
		Order("distance ASC").
		Limit(limit).
		Scan(&results).Error

	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredCvEmbedding, len(results))
	for i, res := range results {
		scored[i] = &contract.ScoredCvEmbedding{
			Embedding: r.mapper.ToEntity(&res.CvEmbedding),
			Distance:  res.Distance,
		}
	}
	return scored, nil
}
