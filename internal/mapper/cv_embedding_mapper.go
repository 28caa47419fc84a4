package mapper

import (
	"time"

	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CvEmbeddingMapper struct{}

func NewCvEmbeddingMapper() *CvEmbeddingMapper {
	return &CvEmbeddingMapper{}
}

func (m *CvEmbeddingMapper) ToEntity(e *model.CvEmbedding) *entity.CvEmbedding {
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

	return &entity.CvEmbedding{
		Id:             e.Id,
		SessionId:      e.SessionId,
		Document:       e.Document,
		EmbeddingValue: e.EmbeddingValue.Slice(),
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      e.DeletedAt.Valid,
	}
}

func (m *CvEmbeddingMapper) ToModel(e *entity.CvEmbedding) *model.CvEmbedding {
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

	return &model.CvEmbedding{
		Id:             e.Id,
		SessionId:      e.SessionId,
		Document:       e.Document,
		EmbeddingValue: pgvector.NewVector(e.EmbeddingValue),
		ChunkIndex:     e.ChunkIndex,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      updatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *CvEmbeddingMapper) ToEntities(embeddings []*model.CvEmbedding) []*entity.CvEmbedding {
	entities := make([]*entity.CvEmbedding, len(embeddings))
	for i, e := range embeddings {
		entities[i] = m.ToEntity(e)
	}
	return entities
}

func (m *CvEmbeddingMapper) ToModels(embeddings []*entity.CvEmbedding) []*model.CvEmbedding {
	models := make([]*model.CvEmbedding, len(embeddings))
	for i, e := range embeddings {
		models[i] = m.ToModel(e)
	}
	return models
}
