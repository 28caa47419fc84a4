package contract

import (
	"context"

	"ai-interviewer-be/internal/entity"
	"ai-interviewer-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredCvEmbedding wraps CvEmbedding with its cosine distance to a query
// vector (0.0 = identical).
type ScoredCvEmbedding struct {
	Embedding *entity.CvEmbedding
	Distance  float64
}

type CvEmbeddingRepository interface {
	Create(ctx context.Context, embedding *entity.CvEmbedding) error
	CreateBulk(ctx context.Context, embeddings []*entity.CvEmbedding) error
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CvEmbedding, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithDistance returns a session's chunks nearest to the
	// query vector, closest first.
	SearchSimilarWithDistance(ctx context.Context, sessionId uuid.UUID, embedding []float32, limit int) ([]*ScoredCvEmbedding, error)
}
