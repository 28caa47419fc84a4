package entity

import (
	"time"

	"github.com/google/uuid"
)

// CvEmbedding is one embedded chunk of a candidate's uploaded document,
// scoped to the interview session it was uploaded for.
type CvEmbedding struct {
	Id             uuid.UUID
	SessionId      uuid.UUID
	Document       string
	EmbeddingValue []float32
	ChunkIndex     int
	CreatedAt      time.Time
	UpdatedAt      *time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
