package bootstrap

import (
	"context"

	"github.com/google/uuid"

	"ai-interviewer-be/internal/repository/unitofwork"
	"ai-interviewer-be/pkg/search/retrieval"
)

// gormChunkSearcher adapts the CV embedding repository to the retrieval
// provider's searcher contract.
type gormChunkSearcher struct {
	uowFactory unitofwork.RepositoryFactory
}

func newGormChunkSearcher(uowFactory unitofwork.RepositoryFactory) retrieval.ChunkSearcher {
	return &gormChunkSearcher{uowFactory: uowFactory}
}

func (s *gormChunkSearcher) SearchSimilar(ctx context.Context, sessionID uuid.UUID, queryVector []float32, topK int) ([]retrieval.ScoredChunk, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.CvEmbeddingRepository().SearchSimilarWithDistance(ctx, sessionID, queryVector, topK)
	if err != nil {
		return nil, err
	}

	chunks := make([]retrieval.ScoredChunk, len(scored))
	for i, sc := range scored {
		chunks[i] = retrieval.ScoredChunk{
			Content:  sc.Embedding.Document,
			Distance: sc.Distance,
		}
	}
	return chunks, nil
}
