// Package retrieval probes a session's embedded document index with an
// embedded query and reports the best-match distance alongside the
// retrieved chunks.
package retrieval

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"ai-interviewer-be/pkg/embedding"
	"ai-interviewer-be/pkg/search"
)

// ScoredChunk is one indexed chunk with its cosine distance to the query.
type ScoredChunk struct {
	Content  string
	Distance float64
}

// ChunkSearcher runs a nearest-neighbour search over a session's indexed
// chunks, closest first.
type ChunkSearcher interface {
	SearchSimilar(ctx context.Context, sessionID uuid.UUID, queryVector []float32, topK int) ([]ScoredChunk, error)
}

// Provider implements search.SessionRetriever on top of an embedding
// provider and a vector-searchable chunk store.
type Provider struct {
	embedder embedding.EmbeddingProvider
	searcher ChunkSearcher
	logger   *log.Logger
}

var _ search.SessionRetriever = &Provider{}

func NewProvider(embedder embedding.EmbeddingProvider, searcher ChunkSearcher, logger *log.Logger) *Provider {
	return &Provider{
		embedder: embedder,
		searcher: searcher,
		logger:   logger,
	}
}

// Retrieve embeds the query and searches the session's index. An empty
// index yields IndexExists=false so the caller can fall back to keyword
// search; embedding or search failures are real errors.
func (p *Provider) Retrieve(ctx context.Context, sessionID uuid.UUID, query string, topK int) (*search.RetrievalResult, error) {
	if topK <= 0 {
		topK = 3
	}

	embRes, err := p.embedder.Generate(query, "RETRIEVAL_QUERY")
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	chunks, err := p.searcher.SearchSimilar(ctx, sessionID, embRes.Embedding.Values, topK)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	if len(chunks) == 0 {
		return &search.RetrievalResult{
			Snippets:    []string{},
			IndexExists: false,
		}, nil
	}

	snippets := make([]string, len(chunks))
	best := chunks[0].Distance
	for i, chunk := range chunks {
		snippets[i] = chunk.Content
		if chunk.Distance < best {
			best = chunk.Distance
		}
	}

	if p.logger != nil {
		p.logger.Printf("[INFO] session %s: retrieved %d chunks, best distance %.4f", sessionID, len(chunks), best)
	}

	return &search.RetrievalResult{
		Snippets:     snippets,
		BestDistance: best,
		IndexExists:  true,
	}, nil
}
