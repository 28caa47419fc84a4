// Package search defines the two context-acquisition contracts used by the
// interview engine: open-web keyword search and per-session indexed
// retrieval over embedded documents.
package search

import (
	"context"

	"github.com/google/uuid"
)

// Provider performs keyword search against an external source and returns
// plain-text snippets. Implementations return an empty slice, not an error,
// when nothing matches.
type Provider interface {
	Search(ctx context.Context, query string, topK int) ([]string, error)
}

// RetrievalResult is the outcome of one indexed-retrieval probe.
type RetrievalResult struct {
	// Snippets are the retrieved chunks, best match first.
	Snippets []string
	// BestDistance is the cosine distance of the closest chunk. Only
	// meaningful when IndexExists is true.
	BestDistance float64
	// IndexExists reports whether the session has any indexed content at
	// all. When false the caller must fall back to keyword search.
	IndexExists bool
}

// SessionRetriever probes a session's embedded document index.
type SessionRetriever interface {
	Retrieve(ctx context.Context, sessionID uuid.UUID, query string, topK int) (*RetrievalResult, error)
}
