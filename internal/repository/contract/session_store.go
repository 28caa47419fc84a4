package contract

import (
	"context"

	"github.com/google/uuid"

	"ai-interviewer-be/pkg/interview/state"
)

// SessionStore carries live interview state between requests. Entries
// expire on their own; a missing session reads as (nil, false, nil).
type SessionStore interface {
	Save(ctx context.Context, session *state.SessionState) error
	Get(ctx context.Context, sessionID uuid.UUID) (*state.SessionState, bool, error)
	Delete(ctx context.Context, sessionID uuid.UUID) error
}
