package memory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"ai-interviewer-be/internal/repository/contract"
	"ai-interviewer-be/pkg/interview/state"
)

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository builds an in-process session store. Sessions idle
// for an hour expire; expired entries are purged every 10 minutes.
func NewSessionRepository() contract.SessionStore {
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(ctx context.Context, session *state.SessionState) error {
	r.cache.Set(session.SessionID.String(), session, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, sessionID uuid.UUID) (*state.SessionState, bool, error) {
	if x, found := r.cache.Get(sessionID.String()); found {
		return x.(*state.SessionState), true, nil
	}
	return nil, false, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	r.cache.Delete(sessionID.String())
	return nil
}
