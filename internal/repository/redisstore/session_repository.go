// Package redisstore keeps interview sessions in Redis so several
// instances can serve the same interview.
package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"ai-interviewer-be/internal/repository/contract"
	"ai-interviewer-be/pkg/interview/state"
)

const sessionTTL = 1 * time.Hour

type SessionRepository struct {
	rdb *redis.Client
}

func NewSessionRepository(rdb *redis.Client) contract.SessionStore {
	return &SessionRepository{
		rdb: rdb,
	}
}

func sessionKey(sessionID uuid.UUID) string {
	return fmt.Sprintf("interview:session:%s", sessionID)
}

func (r *SessionRepository) Save(ctx context.Context, session *state.SessionState) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return r.rdb.Set(ctx, sessionKey(session.SessionID), payload, sessionTTL).Err()
}

func (r *SessionRepository) Get(ctx context.Context, sessionID uuid.UUID) (*state.SessionState, bool, error) {
	payload, err := r.rdb.Get(ctx, sessionKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var session state.SessionState
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, false, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, true, nil
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	return r.rdb.Del(ctx, sessionKey(sessionID)).Err()
}
