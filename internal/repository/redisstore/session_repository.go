package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"todolist-be/internal/repository/contract"
	"todolist-be/pkg/store"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// SessionRepository is the redis-backed alternative to the in-memory store,
// for deployments that want logins to survive a process restart.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRepository(client *redis.Client, ttl time.Duration) contract.SessionStore {
	return &SessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, keyPrefix+session.ID, payload, r.ttl).Err()
}

func (r *SessionRepository) Get(ctx context.Context, sessionID string) (*store.Session, bool) {
	// Transient redis failures are treated the same as a missing session:
	// the user re-authenticates instead of seeing an internal error.
	payload, err := r.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		return nil, false
	}
	var session store.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, false
	}
	return &session, true
}

func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.client.Del(ctx, keyPrefix+sessionID).Err()
}
