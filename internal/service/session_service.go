package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"todolist-be/internal/pkg/apperror"
	"todolist-be/internal/repository/contract"
	"todolist-be/pkg/store"
)

type ISessionService interface {
	Create(ctx context.Context, userId int64) (string, error)
	Resolve(ctx context.Context, token string) (int64, error)
	Destroy(ctx context.Context, token string) error
}

type sessionService struct {
	sessions contract.SessionStore
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionService(sessions contract.SessionStore, ttl time.Duration) ISessionService {
	return &sessionService{
		sessions: sessions,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create issues an opaque 256-bit token. Guessing a live token is infeasible.
func (s *sessionService) Create(ctx context.Context, userId int64) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)

	now := s.now()
	session := &store.Session{
		ID:        token,
		UserId:    userId,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return "", err
	}
	return token, nil
}

func (s *sessionService) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, apperror.ErrSessionInvalid
	}
	session, found := s.sessions.Get(ctx, token)
	if !found {
		return 0, apperror.ErrSessionInvalid
	}
	if session.Expired(s.now()) {
		_ = s.sessions.Delete(ctx, token)
		return 0, apperror.ErrSessionInvalid
	}
	return session.UserId, nil
}

// Destroy is idempotent: destroying an absent token is a no-op.
func (s *sessionService) Destroy(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}
