package service

import (
	"context"
	"testing"
	"time"

	"todolist-be/internal/pkg/apperror"
	"todolist-be/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionWeek = 7 * 24 * time.Hour

func newTestSessionService(t *testing.T) *sessionService {
	t.Helper()
	svc := NewSessionService(memory.NewSessionRepository(sessionWeek), sessionWeek)
	return svc.(*sessionService)
}

func TestSessionRoundTrip(t *testing.T) {
	svc := newTestSessionService(t)
	ctx := context.Background()

	token, err := svc.Create(ctx, 42)
	require.NoError(t, err)
	assert.Len(t, token, 64) // 32 random bytes, hex encoded

	userId, err := svc.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userId)
}

func TestSessionTokensAreUnique(t *testing.T) {
	svc := newTestSessionService(t)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := svc.Create(ctx, int64(i))
		require.NoError(t, err)
		assert.False(t, seen[token])
		seen[token] = true
	}
}

func TestResolveRejectsUnknownToken(t *testing.T) {
	svc := newTestSessionService(t)

	_, err := svc.Resolve(context.Background(), "deadbeef")
	assert.ErrorIs(t, err, apperror.ErrSessionInvalid)

	_, err = svc.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, apperror.ErrSessionInvalid)
}

func TestSessionExpiry(t *testing.T) {
	svc := newTestSessionService(t)
	ctx := context.Background()

	start := time.Now()
	svc.now = func() time.Time { return start }

	token, err := svc.Create(ctx, 42)
	require.NoError(t, err)

	// still valid one day before the deadline
	svc.now = func() time.Time { return start.Add(6 * 24 * time.Hour) }
	userId, err := svc.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userId)

	// expired one day past the deadline
	svc.now = func() time.Time { return start.Add(8 * 24 * time.Hour) }
	_, err = svc.Resolve(ctx, token)
	assert.ErrorIs(t, err, apperror.ErrSessionInvalid)

	// and stays expired even if the clock rolls back
	svc.now = func() time.Time { return start }
	_, err = svc.Resolve(ctx, token)
	assert.ErrorIs(t, err, apperror.ErrSessionInvalid)
}

func TestDestroy(t *testing.T) {
	svc := newTestSessionService(t)
	ctx := context.Background()

	token, err := svc.Create(ctx, 42)
	require.NoError(t, err)

	require.NoError(t, svc.Destroy(ctx, token))

	_, err = svc.Resolve(ctx, token)
	assert.ErrorIs(t, err, apperror.ErrSessionInvalid)

	// destroying an absent token is a no-op
	assert.NoError(t, svc.Destroy(ctx, token))
}
