package contract

import (
	"context"

	"todolist-be/pkg/store"
)

// SessionStore holds web login sessions keyed by opaque token. The default
// implementation is in-process memory; a redis-backed one can be swapped in
// without touching callers.
type SessionStore interface {
	Save(ctx context.Context, session *store.Session) error
	Get(ctx context.Context, sessionID string) (*store.Session, bool)
	Delete(ctx context.Context, sessionID string) error
}
