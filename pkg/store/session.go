package store

import "time"

// Session is the in-memory login record for the web front end. It maps an
// opaque token to the account that created it. Sessions are not persisted:
// a process restart logs everyone out.
type Session struct {
	ID        string    `json:"id"`
	UserId    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
