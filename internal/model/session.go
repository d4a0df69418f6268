package model

import "time"

// Session mirrors the `session` table. One row is created per successful
// login and soft-deleted on logout; rows are never hard-deleted so a
// session id found in an old refresh token always resolves to an auditable
// record. DeletedAt nil means the session is still active.
type Session struct {
	ID        uint64
	UserID    uint64
	User      *User // owning user, populated by SessionRepo.FindOne
	CreatedAt time.Time
	DeletedAt *time.Time
}

// Active reports whether the session has not been soft-deleted.
func (s *Session) Active() bool { return s.DeletedAt == nil }
