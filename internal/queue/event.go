// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// UserLoggedInEvent is published after a successful login. It carries
// enough for downstream consumers to log or trigger notifications without
// querying the primary database. Passwords and tokens never appear here.
type UserLoggedInEvent struct {
	UserID    uint64 `json:"user_id"`
	SessionID uint64 `json:"session_id"`
	Email     string `json:"email"`
	LoggedAt  string `json:"logged_at"`
}

// SessionRevokedEvent is published when a session is soft-deleted via
// logout.
type SessionRevokedEvent struct {
	SessionID uint64 `json:"session_id"`
}
