package model

import "time"

// Provider identifies where a user account originates. Accounts created
// with an email/password pair use ProviderEmail; accounts created through
// an external identity provider carry that provider's tag and have no
// usable password. The set is closed so the login flow can check it
// exhaustively instead of trusting a free-form string.
type Provider string

const (
	ProviderEmail    Provider = "email"
	ProviderGoogle   Provider = "google"
	ProviderApple    Provider = "apple"
	ProviderFacebook Provider = "facebook"
	ProviderTwitter  Provider = "twitter"
)

// Valid reports whether p is one of the known providers.
func (p Provider) Valid() bool {
	switch p {
	case ProviderEmail, ProviderGoogle, ProviderApple, ProviderFacebook, ProviderTwitter:
		return true
	}
	return false
}

// Role maps a small integer ID to a role name ("admin", "user").
type Role struct {
	ID   int
	Name string
}

// Status maps a small integer ID to an account status name
// ("active", "inactive").
type Status struct {
	ID   int
	Name string
}

// User mirrors the `user` table. Email and PasswordHash are empty strings
// when the underlying columns are NULL (provider accounts). Role and
// Status are populated by the repository via joins; both may be nil when
// the references are unset. DeletedAt is nil while the account is live.
// JSON tags are omitted on purpose: handlers expose users through explicit
// view mappings, never by serializing the entity.
type User struct {
	ID           uint64
	Email        string
	PasswordHash string
	Provider     Provider
	SocialID     *string
	FirstName    *string
	LastName     *string
	PhotoID      *string
	Role         *Role
	Status       *Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// RoleName returns the user's role name or "" when no role is assigned.
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
