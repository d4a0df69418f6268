package service

import (
	"context"
	"log"
	"time"

	"github.com/ravshanbek/catalog-api/internal/httperr"
	"github.com/ravshanbek/catalog-api/internal/model"
	"github.com/ravshanbek/catalog-api/internal/queue"
	"github.com/ravshanbek/catalog-api/internal/utils"
)

// UserStore is the slice of the user repository the auth flows need.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id uint64) (*model.User, error)
}

// SessionStore is the slice of the session repository the auth flows need.
type SessionStore interface {
	Create(ctx context.Context, userID uint64) (*model.Session, error)
	FindOne(ctx context.Context, id uint64) (*model.Session, error)
	SoftDelete(ctx context.Context, id uint64) error
}

// EventPublisher receives auth lifecycle events. Publishing is best-effort;
// implementations log failures and the auth flows never block on them.
type EventPublisher interface {
	UserLoggedIn(ctx context.Context, ev queue.UserLoggedInEvent)
	SessionRevoked(ctx context.Context, ev queue.SessionRevokedEvent)
}

// LoginResult is the full payload of a successful login.
type LoginResult struct {
	TokenPair
	User *model.User `json:"user"`
}

// AuthService orchestrates login, me, refresh and logout. Every failure it
// returns is a typed *httperr.Error: classified outcomes pass through,
// anything unexpected is logged and collapsed into a generic 500 so storage
// or signing internals never cross the API boundary.
type AuthService struct {
	users    UserStore
	sessions SessionStore
	tokens   *TokenIssuer
	events   EventPublisher // nil disables publishing
}

func NewAuthService(users UserStore, sessions SessionStore, tokens *TokenIssuer, events EventPublisher) *AuthService {
	return &AuthService{users: users, sessions: sessions, tokens: tokens, events: events}
}

// Login validates the credential pair, creates exactly one session row and
// returns a token pair bound to it.
//
// Failure modes, all 422 with field detail:
//   - unknown email            -> {email: "notFound"}
//   - non-password provider    -> {email: "needLoginViaProvider:<provider>"}
//   - bcrypt mismatch          -> {password: "incorrectPassword"}
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, s.internal("login: find user", err)
	}
	if user == nil {
		return nil, httperr.Unprocessable(map[string]string{"email": "notFound"})
	}
	if user.Provider != model.ProviderEmail {
		return nil, httperr.Unprocessable(map[string]string{
			"email": "needLoginViaProvider:" + string(user.Provider),
		})
	}
	if !utils.VerifyPassword(user.PasswordHash, password) {
		return nil, httperr.Unprocessable(map[string]string{"password": "incorrectPassword"})
	}

	sess, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return nil, s.internal("login: create session", err)
	}
	// A request aborted past this point leaves the session row behind with
	// no tokens referencing it. Accepted: the row is inert and expires with
	// the account, so there is no compensating delete.
	pair, err := s.tokens.Issue(user.ID, user.RoleName(), sess.ID)
	if err != nil {
		return nil, s.internal("login: issue tokens", err)
	}

	if s.events != nil {
		s.events.UserLoggedIn(ctx, queue.UserLoggedInEvent{
			UserID:    user.ID,
			SessionID: sess.ID,
			Email:     user.Email,
			LoggedAt:  sess.CreatedAt.Format(time.RFC3339),
		})
	}
	return &LoginResult{TokenPair: pair, User: user}, nil
}

// Me returns the user identified by a previously validated access token,
// or nil when the account no longer exists. No mutation.
func (s *AuthService) Me(ctx context.Context, payload AccessPayload) (*model.User, error) {
	user, err := s.users.FindByID(ctx, payload.ID)
	if err != nil {
		return nil, s.internal("me: find user", err)
	}
	return user, nil
}

// Refresh mints a fresh token pair bound to the same session. A missing or
// soft-deleted session is Unauthorized; no new session row is created.
func (s *AuthService) Refresh(ctx context.Context, sessionID uint64) (TokenPair, error) {
	sess, err := s.sessions.FindOne(ctx, sessionID)
	if err != nil {
		return TokenPair{}, s.internal("refresh: find session", err)
	}
	if sess == nil {
		return TokenPair{}, httperr.Unauthorized()
	}
	pair, err := s.tokens.Issue(sess.User.ID, sess.User.RoleName(), sess.ID)
	if err != nil {
		return TokenPair{}, s.internal("refresh: issue tokens", err)
	}
	return pair, nil
}

// Logout soft-deletes the session. Logging out an already-deleted or
// unknown session is not an error.
func (s *AuthService) Logout(ctx context.Context, sessionID uint64) error {
	if err := s.sessions.SoftDelete(ctx, sessionID); err != nil {
		return s.internal("logout: soft delete session", err)
	}
	if s.events != nil {
		s.events.SessionRevoked(ctx, queue.SessionRevokedEvent{SessionID: sessionID})
	}
	return nil
}

// internal logs the cause and returns the generic 500 the caller is allowed
// to see.
func (s *AuthService) internal(op string, err error) *httperr.Error {
	log.Printf("auth: %s: %v", op, err)
	return httperr.Internal()
}
