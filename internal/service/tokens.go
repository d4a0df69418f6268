// Package service contains the business logic between the HTTP handlers
// and the repositories: token issuing, the auth orchestration flows, file
// storage and queue publishing.
package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/errgroup"

	"github.com/ravshanbek/catalog-api/internal/config"
)

// AccessPayload is what a verified access token decodes to. Role is the
// role name embedded at issue time; SessionID ties the token back to the
// session row created at login.
type AccessPayload struct {
	ID        uint64
	Role      string
	SessionID uint64
}

// TokenPair bundles a freshly signed access/refresh token pair.
// TokenExpires is the absolute wall-clock expiry of the access token in
// Unix milliseconds, so clients never need to know the configured TTL.
type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
	TokenExpires int64  `json:"tokenExpires"`
}

// ErrInvalidToken is returned when a token fails signature or claim
// validation.
var ErrInvalidToken = errors.New("invalid token")

// TokenIssuer signs access and refresh tokens. The two tokens use distinct
// secrets: compromise of the refresh secret must not allow forging access
// tokens, and vice versa. The config is copied at construction and never
// mutated.
type TokenIssuer struct {
	cfg config.Auth
}

func NewTokenIssuer(cfg config.Auth) *TokenIssuer { return &TokenIssuer{cfg: cfg} }

// Issue signs both tokens of a pair. The access token carries
// {id, role, sessionId}; the refresh token carries {sessionId} only. The
// two signings are independent (different secrets, disjoint claim sets) and
// run concurrently; Issue waits for both before returning.
func (ti *TokenIssuer) Issue(userID uint64, role string, sessionID uint64) (TokenPair, error) {
	now := time.Now().UTC()
	accessExp := now.Add(ti.cfg.AccessTTL)
	refreshExp := now.Add(ti.cfg.RefreshTTL)

	pair := TokenPair{TokenExpires: accessExp.UnixMilli()}

	var g errgroup.Group
	g.Go(func() error {
		t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"id":        userID,
			"role":      role,
			"sessionId": sessionID,
			"iat":       now.Unix(),
			"exp":       accessExp.Unix(),
		})
		signed, err := t.SignedString([]byte(ti.cfg.Secret))
		if err != nil {
			return err
		}
		pair.Token = signed
		return nil
	})
	g.Go(func() error {
		t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sessionId": sessionID,
			"iat":       now.Unix(),
			"exp":       refreshExp.Unix(),
		})
		signed, err := t.SignedString([]byte(ti.cfg.RefreshSecret))
		if err != nil {
			return err
		}
		pair.RefreshToken = signed
		return nil
	})
	if err := g.Wait(); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

// ParseAccess verifies an access token against the access secret and
// returns its payload.
func ParseAccess(raw, secret string) (AccessPayload, error) {
	claims, err := parseHS256(raw, secret)
	if err != nil {
		return AccessPayload{}, err
	}
	id, ok1 := claimUint(claims, "id")
	sessionID, ok2 := claimUint(claims, "sessionId")
	role, ok3 := claims["role"].(string)
	if !ok1 || !ok2 || !ok3 {
		return AccessPayload{}, ErrInvalidToken
	}
	return AccessPayload{ID: id, Role: role, SessionID: sessionID}, nil
}

// ParseRefresh verifies a refresh token against the refresh secret and
// returns the session id it is bound to.
func ParseRefresh(raw, secret string) (uint64, error) {
	claims, err := parseHS256(raw, secret)
	if err != nil {
		return 0, err
	}
	sessionID, ok := claimUint(claims, "sessionId")
	if !ok {
		return 0, ErrInvalidToken
	}
	return sessionID, nil
}

// parseHS256 validates signature, algorithm and expiry, returning the raw
// claim map. Tokens signed with any non-HMAC method are rejected.
func parseHS256(raw, secret string) (jwt.MapClaims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// claimUint reads a numeric claim. JSON numbers decode as float64; string
// forms are not accepted because this issuer never writes them.
func claimUint(claims jwt.MapClaims, key string) (uint64, bool) {
	v, ok := claims[key].(float64)
	if !ok || v < 0 {
		return 0, false
	}
	return uint64(v), true
}
