// Package middleware contains reusable HTTP middleware: bearer-token
// validation for both token kinds, role enforcement and the redis response
// cache.
package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ravshanbek/catalog-api/internal/httperr"
	"github.com/ravshanbek/catalog-api/internal/service"
)

// Context keys set by the auth middlewares.
const (
	ctxAuthPayload = "auth_payload" // service.AccessPayload
	ctxRole        = "role"         // string, role name from the access token
	ctxSessionID   = "session_id"   // uint64, from the refresh token
)

// bearer extracts the raw token from the Authorization header; empty when
// the header is missing or not a bearer scheme.
func bearer(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}

// JWTAuth returns a middleware validating a bearer access token signed with
// secret. On success the decoded payload is stored in the context for
// handlers to read via AccessPayload(c).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearer(c)
			if raw == "" {
				return httperr.Unauthorized()
			}
			payload, err := service.ParseAccess(raw, secret)
			if err != nil {
				return httperr.Unauthorized()
			}
			c.Set(ctxAuthPayload, payload)
			c.Set(ctxRole, payload.Role)
			return next(c)
		}
	}
}

// RefreshAuth returns a middleware validating a bearer refresh token signed
// with the refresh secret. The session id claim is stored in the context
// for SessionID(c).
func RefreshAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearer(c)
			if raw == "" {
				return httperr.Unauthorized()
			}
			sessionID, err := service.ParseRefresh(raw, secret)
			if err != nil {
				return httperr.Unauthorized()
			}
			c.Set(ctxSessionID, sessionID)
			return next(c)
		}
	}
}

// AccessPayload reads the payload stored by JWTAuth. The bool is false when
// the middleware did not run on this route.
func AccessPayload(c echo.Context) (service.AccessPayload, bool) {
	p, ok := c.Get(ctxAuthPayload).(service.AccessPayload)
	return p, ok
}

// SessionID reads the session id stored by RefreshAuth.
func SessionID(c echo.Context) (uint64, bool) {
	id, ok := c.Get(ctxSessionID).(uint64)
	return id, ok
}
