package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/ravshanbek/catalog-api/internal/httperr"
)

// RequireRole returns a middleware enforcing that the authenticated user's
// role (as stored by JWTAuth from the token's role claim) is in the allowed
// set. Requests with a missing or unknown role are rejected with 403. It
// assumes JWTAuth ran earlier in the chain.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ctxRole).(string)
			if !ok || !allowed[role] {
				return httperr.Forbidden()
			}
			return next(c)
		}
	}
}
