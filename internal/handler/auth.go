// Package handler implements the HTTP endpoints. Handlers bind and
// validate request bodies, delegate to the service/repository layer and
// map results onto view models; every failure is returned as an error for
// the central httperr handler to render.
package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ravshanbek/catalog-api/internal/httperr"
	"github.com/ravshanbek/catalog-api/internal/middleware"
	"github.com/ravshanbek/catalog-api/internal/model"
	"github.com/ravshanbek/catalog-api/internal/service"
)

// dbTimeout bounds every request-scoped database interaction.
const dbTimeout = 5 * time.Second

// Authenticator is the slice of the auth service the handler needs; tests
// substitute a fake.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Me(ctx context.Context, payload service.AccessPayload) (*model.User, error)
	Refresh(ctx context.Context, sessionID uint64) (service.TokenPair, error)
	Logout(ctx context.Context, sessionID uint64) error
}

// AuthHandler serves the /v1/auth endpoints.
type AuthHandler struct {
	svc Authenticator
}

func NewAuthHandler(svc Authenticator) *AuthHandler { return &AuthHandler{svc: svc} }

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResp is the login payload; the user is rendered through the me view.
type loginResp struct {
	Token        string  `json:"token"`
	RefreshToken string  `json:"refreshToken"`
	TokenExpires int64   `json:"tokenExpires"`
	User         *meView `json:"user"`
}

// Login handles POST /v1/auth/email/login.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("invalid body")
	}
	fields := map[string]string{}
	if strings.TrimSpace(req.Email) == "" {
		fields["email"] = "required"
	}
	if req.Password == "" {
		fields["password"] = "required"
	}
	if len(fields) > 0 {
		return httperr.Unprocessable(fields)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	res, err := h.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResp{
		Token:        res.Token,
		RefreshToken: res.RefreshToken,
		TokenExpires: res.TokenExpires,
		User:         toMeView(res.User),
	})
}

// Me handles GET /v1/auth/me. A valid token whose account has since been
// removed yields 200 with a null body, not 404.
func (h *AuthHandler) Me(c echo.Context) error {
	payload, ok := middleware.AccessPayload(c)
	if !ok {
		return httperr.Unauthorized()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	user, err := h.svc.Me(ctx, payload)
	if err != nil {
		return err
	}
	if user == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, toMeView(user))
}

// Refresh handles POST /v1/auth/refresh. The bearer refresh token was
// already verified by RefreshAuth; the service decides whether the session
// behind it is still alive.
func (h *AuthHandler) Refresh(c echo.Context) error {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		return httperr.Unauthorized()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	pair, err := h.svc.Refresh(ctx, sessionID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, pair)
}

// Logout handles POST /v1/auth/logout. Repeated logouts of the same
// session succeed; there is nothing to tell the client beyond 204.
func (h *AuthHandler) Logout(c echo.Context) error {
	sessionID, ok := middleware.SessionID(c)
	if !ok {
		return httperr.Unauthorized()
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.svc.Logout(ctx, sessionID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
