package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ravshanbek/catalog-api/internal/httperr"
	"github.com/ravshanbek/catalog-api/internal/model"
	"github.com/ravshanbek/catalog-api/internal/repository"
)

// UserHandler serves the admin-only user management endpoint.
type UserHandler struct {
	Users      *repository.UserRepo
	BcryptCost int
}

func NewUserHandler(users *repository.UserRepo, bcryptCost int) *UserHandler {
	return &UserHandler{Users: users, BcryptCost: bcryptCost}
}

type createUserReq struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	Provider  string  `json:"provider"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	PhotoID   *string `json:"photoId"`
	RoleID    *int    `json:"roleId"`
	StatusID  *int    `json:"statusId"`
}

// Create handles POST /v1/users (admin role required by the router).
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserReq
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("invalid body")
	}

	provider := model.Provider(strings.TrimSpace(req.Provider))
	if provider == "" {
		provider = model.ProviderEmail
	}
	fields := map[string]string{}
	if !provider.Valid() {
		fields["provider"] = "unknownProvider"
	}
	// Email accounts authenticate with a password; provider accounts must
	// not carry one, their credential lives with the external provider.
	if provider == model.ProviderEmail {
		if strings.TrimSpace(req.Email) == "" {
			fields["email"] = "required"
		}
		if req.Password == "" {
			fields["password"] = "required"
		}
	}
	if len(fields) > 0 {
		return httperr.Unprocessable(fields)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	user, err := h.Users.Create(ctx, repository.CreateUserParams{
		Email:     req.Email,
		Password:  req.Password,
		Provider:  provider,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		PhotoID:   req.PhotoID,
		RoleID:    req.RoleID,
		StatusID:  req.StatusID,
	}, h.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return httperr.Unprocessable(map[string]string{"email": "emailAlreadyExists"})
		}
		c.Logger().Errorf("create user: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusCreated, toAdminView(user))
}
