package handler

import (
	"time"

	"github.com/ravshanbek/catalog-api/internal/model"
)

// View models make field exposure an explicit transformation instead of
// relying on struct tags on the entities. Password hashes never appear in
// any view.

type roleView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type statusView struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// meView is what a user sees about themselves: login endpoints and
// GET /v1/auth/me render it.
type meView struct {
	ID        uint64      `json:"id"`
	Email     string      `json:"email,omitempty"`
	Provider  string      `json:"provider"`
	FirstName *string     `json:"firstName"`
	LastName  *string     `json:"lastName"`
	PhotoID   *string     `json:"photoId,omitempty"`
	Role      *roleView   `json:"role"`
	Status    *statusView `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// adminView is the me view plus the external identity reference; rendered
// by the admin user-creation endpoint.
type adminView struct {
	meView
	SocialID *string `json:"socialId"`
}

func toMeView(u *model.User) *meView {
	if u == nil {
		return nil
	}
	v := &meView{
		ID:        u.ID,
		Email:     u.Email,
		Provider:  string(u.Provider),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		PhotoID:   u.PhotoID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
	if u.Role != nil {
		v.Role = &roleView{ID: u.Role.ID, Name: u.Role.Name}
	}
	if u.Status != nil {
		v.Status = &statusView{ID: u.Status.ID, Name: u.Status.Name}
	}
	return v
}

func toAdminView(u *model.User) *adminView {
	if u == nil {
		return nil
	}
	return &adminView{meView: *toMeView(u), SocialID: u.SocialID}
}
