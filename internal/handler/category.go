package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ravshanbek/catalog-api/internal/httperr"
	"github.com/ravshanbek/catalog-api/internal/model"
	"github.com/ravshanbek/catalog-api/internal/repository"
)

// Listing page size bounds; limit is clamped rather than rejected.
const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// CategoryHandler serves the /v1/categories CRUD endpoints.
type CategoryHandler struct {
	Categories *repository.CategoryRepo
	Files      *repository.FileRepo
}

func NewCategoryHandler(categories *repository.CategoryRepo, files *repository.FileRepo) *CategoryHandler {
	return &CategoryHandler{Categories: categories, Files: files}
}

type createCategoryReq struct {
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	Published *bool   `json:"published"`
	IconID    *string `json:"iconId"`
}

type categoryListResp struct {
	Data  []model.Category `json:"data"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// Create handles POST /v1/categories.
func (h *CategoryHandler) Create(c echo.Context) error {
	var req createCategoryReq
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("invalid body")
	}
	name := strings.TrimSpace(req.Name)
	slug := strings.TrimSpace(req.Slug)
	fields := map[string]string{}
	if name == "" {
		fields["name"] = "required"
	}
	if slug == "" {
		fields["slug"] = "required"
	}
	if len(fields) > 0 {
		return httperr.Unprocessable(fields)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if req.IconID != nil {
		if err := h.requireFile(ctx, c, *req.IconID); err != nil {
			return err
		}
	}
	published := true
	if req.Published != nil {
		published = *req.Published
	}

	cat, err := h.Categories.Create(ctx, name, slug, published, req.IconID)
	if err != nil {
		c.Logger().Errorf("create category: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusCreated, cat)
}

// List handles GET /v1/categories?page=&limit=&search=.
func (h *CategoryHandler) List(c echo.Context) error {
	page := queryInt(c, "page", defaultPage)
	if page < 1 {
		page = defaultPage
	}
	limit := queryInt(c, "limit", defaultLimit)
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	search := strings.TrimSpace(c.QueryParam("search"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	data, total, err := h.Categories.List(ctx, page, limit, search)
	if err != nil {
		c.Logger().Errorf("list categories: %v", err)
		return httperr.Internal()
	}
	return c.JSON(http.StatusOK, categoryListResp{Data: data, Total: total, Page: page, Limit: limit})
}

// Get handles GET /v1/categories/:id. A miss renders 200 null, matching
// the nullable findOne contract of the listing consumers.
func (h *CategoryHandler) Get(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	cat, err := h.Categories.FindByID(ctx, c.Param("id"))
	if err != nil {
		c.Logger().Errorf("get category: %v", err)
		return httperr.Internal()
	}
	if cat == nil {
		return c.JSON(http.StatusOK, nil)
	}
	return c.JSON(http.StatusOK, cat)
}

type updateCategoryReq struct {
	Name      *string `json:"name"`
	Slug      *string `json:"slug"`
	Published *bool   `json:"published"`
	IconID    *string `json:"iconId"`
}

// Update handles PATCH /v1/categories/:id; absent fields stay untouched.
func (h *CategoryHandler) Update(c echo.Context) error {
	var req updateCategoryReq
	if err := c.Bind(&req); err != nil {
		return httperr.BadRequest("invalid body")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if req.IconID != nil {
		if err := h.requireFile(ctx, c, *req.IconID); err != nil {
			return err
		}
	}
	cat, err := h.Categories.Update(ctx, c.Param("id"), repository.UpdateCategoryParams{
		Name:      req.Name,
		Slug:      req.Slug,
		Published: req.Published,
		IconID:    req.IconID,
	})
	if err != nil {
		c.Logger().Errorf("update category: %v", err)
		return httperr.Internal()
	}
	if cat == nil {
		return httperr.NotFound("category not found")
	}
	return c.JSON(http.StatusOK, cat)
}

// Delete handles DELETE /v1/categories/:id (soft). Deleting a missing or
// already-deleted category succeeds.
func (h *CategoryHandler) Delete(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Categories.SoftDelete(ctx, c.Param("id")); err != nil {
		c.Logger().Errorf("delete category: %v", err)
		return httperr.Internal()
	}
	return c.NoContent(http.StatusOK)
}

// requireFile rejects icon references that do not resolve to a file row.
func (h *CategoryHandler) requireFile(ctx context.Context, c echo.Context, id string) error {
	f, err := h.Files.FindByID(ctx, id)
	if err != nil {
		c.Logger().Errorf("lookup icon: %v", err)
		return httperr.Internal()
	}
	if f == nil {
		return httperr.Unprocessable(map[string]string{"iconId": "notFound"})
	}
	return nil
}

// queryInt parses an integer query parameter, falling back to def on
// absence or garbage.
func queryInt(c echo.Context, name string, def int) int {
	v := c.QueryParam(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
