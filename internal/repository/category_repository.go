package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/ravshanbek/catalog-api/internal/model"
)

// CategoryRepo persists catalog categories. IDs are UUID strings generated
// on insert. All read paths exclude soft-deleted rows.
type CategoryRepo struct{ DB *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{DB: db} }

const categoryColumns = "id, name, slug, published, icon_id, created_at, updated_at"

// Create inserts a category and returns the stored record.
func (r *CategoryRepo) Create(ctx context.Context, name, slug string, published bool, iconID *string) (*model.Category, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO category (id, name, slug, published, icon_id) VALUES (?,?,?,?,?)",
		id, name, slug, published, iconID)
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// List returns one page of live categories plus the total count matching
// the filter. search, when non-empty, matches name or slug as a substring.
// Results are newest-first so fresh categories surface on page one.
func (r *CategoryRepo) List(ctx context.Context, page, limit int, search string) ([]model.Category, int, error) {
	where := "WHERE deleted_at IS NULL"
	args := []any{}
	if search != "" {
		where += " AND (name LIKE ? OR slug LIKE ?)"
		pat := "%" + search + "%"
		args = append(args, pat, pat)
	}

	var total int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM category "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+categoryColumns+" FROM category "+where+" ORDER BY created_at DESC, id LIMIT ? OFFSET ?",
		append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]model.Category, 0, limit)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *c)
	}
	return out, total, rows.Err()
}

// FindByID returns the live category or (nil, nil) when absent.
func (r *CategoryRepo) FindByID(ctx context.Context, id string) (*model.Category, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+categoryColumns+" FROM category WHERE id = ? AND deleted_at IS NULL LIMIT 1", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanCategory(rows)
}

// UpdateCategoryParams lists the patchable fields; nil means "leave as is".
type UpdateCategoryParams struct {
	Name      *string
	Slug      *string
	Published *bool
	IconID    *string
}

// Update applies the non-nil fields and returns the updated record, or
// (nil, nil) when the category does not exist. An empty patch is a no-op
// read.
func (r *CategoryRepo) Update(ctx context.Context, id string, p UpdateCategoryParams) (*model.Category, error) {
	sets := []string{}
	args := []any{}
	if p.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *p.Name)
	}
	if p.Slug != nil {
		sets = append(sets, "slug = ?")
		args = append(args, *p.Slug)
	}
	if p.Published != nil {
		sets = append(sets, "published = ?")
		args = append(args, *p.Published)
	}
	if p.IconID != nil {
		sets = append(sets, "icon_id = ?")
		args = append(args, *p.IconID)
	}
	if len(sets) > 0 {
		args = append(args, id)
		_, err := r.DB.ExecContext(ctx,
			"UPDATE category SET "+strings.Join(sets, ", ")+" WHERE id = ? AND deleted_at IS NULL",
			args...)
		if err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

// SoftDelete marks the category deleted; missing or already-deleted ids
// affect zero rows and are not an error.
func (r *CategoryRepo) SoftDelete(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE category SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL", id)
	return err
}

// scanCategory maps the current row of rows onto a model.Category.
func scanCategory(rows *sql.Rows) (*model.Category, error) {
	var (
		c      model.Category
		iconID sql.NullString
	)
	if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Published, &iconID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	c.IconID = nullStr(iconID)
	return &c, nil
}
