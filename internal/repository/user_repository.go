package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/ravshanbek/catalog-api/internal/model"
	"github.com/ravshanbek/catalog-api/internal/utils"
)

// userColumns is the shared select list for user lookups; role and status
// names are resolved in the same query so the service layer never issues a
// second lookup to label a token.
const userColumns = `u.id, u.email, u.password, u.provider, u.social_id, u.first_name, u.last_name,
 u.photo_id, u.role_id, r.name, u.status_id, st.name, u.created_at, u.updated_at, u.deleted_at`

const userJoins = ` FROM user u
 LEFT JOIN role r ON r.id = u.role_id
 LEFT JOIN status st ON st.id = u.status_id`

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// CreateUserParams carries the admin-supplied fields for a new account.
// Password is plaintext here and hashed before it reaches the database.
type CreateUserParams struct {
	Email     string
	Password  string
	Provider  model.Provider
	FirstName *string
	LastName  *string
	PhotoID   *string
	RoleID    *int
	StatusID  *int
}

// Create inserts a user and returns the stored record. Emails are
// normalized (trimmed, lower-cased) before insert so lookups stay
// collation-independent.
func (r *UserRepo) Create(ctx context.Context, p CreateUserParams, bcryptCost int) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(p.Email))
	provider := p.Provider
	if provider == "" {
		provider = model.ProviderEmail
	}

	var hash sql.NullString
	if p.Password != "" {
		h, err := utils.HashPassword(p.Password, bcryptCost)
		if err != nil {
			return nil, err
		}
		hash = sql.NullString{String: h, Valid: true}
	}

	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO user (email, password, provider, first_name, last_name, photo_id, role_id, status_id)
		 VALUES (?,?,?,?,?,?,?,?)`,
		email, hash, string(provider), p.FirstName, p.LastName, p.PhotoID, p.RoleID, p.StatusID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, uint64(id))
}

// FindByEmail fetches a live user by normalized email, or (nil, nil) when
// no such user exists.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+userJoins+` WHERE u.email = ? AND u.deleted_at IS NULL LIMIT 1`,
		email)
	return scanUser(row)
}

// FindByID fetches a live user by id, or (nil, nil) when no such user
// exists.
func (r *UserRepo) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+userJoins+` WHERE u.id = ? AND u.deleted_at IS NULL LIMIT 1`,
		id)
	return scanUser(row)
}

// scanUser maps one joined row onto a model.User, folding NULL columns into
// empty strings or nil pointers.
func scanUser(row *sql.Row) (*model.User, error) {
	var (
		u          model.User
		email      sql.NullString
		password   sql.NullString
		provider   string
		socialID   sql.NullString
		firstName  sql.NullString
		lastName   sql.NullString
		photoID    sql.NullString
		roleID     sql.NullInt64
		roleName   sql.NullString
		statusID   sql.NullInt64
		statusName sql.NullString
		deletedAt  sql.NullTime
	)
	err := row.Scan(&u.ID, &email, &password, &provider, &socialID, &firstName, &lastName,
		&photoID, &roleID, &roleName, &statusID, &statusName, &u.CreatedAt, &u.UpdatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.Email = email.String
	u.PasswordHash = password.String
	u.Provider = model.Provider(provider)
	u.SocialID = nullStr(socialID)
	u.FirstName = nullStr(firstName)
	u.LastName = nullStr(lastName)
	u.PhotoID = nullStr(photoID)
	if roleID.Valid {
		u.Role = &model.Role{ID: int(roleID.Int64), Name: roleName.String}
	}
	if statusID.Valid {
		u.Status = &model.Status{ID: int(statusID.Int64), Name: statusName.String}
	}
	if deletedAt.Valid {
		t := deletedAt.Time
		u.DeletedAt = &t
	}
	return &u, nil
}

func nullStr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	v := s.String
	return &v
}
