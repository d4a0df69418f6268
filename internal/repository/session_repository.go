package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/ravshanbek/catalog-api/internal/model"
)

// SessionRepo persists login sessions. Sessions are only ever inserted and
// soft-deleted; the deleted_at flag is the sole mutation and it is
// idempotent, so no row is updated in place beyond that single transition.
type SessionRepo struct{ DB *sql.DB }

func NewSessionRepo(db *sql.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Create inserts an active session for the user and returns it with the
// generated id.
func (r *SessionRepo) Create(ctx context.Context, userID uint64) (*model.Session, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO session (user_id) VALUES (?)", userID)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &model.Session{
		ID:        uint64(id),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// FindOne returns the active session with its owning user (role resolved),
// or (nil, nil) when the session does not exist or was soft-deleted. The
// deleted_at guard is what turns a logged-out session into an absent one
// for the refresh flow.
func (r *SessionRepo) FindOne(ctx context.Context, id uint64) (*model.Session, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT s.id, s.user_id, s.created_at, u.id, u.email, u.provider, u.role_id, r.name
		 FROM session s
		 JOIN user u ON u.id = s.user_id
		 LEFT JOIN role r ON r.id = u.role_id
		 WHERE s.id = ? AND s.deleted_at IS NULL LIMIT 1`,
		id)

	var (
		sess     model.Session
		user     model.User
		email    sql.NullString
		provider string
		roleID   sql.NullInt64
		roleName sql.NullString
	)
	err := row.Scan(&sess.ID, &sess.UserID, &sess.CreatedAt,
		&user.ID, &email, &provider, &roleID, &roleName)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	user.Email = email.String
	user.Provider = model.Provider(provider)
	if roleID.Valid {
		user.Role = &model.Role{ID: int(roleID.Int64), Name: roleName.String}
	}
	sess.User = &user
	return &sess, nil
}

// SoftDelete marks the session deleted. Already-deleted or missing ids
// affect zero rows, which is not an error: logout is idempotent.
func (r *SessionRepo) SoftDelete(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE session SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL",
		id)
	return err
}
