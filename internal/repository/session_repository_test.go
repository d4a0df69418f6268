package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestSessionRepo_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepo(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO session (user_id) VALUES (?)")).
		WithArgs(uint64(42)).
		WillReturnResult(sqlmock.NewResult(7, 1))

	sess, err := repo.Create(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), sess.ID)
	assert.Equal(t, uint64(42), sess.UserID)
	assert.True(t, sess.Active())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_FindOne(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepo(db)

	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "created_at", "id", "email", "provider", "role_id", "name"}).
		AddRow(7, 42, created, 42, "jane@example.com", "email", 1, "admin")
	mock.ExpectQuery("SELECT s.id, s.user_id, s.created_at").
		WithArgs(uint64(7)).
		WillReturnRows(rows)

	sess, err := repo.FindOne(context.Background(), 7)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, uint64(7), sess.ID)
	require.NotNil(t, sess.User)
	assert.Equal(t, uint64(42), sess.User.ID)
	assert.Equal(t, "admin", sess.User.RoleName())
	require.NoError(t, mock.ExpectationsWereMet())
}

// A soft-deleted session never matches the deleted_at IS NULL guard, so
// the repo reports it exactly like a missing row.
func TestSessionRepo_FindOne_Miss(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepo(db)

	mock.ExpectQuery("SELECT s.id, s.user_id, s.created_at").
		WithArgs(uint64(999)).
		WillReturnError(sql.ErrNoRows)

	sess, err := repo.FindOne(context.Background(), 999)
	require.NoError(t, err)
	assert.Nil(t, sess)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepo_SoftDelete_Idempotent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSessionRepo(db)

	del := regexp.QuoteMeta("UPDATE session SET deleted_at = NOW() WHERE id = ? AND deleted_at IS NULL")
	mock.ExpectExec(del).WithArgs(uint64(7)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(del).WithArgs(uint64(7)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.SoftDelete(context.Background(), 7))
	// Zero rows affected on the repeat call is still success.
	require.NoError(t, repo.SoftDelete(context.Background(), 7))
	require.NoError(t, mock.ExpectationsWereMet())
}
