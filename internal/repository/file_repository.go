package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/ravshanbek/catalog-api/internal/model"
)

// FileRepo persists file metadata: a UUID id and the bucket key the object
// is stored under. The bytes themselves live in S3.
type FileRepo struct{ DB *sql.DB }

func NewFileRepo(db *sql.DB) *FileRepo { return &FileRepo{DB: db} }

// Create inserts a file row for the given storage key.
func (r *FileRepo) Create(ctx context.Context, path string) (*model.File, error) {
	id := uuid.NewString()
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO file (id, path) VALUES (?,?)", id, path)
	if err != nil {
		return nil, err
	}
	return &model.File{ID: id, Path: path}, nil
}

// FindByID returns the file row or (nil, nil) when absent.
func (r *FileRepo) FindByID(ctx context.Context, id string) (*model.File, error) {
	var f model.File
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, path FROM file WHERE id = ? LIMIT 1", id).Scan(&f.ID, &f.Path)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}
