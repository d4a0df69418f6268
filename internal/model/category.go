package model

import "time"

// Category mirrors the `category` table. IDs are UUID strings generated by
// the repository on insert. DeletedAt is nil for live rows; soft-deleted
// rows stay in the table but are excluded from every read path.
type Category struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	Published bool       `json:"published"`
	IconID    *string    `json:"iconId,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"-"`
}

// File mirrors the `file` table: a UUID id and the storage key the object
// lives under in the bucket.
type File struct {
	ID   string `json:"id"`
	Path string `json:"path"`
}
