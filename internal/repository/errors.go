// Package repository implements raw-SQL data access over *sql.DB. Lookup
// methods return (nil, nil) on a clean miss so callers can distinguish
// "absent" from an actual query failure without comparing against
// sql.ErrNoRows everywhere.
package repository

import "errors"

// ErrEmailExists is returned when an insert violates the unique email
// constraint. Handlers translate it into a 422 with field detail.
var ErrEmailExists = errors.New("email already exists")
