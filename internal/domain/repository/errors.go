package repository

import "errors"

// ErrNotFound is returned by lookups and updates that matched no row.
// Delete is the exception: removing an absent id is a no-op.
var ErrNotFound = errors.New("not found")
