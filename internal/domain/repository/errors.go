package repository

import "errors"

// ErrNotFound is returned by point lookups when no document matches.
// Callers distinguish it from transport failures.
var ErrNotFound = errors.New("record not found")
