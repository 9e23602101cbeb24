package repository

import "errors"

// ErrNotFound is returned by update operations when no record matches the
// given identifier. Lookups follow the (nil, nil) convention instead.
var ErrNotFound = errors.New("record not found")
