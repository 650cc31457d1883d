package postgres

import "github.com/pkg/errors"

// ErrNotFound is returned when an entity is not found.
var ErrNotFound = errors.New("row not found")
