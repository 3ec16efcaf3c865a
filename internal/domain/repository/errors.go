package repository

import "errors"

// ErrDuplicateKey is returned (wrapped) when a write violates a unique constraint.
var ErrDuplicateKey = errors.New("duplicate key")
