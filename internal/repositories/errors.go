package repositories

import "errors"

// ErrNotFound is returned when a record with the requested identifier does not
// exist. Callers should test for it with errors.Is.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when an insert or update violates a uniqueness
// constraint.
var ErrDuplicate = errors.New("duplicate record")
