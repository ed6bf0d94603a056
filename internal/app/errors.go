package app

import "errors"

// ErrNotFound and related errors describe validation and runtime failures.
var (
	ErrNotFound      = errors.New("not found")
	ErrOrderMismatch = errors.New("todo order does not match board contents")
)
