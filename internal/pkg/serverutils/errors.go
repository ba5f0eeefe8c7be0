package serverutils

import "errors"

// Generic failures services wrap so the error handler can pick a status.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
	ErrConflict  = errors.New("conflict")
	ErrBadInput  = errors.New("bad input")
)
