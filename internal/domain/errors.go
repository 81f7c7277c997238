package domain

import "errors"

// Store-level sentinel errors. Repositories wrap these; usecases map them to HTTP errors.
var (
	ErrNotFound    = errors.New("resource not found")
	ErrEmailExists = errors.New("email already registered")
)
