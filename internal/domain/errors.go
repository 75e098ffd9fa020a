package domain

import "errors"

// Client-correctable failures. Handlers answer these with 400.
var (
	ErrValidation      = errors.New("invalid input")
	ErrRelatedNotFound = errors.New("related record not found")
)
