package service

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotOwner means the course exists but belongs to someone else.
	// Handlers map it to 403, never 404.
	ErrNotOwner = errors.New("not the course owner")

	ErrFileNotAllowed = errors.New("file type not allowed")
)
