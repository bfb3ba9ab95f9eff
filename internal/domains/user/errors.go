package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Service-level errors
var (
	// Deliberately generic: does not reveal whether the email exists
	ErrInvalidCredentials = errors.New("invalid email or password")
)
