package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrAuthentication covers every failed credential or token check. The
	// concrete reason is only logged.
	ErrAuthentication   = errors.New("could not validate credentials")
	ErrNotAuthenticated = errors.New("not authenticated")

	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPassword    = errors.New("invalid current password")
	ErrPasswordMismatch   = errors.New("new passwords do not match")

	ErrTodoNotFound = errors.New("todo not found")

	ErrVersionIsNotSpecified = errors.New("application version is not specified")
)
