package domain

import "errors"

var (
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("user already exists with this email")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserHasCars        = errors.New("user still has registered cars")
	ErrCarNotFound        = errors.New("car not found")
	ErrOwnerNotFound      = errors.New("owner user does not exist")
	ErrTooManyAttempts    = errors.New("too many login attempts")
)
