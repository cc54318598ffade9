package app

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrMissingFields     = errors.New("name, email, and password are required")
	ErrMissingLogin      = errors.New("email and password are required")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters")
	ErrPasswordTooLong   = errors.New("password must be at most 72 bytes")
	ErrEmailExists       = errors.New("email already registered")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrUserNotFound      = errors.New("user not found")
	ErrNameEmpty         = errors.New("name cannot be empty")
	ErrBioTooLong        = errors.New("bio must be less than 500 characters")
)
