package services

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidDate        = errors.New("invalid date format")
	ErrInvalidInput       = errors.New("invalid input")
	ErrNotFound           = errors.New("not found")

	// ErrClientNotFound matches ErrNotFound with errors.Is.
	ErrClientNotFound = fmt.Errorf("client %w", ErrNotFound)

	// ErrPasswordTooLong matches ErrInvalidInput; bcrypt only accepts 72 bytes.
	ErrPasswordTooLong = fmt.Errorf("password too long: %w", ErrInvalidInput)
)
