package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateIdentity is returned when a username is already registered.
	ErrDuplicateIdentity = errors.New("username already registered")
	// ErrAuthFailure covers both unknown usernames and wrong passwords.
	ErrAuthFailure = errors.New("incorrect username or password")
	// ErrTokenInvalid covers expired, tampered, malformed and orphaned tokens.
	ErrTokenInvalid = errors.New("could not validate credentials")
	// ErrNotFound is returned for absent records and records owned by someone else.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is matched by every *ValidationError.
	ErrInvalidInput = errors.New("invalid input")
)

// ValidationError describes why an input was rejected. It matches
// ErrInvalidInput under errors.Is.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalid(reason string) error {
	return &ValidationError{Reason: reason}
}
