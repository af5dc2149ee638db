package model

import "errors"

// Common errors used across the application
var (
	// Document store errors
	ErrNotPresent       = errors.New("document not present")
	ErrTransientFailure = errors.New("transient document store failure")
	ErrInvalidReference = errors.New("invalid document reference")

	// Access errors
	ErrAccessCodeNotFound = errors.New("access code not found")
	ErrInvalidInput       = errors.New("input is empty")
)
