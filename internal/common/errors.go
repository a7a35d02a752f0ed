// Package common contains shared constants and sentinel errors used across
// client and server layers of the archive. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Validation errors are raised before any backend call; the draft is
	// rejected and nothing is persisted.
	ErrValidation = errors.New("validation error")

	// Persistence errors cover backend write/delete/subscribe failures
	// (network, auth, quota). Surfaced as a single user-facing message,
	// no automatic retry of writes.
	ErrPersistence = errors.New("persistence error")

	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
