// Package common defines shared constants and sentinel errors used across
// GuardianEye server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// Auth errors (invalid, malformed or revoked token).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Password reset errors.
	ErrInvalidResetToken = errors.New("password reset token is invalid or has expired")

	// Alert lifecycle errors.
	ErrAlreadyResolved = errors.New("alert already resolved")

	// Recording storage errors.
	ErrStorageNotConfigured = errors.New("object storage is not configured")
)
