package session

import "errors"

var (
	// ErrNotConfigured is returned by Context session helpers when the app
	// was built without WithSession.
	ErrNotConfigured = errors.New("session: not configured")

	// ErrNotFound is returned when no session exists for a token or id.
	ErrNotFound = errors.New("session: not found")

	// ErrExpired is returned by stores for sessions past ExpiresAt.
	ErrExpired = errors.New("session: expired")

	ErrTypeMismatch = errors.New("session: type mismatch")
)
