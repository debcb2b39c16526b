package session

import (
	"context"
	"time"
)

// Store persists sessions.
type Store interface {
	// Create persists a new session.
	Create(ctx context.Context, s *Session) error

	// Get looks a session up by its cookie token.
	// Returns ErrNotFound for unknown tokens and ErrExpired for stale ones.
	Get(ctx context.Context, token string) (*Session, error)

	// Update saves token, user and values of an existing session.
	Update(ctx context.Context, s *Session) error

	// Delete removes a session by id.
	Delete(ctx context.Context, id string) error

	// DeleteByUserID removes every session of a user.
	DeleteByUserID(ctx context.Context, userID string) error

	// Touch bumps LastActiveAt without rewriting the session.
	Touch(ctx context.Context, id string, lastActiveAt time.Time) error
}
