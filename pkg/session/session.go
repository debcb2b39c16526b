// Package session holds the server-side session model shared by the
// session manager and its storage backends.
package session

import (
	"fmt"
	"time"
)

// Well-known value keys.
const (
	// KeyUsername caches the authenticated user's username for rendering.
	KeyUsername = "username"
)

// Session is a server-side session addressed by an opaque cookie token.
type Session struct {
	CreatedAt    time.Time
	LastActiveAt time.Time
	ExpiresAt    time.Time

	UserID    *string        // nil for anonymous sessions
	Values    map[string]any // persisted as JSON
	ID        string
	Token     string // rotated on authentication, never equal to ID
	IP        string
	UserAgent string

	dirty bool
	isNew bool
}

// New returns a fresh, unsaved session.
func New(id, token string, expiresAt time.Time) *Session {
	now := time.Now()
	return &Session{
		ID:           id,
		Token:        token,
		Values:       make(map[string]any),
		CreatedAt:    now,
		LastActiveAt: now,
		ExpiresAt:    expiresAt,
		isNew:        true,
		dirty:        true,
	}
}

// IsAuthenticated reports whether a user is attached to the session.
func (s *Session) IsAuthenticated() bool {
	return s.UserID != nil && *s.UserID != ""
}

// Authenticate attaches userID to the session.
func (s *Session) Authenticate(userID string) {
	s.UserID = &userID
	s.dirty = true
}

// SetValue stores val under key and marks the session dirty.
func (s *Session) SetValue(key string, val any) {
	if s.Values == nil {
		s.Values = make(map[string]any)
	}
	s.Values[key] = val
	s.dirty = true
}

func (s *Session) GetValue(key string) (any, bool) {
	if s.Values == nil {
		return nil, false
	}
	val, ok := s.Values[key]
	return val, ok
}

// DeleteValue removes key. The session only becomes dirty if key existed.
func (s *Session) DeleteValue(key string) {
	if _, ok := s.Values[key]; ok {
		delete(s.Values, key)
		s.dirty = true
	}
}

func (s *Session) IsDirty() bool { return s.dirty }
func (s *Session) MarkDirty()    { s.dirty = true }
func (s *Session) ClearDirty()   { s.dirty = false }
func (s *Session) IsNew() bool   { return s.isNew }
func (s *Session) ClearNew()     { s.isNew = false }

// IsExpired reports whether the session is past its expiry.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Value returns the value stored under key as T.
func Value[T any](s *Session, key string) (T, error) {
	var zero T
	if s == nil {
		return zero, ErrNotFound
	}
	raw, ok := s.GetValue(key)
	if !ok {
		return zero, ErrNotFound
	}
	v, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrTypeMismatch, key)
	}
	return v, nil
}

// ValueOr is Value with a fallback instead of an error.
func ValueOr[T any](s *Session, key string, fallback T) T {
	if v, err := Value[T](s, key); err == nil {
		return v
	}
	return fallback
}
