package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/yatube-go/yatube/pkg/session"
)

// SessionStore keeps sessions in memory. Stored sessions are copies, as
// they would be after a database round trip.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]session.Session
}

var _ session.Store = (*SessionStore)(nil)

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]session.Session)}
}

func (s *SessionStore) Create(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID] = snapshot(sess)
	return nil
}

func (s *SessionStore) Get(_ context.Context, token string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stored := range s.sessions {
		if stored.Token != token {
			continue
		}
		if stored.IsExpired() {
			return nil, session.ErrExpired
		}
		out := snapshot(&stored)
		return &out, nil
	}
	return nil, session.ErrNotFound
}

func (s *SessionStore) Update(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sess.ID]; !ok {
		return session.ErrNotFound
	}
	s.sessions[sess.ID] = snapshot(sess)
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *SessionStore) DeleteByUserID(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, stored := range s.sessions {
		if stored.UserID != nil && *stored.UserID == userID {
			delete(s.sessions, id)
		}
	}
	return nil
}

func (s *SessionStore) Touch(_ context.Context, id string, lastActiveAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if stored, ok := s.sessions[id]; ok {
		stored.LastActiveAt = lastActiveAt
		s.sessions[id] = stored
	}
	return nil
}

func (s *SessionStore) DeleteExpired(context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for id, stored := range s.sessions {
		if stored.IsExpired() {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

// Len reports how many sessions are stored.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func snapshot(sess *session.Session) session.Session {
	out := session.Session{
		CreatedAt:    sess.CreatedAt,
		LastActiveAt: sess.LastActiveAt,
		ExpiresAt:    sess.ExpiresAt,
		ID:           sess.ID,
		Token:        sess.Token,
		IP:           sess.IP,
		UserAgent:    sess.UserAgent,
		Values:       make(map[string]any, len(sess.Values)),
	}
	if sess.UserID != nil {
		id := *sess.UserID
		out.UserID = &id
	}
	for k, v := range sess.Values {
		out.Values[k] = v
	}
	return out
}
