package internal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yatube-go/yatube/pkg/session"
)

// memStore is a session.Store keyed by token.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
	touched  int
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]*session.Session)}
}

func (s *memStore) Create(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.Token] = sess
	return nil
}

func (s *memStore) Get(_ context.Context, token string) (*session.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, session.ErrNotFound
	}
	if sess.IsExpired() {
		return nil, session.ErrExpired
	}
	return sess, nil
}

func (s *memStore) Update(_ context.Context, sess *session.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, existing := range s.sessions {
		if existing.ID == sess.ID {
			delete(s.sessions, token)
		}
	}
	s.sessions[sess.Token] = sess
	return nil
}

func (s *memStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, sess := range s.sessions {
		if sess.ID == id {
			delete(s.sessions, token)
		}
	}
	return nil
}

func (s *memStore) DeleteByUserID(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, sess := range s.sessions {
		if sess.UserID != nil && *sess.UserID == userID {
			delete(s.sessions, token)
		}
	}
	return nil
}

func (s *memStore) Touch(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched++
	for _, sess := range s.sessions {
		if sess.ID == id {
			sess.LastActiveAt = at
		}
	}
	return nil
}

func requestWithCookie(token string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		r.AddCookie(&http.Cookie{Name: defaultSessionCookieName, Value: token})
	}
	return r
}

func TestSessionManager_CreateSession(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	sm := NewSessionManager(store)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.168.1.1:12345"
	r.Header.Set("User-Agent", "test-agent")

	sess, err := sm.CreateSession(context.Background(), r)
	require.NoError(t, err)

	assert.NotEmpty(t, sess.ID)
	assert.NotEmpty(t, sess.Token)
	assert.NotEqual(t, sess.ID, sess.Token)
	assert.Equal(t, "192.168.1.1", sess.IP)
	assert.Equal(t, "test-agent", sess.UserAgent)
	assert.False(t, sess.IsNew())
	assert.False(t, sess.IsDirty())
	assert.WithinDuration(t, time.Now().Add(30*24*time.Hour), sess.ExpiresAt, time.Minute)
	assert.Len(t, store.sessions, 1)
}

func TestSessionManager_LoadSession(t *testing.T) {
	t.Parallel()

	t.Run("no cookie", func(t *testing.T) {
		t.Parallel()

		sess, err := NewSessionManager(newMemStore()).LoadSession(context.Background(), requestWithCookie(""))
		require.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("unknown token is no session", func(t *testing.T) {
		t.Parallel()

		sess, err := NewSessionManager(newMemStore()).LoadSession(context.Background(), requestWithCookie("nope"))
		require.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("expired session is no session", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		_ = store.Create(context.Background(), session.New("id", "tok", time.Now().Add(-time.Minute)))

		sess, err := NewSessionManager(store).LoadSession(context.Background(), requestWithCookie("tok"))
		require.NoError(t, err)
		assert.Nil(t, sess)
	})

	t.Run("stale activity is touched", func(t *testing.T) {
		t.Parallel()

		store := newMemStore()
		stored := session.New("id", "tok", time.Now().Add(time.Hour))
		stored.LastActiveAt = time.Now().Add(-time.Hour)
		_ = store.Create(context.Background(), stored)

		sm := NewSessionManager(store)
		sess, err := sm.LoadSession(context.Background(), requestWithCookie("tok"))
		require.NoError(t, err)
		require.NotNil(t, sess)
		assert.Equal(t, 1, store.touched)
		assert.WithinDuration(t, time.Now(), sess.LastActiveAt, time.Second)

		_, err = sm.LoadSession(context.Background(), requestWithCookie("tok"))
		require.NoError(t, err)
		assert.Equal(t, 1, store.touched)
	})
}

func TestSessionManager_RotateToken(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	sm := NewSessionManager(store)
	sess, err := sm.CreateSession(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	old := sess.Token

	require.NoError(t, sm.RotateToken(context.Background(), sess))
	assert.NotEqual(t, old, sess.Token)

	_, err = store.Get(context.Background(), old)
	require.ErrorIs(t, err, session.ErrNotFound)
	_, err = store.Get(context.Background(), sess.Token)
	require.NoError(t, err)
}

func TestSessionManager_Cookies(t *testing.T) {
	t.Parallel()

	sm := NewSessionManager(newMemStore(), WithSessionSecure(true), WithSessionMaxAge(time.Hour))

	w := httptest.NewRecorder()
	sm.SaveSession(w, session.New("id", "tok", time.Now().Add(time.Hour)))
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	assert.Equal(t, "__sid", c.Name)
	assert.Equal(t, "tok", c.Value)
	assert.Equal(t, 3600, c.MaxAge)
	assert.True(t, c.HttpOnly)
	assert.True(t, c.Secure)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)

	w = httptest.NewRecorder()
	sm.DeleteSession(w)
	cookies = w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestClientIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "remote addr", remote: "10.0.0.1:5555", want: "10.0.0.1"},
		{name: "forwarded for", headers: map[string]string{"X-Forwarded-For": "1.2.3.4, 10.0.0.1"}, remote: "10.0.0.1:1", want: "1.2.3.4"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "5.6.7.8"}, remote: "10.0.0.1:1", want: "5.6.7.8"},
		{name: "remote without port", remote: "10.0.0.9", want: "10.0.0.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(r))
		})
	}
}
