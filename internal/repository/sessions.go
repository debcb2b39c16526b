package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yatube-go/yatube/pkg/session"
)

// SessionStore keeps sessions in the sessions table. Values are stored
// as JSONB, so numbers come back as float64.
type SessionStore struct {
	db DBTX
}

var _ session.Store = (*SessionStore)(nil)

func NewSessionStore(db DBTX) *SessionStore {
	return &SessionStore{db: db}
}

const createSession = `
INSERT INTO sessions (id, token, user_id, data, ip, user_agent, created_at, last_active_at, expires_at)
VALUES ($1, $2, $3::uuid, $4, $5, $6, $7, $8, $9)`

func (s *SessionStore) Create(ctx context.Context, sess *session.Session) error {
	data, err := json.Marshal(sess.Values)
	if err != nil {
		return fmt.Errorf("encode session values: %w", err)
	}
	_, err = s.db.Exec(ctx, createSession,
		sess.ID, sess.Token, sess.UserID, data, sess.IP, sess.UserAgent,
		sess.CreatedAt, sess.LastActiveAt, sess.ExpiresAt)
	return mapErr("create session", err)
}

const getSession = `
SELECT id, token, user_id::text, data, ip, user_agent, created_at, last_active_at, expires_at
FROM sessions WHERE token = $1`

func (s *SessionStore) Get(ctx context.Context, token string) (*session.Session, error) {
	var (
		sess session.Session
		data []byte
	)
	err := s.db.QueryRow(ctx, getSession, token).Scan(
		&sess.ID, &sess.Token, &sess.UserID, &data, &sess.IP, &sess.UserAgent,
		&sess.CreatedAt, &sess.LastActiveAt, &sess.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, session.ErrNotFound
	}
	if err != nil {
		return nil, mapErr("get session", err)
	}
	if sess.IsExpired() {
		return nil, session.ErrExpired
	}
	if err := json.Unmarshal(data, &sess.Values); err != nil {
		return nil, fmt.Errorf("decode session values: %w", err)
	}
	return &sess, nil
}

const updateSession = `
UPDATE sessions
SET token = $2, user_id = $3::uuid, data = $4, last_active_at = $5, expires_at = $6
WHERE id = $1`

func (s *SessionStore) Update(ctx context.Context, sess *session.Session) error {
	data, err := json.Marshal(sess.Values)
	if err != nil {
		return fmt.Errorf("encode session values: %w", err)
	}
	tag, err := s.db.Exec(ctx, updateSession,
		sess.ID, sess.Token, sess.UserID, data, sess.LastActiveAt, sess.ExpiresAt)
	if err != nil {
		return mapErr("update session", err)
	}
	if tag.RowsAffected() == 0 {
		return session.ErrNotFound
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id)
	return mapErr("delete session", err)
}

func (s *SessionStore) DeleteByUserID(ctx context.Context, userID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE user_id = $1::uuid`, userID)
	return mapErr("delete user sessions", err)
}

func (s *SessionStore) Touch(ctx context.Context, id string, lastActiveAt time.Time) error {
	_, err := s.db.Exec(ctx, `UPDATE sessions SET last_active_at = $2 WHERE id = $1`, id, lastActiveAt)
	return mapErr("touch session", err)
}

// DeleteExpired removes sessions past their expiry and reports how many.
func (s *SessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM sessions WHERE expires_at < now()`)
	if err != nil {
		return 0, mapErr("delete expired sessions", err)
	}
	return tag.RowsAffected(), nil
}
