package internal

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yatube-go/yatube/pkg/logger"
	"github.com/yatube-go/yatube/pkg/session"
)

const (
	defaultSessionCookieName = "__sid"
	defaultSessionMaxAge     = 86400 * 30
	defaultTouchInterval     = 5 * time.Minute
)

// SessionManager loads, creates and rotates sessions and owns the
// session cookie.
type SessionManager struct {
	store         session.Store
	logger        *slog.Logger
	cookieName    string
	domain        string
	path          string
	maxAge        int
	touchInterval time.Duration
	sameSite      http.SameSite
	secure        bool
	httpOnly      bool
}

// SessionOption configures the SessionManager.
type SessionOption func(*SessionManager)

func NewSessionManager(store session.Store, opts ...SessionOption) *SessionManager {
	sm := &SessionManager{
		store:         store,
		logger:        logger.NewNope(),
		cookieName:    defaultSessionCookieName,
		maxAge:        defaultSessionMaxAge,
		touchInterval: defaultTouchInterval,
		path:          "/",
		httpOnly:      true,
		sameSite:      http.SameSiteLaxMode,
	}
	for _, opt := range opts {
		opt(sm)
	}
	return sm
}

func WithSessionCookieName(name string) SessionOption {
	return func(sm *SessionManager) {
		if name != "" {
			sm.cookieName = name
		}
	}
}

// WithSessionMaxAge sets the cookie and session lifetime.
func WithSessionMaxAge(d time.Duration) SessionOption {
	return func(sm *SessionManager) {
		if d > 0 {
			sm.maxAge = int(d.Seconds())
		}
	}
}

func WithSessionDomain(domain string) SessionOption {
	return func(sm *SessionManager) {
		sm.domain = domain
	}
}

func WithSessionSecure(secure bool) SessionOption {
	return func(sm *SessionManager) {
		sm.secure = secure
	}
}

// WithSessionTouchInterval sets how stale LastActiveAt may get before a
// request bumps it. Zero or less touches on every request.
func WithSessionTouchInterval(d time.Duration) SessionOption {
	return func(sm *SessionManager) {
		sm.touchInterval = d
	}
}

// SetLogger is called by App once options are applied.
func (sm *SessionManager) SetLogger(l *slog.Logger) {
	if l != nil {
		sm.logger = l
	}
}

func (sm *SessionManager) CookieName() string { return sm.cookieName }

// LoadSession returns the session named by the request cookie. Missing
// cookies, unknown tokens and expired sessions all yield nil, nil.
func (sm *SessionManager) LoadSession(ctx context.Context, r *http.Request) (*session.Session, error) {
	cookie, err := r.Cookie(sm.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}

	sess, err := sm.store.Get(ctx, cookie.Value)
	switch {
	case errors.Is(err, session.ErrNotFound), errors.Is(err, session.ErrExpired):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("load session: %w", err)
	}

	if now := time.Now(); now.Sub(sess.LastActiveAt) >= sm.touchInterval {
		if err := sm.store.Touch(ctx, sess.ID, now); err != nil {
			sm.logger.WarnContext(ctx, "failed to touch session",
				slog.String("session_id", sess.ID),
				slog.Any("error", err),
			)
		} else {
			sess.LastActiveAt = now
		}
	}

	return sess, nil
}

// CreateSession persists a new anonymous session for the request.
func (sm *SessionManager) CreateSession(ctx context.Context, r *http.Request) (*session.Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	sess := session.New(uuid.NewString(), token, time.Now().Add(time.Duration(sm.maxAge)*time.Second))
	sess.IP = clientIP(r)
	sess.UserAgent = r.UserAgent()

	if err := sm.store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	sess.ClearNew()
	sess.ClearDirty()
	return sess, nil
}

// SaveSession writes the session cookie.
func (sm *SessionManager) SaveSession(w http.ResponseWriter, sess *session.Session) {
	http.SetCookie(w, sm.cookie(sess.Token, sm.maxAge))
}

// RotateToken replaces the session token and persists the session. A
// failed update restores the old token.
func (sm *SessionManager) RotateToken(ctx context.Context, sess *session.Session) error {
	oldToken := sess.Token
	newToken, err := generateToken()
	if err != nil {
		return err
	}
	sess.Token = newToken
	sess.MarkDirty()

	if err := sm.store.Update(ctx, sess); err != nil {
		sess.Token = oldToken
		return fmt.Errorf("rotate session token: %w", err)
	}
	sess.ClearDirty()
	return nil
}

// DeleteSession expires the session cookie.
func (sm *SessionManager) DeleteSession(w http.ResponseWriter) {
	http.SetCookie(w, sm.cookie("", -1))
}

func (sm *SessionManager) Store() session.Store {
	return sm.store
}

func (sm *SessionManager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     sm.cookieName,
		Value:    value,
		Path:     sm.path,
		Domain:   sm.domain,
		MaxAge:   maxAge,
		Secure:   sm.secure,
		HttpOnly: sm.httpOnly,
		SameSite: sm.sameSite,
	}
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// clientIP prefers proxy headers over the socket address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
