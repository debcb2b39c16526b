// Package tasks holds the background jobs run by the job worker.
package tasks

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/yatube-go/yatube/pkg/mailer"
)

//go:embed emails
var emails embed.FS

// Emails returns the mail templates, with layouts under layouts/.
func Emails() fs.FS {
	sub, err := fs.Sub(emails, "emails")
	if err != nil {
		panic(err)
	}
	return sub
}

const (
	SendWelcomeEmailName = "send_welcome_email"
	CleanupSessionsName  = "cleanup_sessions"
)

// WelcomeEmail is the send_welcome_email payload.
type WelcomeEmail struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

// SendWelcomeEmail greets a freshly signed up user.
type SendWelcomeEmail struct {
	mailer *mailer.Mailer
}

func NewSendWelcomeEmail(m *mailer.Mailer) *SendWelcomeEmail {
	return &SendWelcomeEmail{mailer: m}
}

func (t *SendWelcomeEmail) Name() string { return SendWelcomeEmailName }

func (t *SendWelcomeEmail) Handle(ctx context.Context, p WelcomeEmail) error {
	err := t.mailer.Send(ctx, mailer.Message{
		To:       p.Email,
		Template: "welcome.md",
		Data:     map[string]any{"Username": p.Username},
	})
	if errors.Is(err, mailer.ErrNoRecipient) {
		// Retrying cannot fix a missing address.
		return nil
	}
	return err
}

// ExpiredSessionDeleter is implemented by repository.SessionStore.
type ExpiredSessionDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// CleanupSessions drops expired sessions every hour.
type CleanupSessions struct {
	store ExpiredSessionDeleter
	log   *slog.Logger
}

func NewCleanupSessions(store ExpiredSessionDeleter, log *slog.Logger) *CleanupSessions {
	return &CleanupSessions{store: store, log: log}
}

func (t *CleanupSessions) Name() string     { return CleanupSessionsName }
func (t *CleanupSessions) Schedule() string { return "0 * * * *" }

func (t *CleanupSessions) Handle(ctx context.Context) error {
	n, err := t.store.DeleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("cleanup sessions: %w", err)
	}
	t.log.InfoContext(ctx, "expired sessions removed", slog.Int64("count", n))
	return nil
}
