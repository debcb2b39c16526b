package mailer

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

var (
	ErrNoRecipient        = errors.New("mailer: no recipient")
	ErrTemplateNotFound   = errors.New("mailer: template not found")
	ErrLayoutNotFound     = errors.New("mailer: layout not found")
	ErrInvalidFrontmatter = errors.New("mailer: invalid front matter")
	ErrRenderFailed       = errors.New("mailer: render failed")
	ErrSendFailed         = errors.New("mailer: send failed")
)

// Email is a rendered message ready for delivery.
type Email struct {
	Subject string
	HTML    string
	Text    string
	From    string // empty means the sender's default
	To      []string
}

// Sender delivers rendered emails.
type Sender interface {
	Send(ctx context.Context, email *Email) error
}

// LogSender writes emails to a logger instead of delivering them. It is
// the sender used when no provider is configured.
type LogSender struct {
	Logger *slog.Logger
}

func (s LogSender) Send(ctx context.Context, email *Email) error {
	s.Logger.InfoContext(ctx, "email not delivered, no provider configured",
		slog.String("to", strings.Join(email.To, ", ")),
		slog.String("subject", email.Subject),
		slog.String("text", email.Text),
	)
	return nil
}
