// Package resend delivers mailer emails through the Resend API.
package resend

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v3"

	"github.com/yatube-go/yatube/pkg/mailer"
)

// Config holds Resend credentials. An empty APIKey disables the sender.
type Config struct {
	APIKey      string `env:"RESEND_API_KEY"`
	SenderEmail string `env:"RESEND_FROM_EMAIL" envDefault:"noreply@yatube.local"`
	SenderName  string `env:"RESEND_FROM_NAME" envDefault:"Yatube"`
}

func (c Config) Enabled() bool { return c.APIKey != "" }

// From formats the default sender address.
func (c Config) From() string {
	if c.SenderName == "" {
		return c.SenderEmail
	}
	return fmt.Sprintf("%s <%s>", c.SenderName, c.SenderEmail)
}

// Sender implements mailer.Sender.
type Sender struct {
	client *resend.Client
	cfg    Config
}

func New(cfg Config) *Sender {
	return &Sender{client: resend.NewClient(cfg.APIKey), cfg: cfg}
}

func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	_, err := s.client.Emails.SendWithContext(ctx, Request(s.cfg, email))
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

// Request maps an email to the Resend API request.
func Request(cfg Config, email *mailer.Email) *resend.SendEmailRequest {
	from := email.From
	if from == "" {
		from = cfg.From()
	}
	return &resend.SendEmailRequest{
		From:    from,
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
	}
}
