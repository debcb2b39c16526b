package mailer

import (
	"bytes"
	"context"
	"errors"
	texttemplate "text/template"
)

// Config holds mailer defaults.
type Config struct {
	FallbackSubject string `env:"MAILER_FALLBACK_SUBJECT" envDefault:"Yatube"`
	DefaultLayout   string `env:"MAILER_DEFAULT_LAYOUT" envDefault:"base.html"`
	// BaseURL is exposed to templates for absolute links.
	BaseURL string `env:"MAILER_BASE_URL" envDefault:"http://localhost:8080"`
}

// Mailer renders markdown templates and hands the result to a Sender.
type Mailer struct {
	sender   Sender
	renderer *Renderer
	cfg      Config
}

func New(sender Sender, renderer *Renderer, cfg Config) *Mailer {
	return &Mailer{sender: sender, renderer: renderer, cfg: cfg}
}

// Message is a templated email for one recipient.
type Message struct {
	To       string
	Template string // file name, e.g. "welcome.md"
	Data     map[string]any
	// Subject overrides the template's front matter subject.
	Subject string
}

// Send renders msg and delivers it. The subject comes from msg, then the
// template's front matter, then Config.FallbackSubject, and may use
// template actions over msg.Data.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return ErrNoRecipient
	}

	data := map[string]any{"BaseURL": m.cfg.BaseURL}
	for k, v := range msg.Data {
		data[k] = v
	}

	out, err := m.renderer.Render(m.cfg.DefaultLayout, msg.Template, data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	subject := msg.Subject
	if subject == "" {
		subject = out.Subject
	}
	if subject == "" {
		subject = m.cfg.FallbackSubject
	}
	subject, err = expand(subject, data)
	if err != nil {
		return errors.Join(ErrRenderFailed, err)
	}

	email := &Email{
		To:      []string{msg.To},
		Subject: subject,
		HTML:    out.HTML,
		Text:    out.Text,
	}
	if err := m.sender.Send(ctx, email); err != nil {
		return errors.Join(ErrSendFailed, err)
	}
	return nil
}

func expand(s string, data any) (string, error) {
	tmpl, err := texttemplate.New("subject").Parse(s)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
