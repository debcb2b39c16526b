// Package mailer sends transactional email rendered from markdown
// templates.
//
// A template is a markdown file with optional YAML front matter and
// text/template actions:
//
//	---
//	subject: Welcome to Yatube, {{.Username}}
//	---
//	Hi {{.Username}}!
//
//	[!button|Write your first post]({{.BaseURL}}/create/)
//
// The rendered HTML is wrapped in a layout from layouts/ and handed to
// a Sender: the Resend sender in production, LogSender otherwise.
package mailer
