// Package markdown renders post bodies to sanitized HTML.
package markdown

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/yatube-go/yatube/pkg/sanitizer"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	// Single newlines stay line breaks, as authors type them.
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// Render converts markdown to HTML and strips anything unsafe. Raw HTML
// in the source is escaped by goldmark before sanitizing. On a render
// failure the text is returned escaped.
func Render(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(sanitizer.SanitizeHTML(buf.String())) //nolint:gosec // sanitized above
}
