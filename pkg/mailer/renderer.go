package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// Renderer turns markdown templates with YAML front matter into HTML
// wrapped in a layout. Templates live at the root of the filesystem and
// layouts under layouts/. Parsed templates are cached.
type Renderer struct {
	fsys fs.FS
	md   goldmark.Markdown

	mu        sync.Mutex
	templates map[string]*parsedTemplate
	layouts   map[string]*template.Template
}

type parsedTemplate struct {
	subject string
	body    *texttemplate.Template
}

// Rendered is the output of Renderer.Render.
type Rendered struct {
	Subject string
	HTML    string
	Text    string // the expanded markdown
}

func NewRenderer(fsys fs.FS) *Renderer {
	return &Renderer{
		fsys:      fsys,
		md:        goldmark.New(goldmark.WithExtensions(ButtonExtension{})),
		templates: make(map[string]*parsedTemplate),
		layouts:   make(map[string]*template.Template),
	}
}

// Render executes name with data, converts it to HTML and wraps it in
// layout as {{.Content}}.
func (r *Renderer) Render(layout, name string, data any) (*Rendered, error) {
	tmpl, err := r.template(name)
	if err != nil {
		return nil, err
	}
	lay, err := r.layout(layout)
	if err != nil {
		return nil, err
	}

	var text bytes.Buffer
	if err := tmpl.body.Execute(&text, data); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var body bytes.Buffer
	if err := r.md.Convert(text.Bytes(), &body); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var html bytes.Buffer
	err = lay.Execute(&html, map[string]any{
		"Subject": tmpl.subject,
		"Content": template.HTML(body.String()), //nolint:gosec // rendered from our own templates
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", layout, err)
	}

	return &Rendered{Subject: tmpl.subject, HTML: html.String(), Text: text.String()}, nil
}

func (r *Renderer) template(name string) (*parsedTemplate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.templates[name]; ok {
		return t, nil
	}

	raw, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	meta, body, err := splitFrontMatter(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	parsed, err := texttemplate.New(name).Parse(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	t := &parsedTemplate{subject: meta.Subject, body: parsed}
	r.templates[name] = t
	return t, nil
}

func (r *Renderer) layout(name string) (*template.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if l, ok := r.layouts[name]; ok {
		return l, nil
	}

	raw, err := fs.ReadFile(r.fsys, path.Join("layouts", name))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrLayoutNotFound, name)
	}
	l, err := template.New(name).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	r.layouts[name] = l
	return l, nil
}

type frontMatter struct {
	Subject string `yaml:"subject"`
}

// splitFrontMatter separates a leading "---" YAML block from the body.
// Content without one is all body.
func splitFrontMatter(raw []byte) (frontMatter, string, error) {
	var meta frontMatter

	raw = bytes.ReplaceAll(raw, []byte("\r\n"), []byte("\n"))
	rest, ok := bytes.CutPrefix(raw, []byte("---\n"))
	if !ok {
		return meta, string(raw), nil
	}

	head, body, ok := bytes.Cut(rest, []byte("\n---"))
	if !ok {
		return meta, "", fmt.Errorf("%w: missing closing ---", ErrInvalidFrontmatter)
	}
	if err := yaml.Unmarshal(head, &meta); err != nil {
		return meta, "", fmt.Errorf("%w: %w", ErrInvalidFrontmatter, err)
	}
	body = bytes.TrimPrefix(body, []byte("\n"))
	return meta, string(body), nil
}
