// Package views renders the HTML pages of the blog. Pages are embedded
// html/template files exposed as templ components, so handlers hand them
// straight to Context.Render.
package views

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"

	"github.com/a-h/templ"
)

//go:embed templates
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Static holds the stylesheet served under /static/.
func Static() fs.FS {
	return staticFS
}

// set holds one template tree per page, each parsed together with the
// layout and the partials.
type set struct {
	pages    map[string]*template.Template
	partials *template.Template
}

var templates = mustParse(templateFS)

func mustParse(fsys fs.FS) *set {
	s, err := parse(fsys)
	if err != nil {
		panic(err)
	}
	return s
}

func parse(fsys fs.FS) (*set, error) {
	shared := []string{"templates/layouts/*.html", "templates/partials/*.html"}

	partials, err := template.New("partials").Funcs(funcs).ParseFS(fsys, shared[1])
	if err != nil {
		return nil, fmt.Errorf("views: parse partials: %w", err)
	}

	pageFiles, err := fs.Glob(fsys, "templates/*/*.html")
	if err != nil {
		return nil, err
	}

	s := &set{pages: make(map[string]*template.Template), partials: partials}
	for _, file := range pageFiles {
		dir := path.Base(path.Dir(file))
		if dir == "layouts" || dir == "partials" {
			continue
		}
		name := dir + "/" + path.Base(file)
		t, err := template.New(name).Funcs(funcs).ParseFS(fsys, append(shared, file)...)
		if err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", name, err)
		}
		s.pages[name] = t
	}
	return s, nil
}

// page renders a full document through the base layout.
func page(name string, data any) templ.Component {
	return render(func(w io.Writer) error {
		t, ok := templates.pages[name]
		if !ok {
			return fmt.Errorf("views: unknown page %s", name)
		}
		return t.ExecuteTemplate(w, "base", data)
	})
}

// partial renders a fragment for htmx swaps.
func partial(name string, data any) templ.Component {
	return render(func(w io.Writer) error {
		return templates.partials.ExecuteTemplate(w, name, data)
	})
}

// render buffers output so a failing template never writes half a page.
func render(exec func(io.Writer) error) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		var buf bytes.Buffer
		if err := exec(&buf); err != nil {
			return err
		}
		_, err := buf.WriteTo(w)
		return err
	})
}
