package mailer

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// ButtonExtension renders [!button|Label](url) as a call-to-action link
// styled by the email layout.
type ButtonExtension struct{}

func (ButtonExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(util.Prioritized(buttonParser{}, 50)))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(buttonRenderer{}, 50)))
}

var kindButton = ast.NewNodeKind("Button")

type buttonNode struct {
	ast.BaseInline
	label []byte
	url   []byte
}

func (n *buttonNode) Kind() ast.NodeKind { return kindButton }

func (n *buttonNode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"URL": string(n.url)}, nil)
}

var buttonOpen = []byte("[!button|")

type buttonParser struct{}

func (buttonParser) Trigger() []byte { return []byte{'['} }

func (buttonParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	rest, ok := bytes.CutPrefix(line, buttonOpen)
	if !ok {
		return nil
	}
	label, after, ok := bytes.Cut(rest, []byte("]("))
	if !ok || len(label) == 0 {
		return nil
	}
	url, _, ok := bytes.Cut(after, []byte(")"))
	if !ok || len(url) == 0 {
		return nil
	}

	block.Advance(len(buttonOpen) + len(label) + 2 + len(url) + 1)
	return &buttonNode{label: label, url: url}
}

type buttonRenderer struct{}

func (buttonRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(kindButton, func(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		n := node.(*buttonNode)
		_, _ = w.WriteString(`<a class="button" href="`)
		_, _ = w.Write(util.EscapeHTML(util.URLEscape(n.url, false)))
		_, _ = w.WriteString(`">`)
		_, _ = w.Write(util.EscapeHTML(n.label))
		_, _ = w.WriteString(`</a>`)
		return ast.WalkContinue, nil
	})
}
