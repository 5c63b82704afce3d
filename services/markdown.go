package services

import (
	"bytes"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// MarkdownRenderer turns note content into an HTML fragment. Raw HTML in the
// source is not passed through.
type MarkdownRenderer struct {
	md goldmark.Markdown
}

// NewMarkdownRenderer enables GitHub flavoured markdown, heading ids and
// chroma highlighting for fenced code. Highlighted code carries CSS classes
// instead of inline styles, so the client supplies the theme.
func NewMarkdownRenderer() *MarkdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	return &MarkdownRenderer{md: md}
}

// Render converts markdown source into an HTML fragment. Raw HTML blocks and
// inline tags in source are replaced with an omitted marker. Empty input
// renders to an empty fragment.
func (r *MarkdownRenderer) Render(source []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
