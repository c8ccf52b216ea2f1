package generate

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// HTML renders README Markdown as an HTML fragment with GFM extensions.
func HTML(markdown string) ([]byte, error) {
	engine := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	var buf bytes.Buffer
	if err := engine.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("generate: markdown to html: %w", err)
	}
	return buf.Bytes(), nil
}
