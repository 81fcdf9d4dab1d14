package mailer

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/dmitrymomot/massmail/pkg/sanitizer"
)

// HTMLRenderer converts a rendered plain-text body, read as markdown, into
// a sanitized HTML alternative.
type HTMLRenderer struct {
	md goldmark.Markdown
}

// NewHTMLRenderer creates a renderer with GitHub-flavored markdown and hard
// line breaks, so single newlines in the body survive as <br>.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// Render converts text to sanitized HTML.
func (r *HTMLRenderer) Render(text string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("%w: failed to convert markdown: %v", ErrRender, err)
	}
	return sanitizer.EmailHTML(buf.String()), nil
}
