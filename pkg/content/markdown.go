// Package content turns the markdown held in the site document into HTML
// safe to embed in the page.
package content

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Renderer converts markdown to sanitized HTML.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// NewRenderer returns a renderer with GitHub-flavored tables and lists and
// a UGC sanitizing policy. Links open in a new tab.
func NewRenderer() *Renderer {
	policy := bluemonday.UGCPolicy()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return &Renderer{
		md:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		policy: policy,
	}
}

// Render converts src. The result is safe to place in a template.
func (r *Renderer) Render(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("error rendering markdown: %w", err)
	}
	return template.HTML(r.policy.SanitizeBytes(buf.Bytes())), nil
}

// RenderAll converts every entry, stopping at the first error.
func (r *Renderer) RenderAll(srcs []string) ([]template.HTML, error) {
	out := make([]template.HTML, len(srcs))
	for i, s := range srcs {
		h, err := r.Render(s)
		if err != nil {
			return nil, err
		}
		out[i] = h
	}
	return out, nil
}
