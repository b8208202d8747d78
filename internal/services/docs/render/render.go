// Package render turns stored document bytes into response bodies.
package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"

	"github.com/john129er/cms-project/internal/services/docs/filename"
)

// Content types produced by the renderer.
const (
	ContentTypeText = "text/plain"
	ContentTypeHTML = "text/html; charset=utf-8"
)

// Rendered is a document ready to be written to a response.
type Rendered struct {
	Name        string
	Kind        filename.Kind
	ContentType string
	Body        []byte
}

// Renderer dispatches on the document kind resolved by a filename policy.
type Renderer struct {
	policy   *filename.Policy
	markdown goldmark.Markdown
}

// New returns a renderer for the extensions registered in policy.
func New(policy *filename.Policy) *Renderer {
	if policy == nil {
		policy = filename.NewPolicy()
	}
	return &Renderer{
		policy:   policy,
		markdown: goldmark.New(),
	}
}

// Render converts content according to the kind of name. Markdown becomes an
// HTML fragment; page chrome is left to the caller.
func (r *Renderer) Render(name string, content []byte) (Rendered, error) {
	kind, err := r.policy.ValidateExtension(name)
	if err != nil {
		return Rendered{}, err
	}
	switch kind {
	case filename.KindText:
		return Rendered{Name: name, Kind: kind, ContentType: ContentTypeText, Body: content}, nil
	case filename.KindMarkdown:
		var buf bytes.Buffer
		if err := r.markdown.Convert(content, &buf); err != nil {
			return Rendered{}, fmt.Errorf("render markdown %s: %w", name, err)
		}
		return Rendered{Name: name, Kind: kind, ContentType: ContentTypeHTML, Body: buf.Bytes()}, nil
	default:
		return Rendered{}, fmt.Errorf("render %s: no renderer for kind %s", name, kind)
	}
}
