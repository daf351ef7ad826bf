// Package snapshot renders a form's presentational state as JSON without any
// interaction. It is the non-interactive counterpart of the tui renderer and
// is handy for golden tests and for inspecting a form from scripts.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render"
)

// Document is the rendered payload.
type Document struct {
	Fields  []field.State      `json:"fields"`
	Buttons []field.State      `json:"buttons,omitempty"`
	Hidden  []form.HiddenField `json:"hidden,omitempty"`
	Errors  []string           `json:"errors,omitempty"`
}

// Option configures the renderer.
type Option func(*Renderer)

// WithIndent pretty prints the output with the given indent.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer implements render.Renderer.
type Renderer struct {
	indent string
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a snapshot renderer.
func New(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string { return "snapshot" }

// ContentType reports the payload media type.
func (r *Renderer) ContentType() string { return "application/json" }

// Build assembles the document without serializing it.
func (r *Renderer) Build(f *form.Form, opts render.RenderOptions) Document {
	doc := Document{
		Fields: render.States(f, opts),
		Hidden: f.Hidden(),
		Errors: f.Errors(),
	}
	for _, b := range f.Buttons() {
		doc.Buttons = append(doc.Buttons, b.State())
	}
	return doc
}

// Render serializes the current state of every field.
func (r *Renderer) Render(ctx context.Context, f *form.Form, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errors.New("snapshot: form is required")
	}

	doc := r.Build(f, opts)
	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("snapshot: encode: %w", err)
	}
	return out, nil
}
