// Package vanilla renders a form as plain HTML through pongo2 templates, one
// partial per widget. Field state comes from render.States, so touched
// validation issues and server errors both surface as aria-invalid controls
// described by a "{id}-error" message element.
package vanilla

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render"
	rendertemplate "github.com/goliatone/go-formkit/pkg/render/template"
	"github.com/goliatone/go-formkit/pkg/render/template/pongo"
)

// Option configures the renderer.
type Option func(*config)

type config struct {
	templates fs.FS
	engine    rendertemplate.TemplateRenderer
	theme     *theme.RendererConfig
}

// WithTemplatesFS replaces the embedded template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(dir string) Option {
	return func(cfg *config) {
		if dir != "" {
			cfg.templates = os.DirFS(dir)
		}
	}
}

// WithTemplateRenderer injects a template engine. The templates options are
// ignored when one is set.
func WithTemplateRenderer(engine rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if engine != nil {
			cfg.engine = engine
		}
	}
}

// WithTheme applies a resolved go-theme configuration. Only the forms.*
// partials and the theme/variant names are used.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// Renderer implements render.Renderer.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	partials  map[string]string
}

var _ render.Renderer = (*Renderer)(nil)

// New builds a vanilla renderer.
func New(opts ...Option) (*Renderer, error) {
	cfg := config{templates: TemplatesFS()}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	engine := cfg.engine
	if engine == nil {
		e, err := pongo.New(pongo.WithFS(cfg.templates))
		if err != nil {
			return nil, fmt.Errorf("vanilla: configure templates: %w", err)
		}
		engine = e
	}

	r := &Renderer{templates: engine, partials: map[string]string{}}
	if cfg.theme != nil {
		r.partials = themePartials(cfg.theme.Partials)
		if err := engine.GlobalContext(map[string]any{
			"theme":   cfg.theme.Theme,
			"variant": cfg.theme.Variant,
		}); err != nil {
			return nil, fmt.Errorf("vanilla: theme globals: %w", err)
		}
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string { return "vanilla" }

// ContentType reports the payload media type.
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render writes the form markup: hidden values, one partial per field in
// order, form-level errors, then the buttons.
func (r *Renderer) Render(ctx context.Context, f *form.Form, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errors.New("vanilla: form is required")
	}

	states := render.States(f, opts)
	fields := make([]string, 0, len(states))
	for _, st := range states {
		html, err := r.renderField(st)
		if err != nil {
			return nil, err
		}
		fields = append(fields, html)
	}

	buttons := make([]string, 0)
	for _, b := range f.Buttons() {
		html, err := r.renderField(b.State())
		if err != nil {
			return nil, err
		}
		buttons = append(buttons, html)
	}

	hidden := f.Hidden()
	if hidden == nil {
		hidden = []form.HiddenField{}
	}

	out, err := r.templates.RenderTemplate(formTemplate, map[string]any{
		"fields":  fields,
		"buttons": buttons,
		"hidden":  hidden,
		"errors":  f.Errors(),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla: render form: %w", err)
	}
	return []byte(out), nil
}

func (r *Renderer) renderField(st field.State) (string, error) {
	partial, err := partialFor(r.partials, st.Widget)
	if err != nil {
		return "", err
	}
	out, err := r.templates.RenderTemplate(partial, map[string]any{
		"field": st,
		"type":  inputType(st.Widget),
		"value": displayValue(st),
	})
	if err != nil {
		return "", fmt.Errorf("vanilla: render %s: %w", st.Name, err)
	}
	return strings.TrimSpace(out), nil
}
