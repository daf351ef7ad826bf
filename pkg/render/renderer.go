package render

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/form"
)

// Renderer presents a live form: it may only serialise field state or drive
// an interactive session that mutates it.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, f *form.Form, options RenderOptions) ([]byte, error)
}
