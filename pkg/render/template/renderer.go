// Package template is the seam HTML renderers execute templates through.
package template

import "io"

// TemplateRenderer executes named templates. Implementations append their
// default extension when name has none and copy the output to every writer
// in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}
