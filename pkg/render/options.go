package render

// RenderOptions carry per-call data that renderers use to customise their
// output without mutating how the form was built.
type RenderOptions struct {
	// Errors surfaces server-side validation feedback keyed by field name or
	// path. It is applied to the form before rendering.
	Errors map[string][]string
	// Only limits output to the named fields, keeping form order. Empty
	// renders every field.
	Only []string
}
