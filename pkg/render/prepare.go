package render

import (
	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/form"
)

// States applies the options to f and returns the field snapshots a renderer
// should present. Server and gate messages recorded on the form are merged
// into each field's errors.
func States(f *form.Form, opts RenderOptions) []field.State {
	if len(opts.Errors) > 0 {
		f.ApplyServerErrors(opts.Errors)
	}

	states := ApplySubset(f.States(), opts.Only)
	for i := range states {
		extra := f.FieldErrors(states[i].Name)
		if len(extra) == 0 {
			continue
		}
		states[i].Errors = form.MergeFormErrors(states[i].Errors, extra...)
		states[i].Invalid = true
		states[i].ErrorID = states[i].ID + "-error"
	}
	return states
}
