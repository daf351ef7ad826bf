package field

import (
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-formkit/pkg/validation"
)

// Widget names reported in State.
const (
	WidgetText               = "text"
	WidgetEmail              = "email"
	WidgetNumber             = "number"
	WidgetPassword           = "password"
	WidgetDropdown           = "dropdown"
	WidgetSearchableDropdown = "searchable-dropdown"
	WidgetRadio              = "radio"
	WidgetDate               = "date"
	WidgetFile               = "file"
	WidgetButton             = "button"
)

// State is the presentational snapshot of a field. Invalid is only ever true
// for a touched field; ErrorID mirrors the element id used to describe the
// error to assistive tech.
type State struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Label       string   `json:"label,omitempty"`
	Widget      string   `json:"widget"`
	Value       string   `json:"value"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required"`
	Touched     bool     `json:"touched"`
	Invalid     bool     `json:"invalid"`
	Errors      []string `json:"errors,omitempty"`
	ErrorID     string   `json:"errorId,omitempty"`
	Choices     []Choice `json:"choices,omitempty"`
}

// base carries the identity shared by every unit and its controller.
type base struct {
	id          string
	name        string
	label       string
	placeholder string
	required    bool
	widget      string
	ctrl        *Controller
}

func newBase(name, label, placeholder, widget string, required bool) base {
	name = strings.TrimSpace(name)
	id := name
	if id == "" {
		id = uuid.NewString()
		name = widget + "-" + id
	}
	return base{
		id:          id,
		name:        name,
		label:       sanitizeText(label),
		placeholder: sanitizeText(placeholder),
		required:    required,
		widget:      widget,
	}
}

// ID returns the element id; the name unless the field was created unnamed.
func (b *base) ID() string { return b.id }

// Name returns the key the field submits under.
func (b *base) Name() string { return b.name }

// Label returns the plain-text label.
func (b *base) Label() string { return b.label }

// Placeholder returns the plain-text placeholder.
func (b *base) Placeholder() string { return b.placeholder }

// Required reports whether the field must be filled before submission.
func (b *base) Required() bool { return b.required }

// Widget returns the unit family name.
func (b *base) Widget() string { return b.widget }

// Value returns the current raw value.
func (b *base) Value() string { return b.ctrl.Value() }

// Controller exposes the underlying state machine.
func (b *base) Controller() *Controller { return b.ctrl }

// Touched reports whether the field has been interacted with.
func (b *base) Touched() bool { return b.ctrl.Touched() }

// Issues returns the surfaced issues.
func (b *base) Issues() []validation.Issue { return b.ctrl.Issues() }

// Errors returns the surfaced messages.
func (b *base) Errors() []string { return b.ctrl.Errors() }

// Error returns the first surfaced message.
func (b *base) Error() string { return b.ctrl.Error() }

// Blur marks the field as touched.
func (b *base) Blur() { b.ctrl.Blur() }

// Flush settles any pending debounced value.
func (b *base) Flush() { b.ctrl.Flush() }

// OnChange registers a synchronous change listener.
func (b *base) OnChange(fn func(string)) { b.ctrl.OnChange(fn) }

// OnIssues registers a listener for surfaced issue changes.
func (b *base) OnIssues(fn func([]validation.Issue)) { b.ctrl.OnIssues(fn) }

// Close cancels pending timers.
func (b *base) Close() error { return b.ctrl.Close() }

// State returns the presentational snapshot.
func (b *base) State() State {
	return b.state(b.ctrl.Value())
}

func (b *base) state(value string) State {
	errs := b.ctrl.Errors()
	touched := b.ctrl.Touched()
	st := State{
		ID:          b.id,
		Name:        b.name,
		Label:       b.label,
		Widget:      b.widget,
		Value:       value,
		Placeholder: b.placeholder,
		Required:    b.required,
		Touched:     touched,
		Invalid:     touched && len(errs) > 0,
	}
	if st.Invalid {
		st.Errors = errs
		st.ErrorID = b.id + "-error"
	}
	return st
}

func requiredChecker(required bool) Checker {
	return func(value string) []validation.Issue {
		if required && strings.TrimSpace(value) == "" {
			return []validation.Issue{{Code: validation.CodeRequired, Message: validation.MessageRequired}}
		}
		return nil
	}
}
