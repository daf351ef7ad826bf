package form

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"strings"
	"sync"

	"github.com/goliatone/go-formkit/pkg/field"
)

// Field is the contract every value carrying unit satisfies.
type Field interface {
	Name() string
	Label() string
	Required() bool
	Value() string
	Touched() bool
	Errors() []string
	Blur()
	Flush()
	State() field.State
	Close() error
}

// Values maps field names to submitted values.
type Values map[string]string

// SubmitFunc receives the collected values of a passing submission.
type SubmitFunc func(ctx context.Context, values Values) error

// Option configures a Form.
type Option func(*Form)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithTouchOnSubmit makes Submit flush and blur every field before the gate
// runs, so inline issues surface on fields the user never visited. Without it
// Submit leaves field state alone and reads the current values.
func WithTouchOnSubmit() Option {
	return func(f *Form) {
		f.touchOnSubmit = true
	}
}

// Form owns an ordered set of fields and gates their submission.
type Form struct {
	onSubmit      SubmitFunc
	logger        *slog.Logger
	touchOnSubmit bool

	mu         sync.Mutex
	fields     []Field
	buttons    []*field.Button
	names      map[string]struct{}
	hidden     map[string]string
	gate       *SubmitError
	server     ErrorMapping
	submitting bool
}

// New returns an empty form. A nil onSubmit accepts every passing submission.
func New(onSubmit SubmitFunc, opts ...Option) *Form {
	f := &Form{
		onSubmit: onSubmit,
		names:    make(map[string]struct{}),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.New(slog.DiscardHandler)
	}
	return f
}

// Add appends fields in order. Names are shared with buttons and hidden
// values. The call is atomic: on a duplicate name no field is added.
func (f *Form) Add(fields ...Field) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	batch := make(map[string]struct{}, len(fields))
	for _, fld := range fields {
		if fld == nil {
			return fmt.Errorf("form: field is required")
		}
		name := fld.Name()
		if f.taken(name) {
			return fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		if _, exists := batch[name]; exists {
			return fmt.Errorf("%w: %q", ErrDuplicateField, name)
		}
		batch[name] = struct{}{}
	}
	for _, fld := range fields {
		f.names[fld.Name()] = struct{}{}
		f.fields = append(f.fields, fld)
	}
	return nil
}

// AddButton registers an action trigger. Buttons share the field namespace
// but carry no value.
func (f *Form) AddButton(b *field.Button) error {
	if b == nil {
		return fmt.Errorf("form: button is required")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.taken(b.Name()) {
		return fmt.Errorf("%w: %q", ErrDuplicateField, b.Name())
	}
	f.names[b.Name()] = struct{}{}
	f.buttons = append(f.buttons, b)
	return nil
}

// Fields returns the value fields in order.
func (f *Form) Fields() []Field {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Field, len(f.fields))
	copy(out, f.fields)
	return out
}

// Field looks a value field up by name.
func (f *Form) Field(name string) (Field, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fld := range f.fields {
		if fld.Name() == name {
			return fld, true
		}
	}
	return nil, false
}

// Buttons returns the registered buttons in order.
func (f *Form) Buttons() []*field.Button {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*field.Button, len(f.buttons))
	copy(out, f.buttons)
	return out
}

func (f *Form) taken(name string) bool {
	if _, exists := f.names[name]; exists {
		return true
	}
	_, exists := f.hidden[name]
	return exists
}

// Values collects the current raw value of every field plus the hidden
// values.
func (f *Form) Values() Values {
	fields := f.Fields()

	f.mu.Lock()
	out := make(Values, len(fields)+len(f.hidden))
	maps.Copy(out, f.hidden)
	f.mu.Unlock()

	for _, fld := range fields {
		out[fld.Name()] = fld.Value()
	}
	return out
}

// Submit checks that each required field is non-blank. A blocked submission
// returns a *SubmitError and onSubmit is not called. The gate reads current
// values and leaves field state untouched unless WithTouchOnSubmit is set.
func (f *Form) Submit(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return ErrSubmitInProgress
	}
	f.submitting = true
	fields := make([]Field, len(f.fields))
	copy(fields, f.fields)
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.submitting = false
		f.mu.Unlock()
	}()

	var failures []FieldError
	for _, fld := range fields {
		if f.touchOnSubmit {
			fld.Flush()
			fld.Blur()
		}
		if fld.Required() && strings.TrimSpace(fld.Value()) == "" {
			failures = append(failures, FieldError{
				Field:   fld.Name(),
				Message: displayName(fld) + " is required",
			})
		}
	}

	f.mu.Lock()
	f.server = ErrorMapping{}
	if len(failures) > 0 {
		f.gate = &SubmitError{Fields: failures}
		gate := f.gate
		f.mu.Unlock()
		f.logger.Debug("submission blocked", "missing", len(failures))
		return gate
	}
	f.gate = nil
	f.mu.Unlock()

	values := f.Values()
	f.logger.Debug("submitting form", "fields", len(fields))
	if f.onSubmit == nil {
		return nil
	}
	if err := f.onSubmit(ctx, values); err != nil {
		return fmt.Errorf("form: submit: %w", err)
	}
	return nil
}

// Press clicks the named button. A submit button runs Submit after its own
// handler.
func (f *Form) Press(ctx context.Context, name string) error {
	var target *field.Button
	for _, b := range f.Buttons() {
		if b.Name() == name {
			target = b
			break
		}
	}
	if target == nil {
		return fmt.Errorf("%w: %q", ErrUnknownButton, name)
	}
	if !target.Click() {
		return fmt.Errorf("%w: %q", ErrButtonDisabled, name)
	}
	if target.Type() == field.ButtonTypeSubmit {
		return f.Submit(ctx)
	}
	return nil
}

// Submitting reports whether the submit callback is running.
func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// Errors returns the messages of the last blocked submission, followed by
// form-level server messages.
func (f *Form) Errors() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := f.gate.Messages()
	return append(out, f.server.Form...)
}

// FieldErrors returns the gate and server messages recorded for name.
func (f *Form) FieldErrors(name string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	if f.gate != nil {
		for _, fe := range f.gate.Fields {
			if fe.Field == name {
				out = append(out, fe.Message)
			}
		}
	}
	return append(out, f.server.Fields[name]...)
}

// ApplyServerErrors records validation feedback returned by the backend after
// a submission. Messages are cleared by the next Submit.
func (f *Form) ApplyServerErrors(payload map[string][]string) ErrorMapping {
	fields := f.Fields()
	names := make([]string, 0, len(fields))
	for _, fld := range fields {
		names = append(names, fld.Name())
	}
	mapping := MapErrorPayload(names, payload)

	f.mu.Lock()
	f.server = mapping
	f.mu.Unlock()
	return mapping
}

// States returns the presentational snapshot of every field in order.
func (f *Form) States() []field.State {
	fields := f.Fields()
	out := make([]field.State, 0, len(fields))
	for _, fld := range fields {
		out = append(out, fld.State())
	}
	return out
}

// Close tears down every field, cancelling pending debounce timers.
func (f *Form) Close() error {
	var firstErr error
	for _, fld := range f.Fields() {
		if err := fld.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("form: close %s: %w", fld.Name(), err)
		}
	}
	return firstErr
}

func displayName(fld Field) string {
	if label := strings.TrimSpace(fld.Label()); label != "" {
		return label
	}
	return fld.Name()
}
