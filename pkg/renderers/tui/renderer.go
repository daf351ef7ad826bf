package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render"
)

// dateInputLayout is the layout typed at the date prompt.
const dateInputLayout = "2006-01-02"

// errSkipField ends a prompt loop without validating the answer.
var errSkipField = errors.New("tui: skip field")

// Renderer drives a form through terminal prompts. Each answer is fed into
// the field unit, settled and blurred, so the same validation surfaces as in
// an interactive UI; failing fields are re-prompted.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	maxAttempts       int
	logger            *slog.Logger
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts every field, then submits the form through its gate and
// serializes the submitted values. When the form has buttons the user picks
// one; otherwise the form is submitted directly.
func (r *Renderer) Render(ctx context.Context, f *form.Form, opts render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if f == nil {
		return nil, errors.New("tui: form is required")
	}

	states := render.States(f, opts)
	for _, st := range states {
		fld, ok := f.Field(st.Name)
		if !ok {
			continue
		}
		if err := r.promptField(ctx, fld, st); err != nil {
			return nil, err
		}
	}

	for {
		err := r.finish(ctx, f)
		if err == nil {
			break
		}
		submitErr, ok := form.AsSubmitError(err)
		if !ok {
			return nil, err
		}
		r.logger.Debug("submission blocked", "missing", len(submitErr.Fields))
		for _, msg := range submitErr.Messages() {
			_ = r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
		}
		for _, fe := range submitErr.Fields {
			fld, ok := f.Field(fe.Field)
			if !ok {
				continue
			}
			if err := r.promptField(ctx, fld, fld.State()); err != nil {
				return nil, err
			}
		}
	}

	values := make(map[string]any)
	for name, value := range f.Values() {
		values[name] = value
	}
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

func (r *Renderer) finish(ctx context.Context, f *form.Form) error {
	buttons := f.Buttons()
	if len(buttons) == 0 {
		return f.Submit(ctx)
	}

	var enabled []*field.Button
	for _, b := range buttons {
		if !b.Disabled() {
			enabled = append(enabled, b)
		}
	}
	if len(enabled) == 0 {
		return errors.New("tui: every button is disabled")
	}
	labels := make([]string, 0, len(enabled))
	for _, b := range enabled {
		labels = append(labels, displayButton(b))
	}

	for {
		idx, err := r.driver.Select(ctx, SelectConfig{Message: "Action", Options: labels, DefaultIndex: -1})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(enabled) {
			_ = r.driver.Info(ctx, r.theme.ErrorPrefix+"Invalid selection")
			continue
		}
		chosen := enabled[idx]
		if err := f.Press(ctx, chosen.Name()); err != nil {
			return err
		}
		if chosen.Type() == field.ButtonTypeSubmit {
			return nil
		}
	}
}

func (r *Renderer) promptField(ctx context.Context, fld form.Field, st field.State) error {
	switch typed := fld.(type) {
	case *field.Password:
		return r.retry(ctx, fld, func() error {
			resp, err := r.driver.Password(ctx, InputConfig{Message: displayLabel(st), Help: st.Placeholder})
			if err != nil {
				return err
			}
			typed.Change(resp)
			if resp == "" && !typed.Required() {
				return errSkipField
			}
			return nil
		})
	case *field.Input:
		return r.retry(ctx, fld, func() error {
			resp, err := r.driver.Input(ctx, InputConfig{Message: displayLabel(st), Default: typed.Value(), Help: st.Placeholder})
			if err != nil {
				return err
			}
			typed.Change(resp)
			return nil
		})
	case *field.Dropdown:
		return r.promptChoice(ctx, fld, st, typed.Choices(), typed.Required(), typed.Select)
	case *field.RadioGroup:
		return r.promptChoice(ctx, fld, st, typed.Choices(), true, typed.Select)
	case *field.SearchableDropdown:
		return r.promptSearch(ctx, typed, st)
	case *field.DatePicker:
		return r.promptDate(ctx, typed, st)
	case *field.FileUpload:
		return r.promptFile(ctx, typed, st)
	default:
		changer, ok := fld.(interface{ Change(string) })
		if !ok {
			r.logger.Debug("skipping field without a prompt", "field", st.Name, "widget", st.Widget)
			return nil
		}
		return r.retry(ctx, fld, func() error {
			resp, err := r.driver.Input(ctx, InputConfig{Message: displayLabel(st), Default: fld.Value()})
			if err != nil {
				return err
			}
			changer.Change(resp)
			return nil
		})
	}
}

// retry runs ask, settles and blurs the field, and repeats while the field
// reports issues.
func (r *Renderer) retry(ctx context.Context, fld form.Field, ask func() error) error {
	for attempt := 1; ; attempt++ {
		if err := ask(); err != nil {
			if errors.Is(err, errSkipField) {
				fld.Flush()
				return nil
			}
			return err
		}
		fld.Flush()
		fld.Blur()
		errs := fld.Errors()
		if len(errs) == 0 {
			return nil
		}
		for _, msg := range errs {
			_ = r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
		}
		if r.maxAttempts > 0 && attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, fld.Name())
		}
	}
}

func (r *Renderer) promptChoice(ctx context.Context, fld form.Field, st field.State, choices []field.Choice, required bool, sel func(string) error) error {
	options := make([]string, 0, len(choices)+1)
	values := make([]string, 0, len(choices)+1)
	if !required {
		options = append(options, placeholderOr(st.Placeholder, field.DefaultDropdownPlaceholder))
		values = append(values, "")
	}
	for _, c := range choices {
		options = append(options, c.Label)
		values = append(values, c.Value)
	}

	return r.retry(ctx, fld, func() error {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      displayLabel(st),
			Options:      options,
			DefaultIndex: slices.Index(values, fld.Value()),
		})
		if err != nil {
			return err
		}
		if idx < 0 || idx >= len(values) {
			return sel("")
		}
		return sel(values[idx])
	})
}

func (r *Renderer) promptSearch(ctx context.Context, s *field.SearchableDropdown, st field.State) error {
	return r.retry(ctx, s, func() error {
		for {
			term, err := r.driver.Input(ctx, InputConfig{Message: displayLabel(st), Default: s.SearchTerm(), Help: st.Placeholder})
			if err != nil {
				return err
			}
			s.SetSearch(term)
			s.FlushSearch()

			matches := s.Filtered()
			switch len(matches) {
			case 0:
				_ = r.driver.Info(ctx, r.theme.InfoPrefix+field.NoOptionsMessage)
				continue
			case 1:
				return s.Select(matches[0].Value)
			}

			labels := make([]string, 0, len(matches))
			for _, m := range matches {
				labels = append(labels, m.Label)
			}
			idx, err := r.driver.Select(ctx, SelectConfig{Message: displayLabel(st), Options: labels, DefaultIndex: -1})
			if err != nil {
				return err
			}
			if idx < 0 || idx >= len(matches) {
				s.Dismiss()
				return nil
			}
			return s.Select(matches[idx].Value)
		}
	})
}

func (r *Renderer) promptDate(ctx context.Context, dp *field.DatePicker, st field.State) error {
	def := ""
	if selected, ok := dp.Selected(); ok {
		def = selected.Format(dateInputLayout)
	}
	return r.retry(ctx, dp, func() error {
		for {
			raw, err := r.driver.Input(ctx, InputConfig{Message: displayLabel(st), Default: def, Help: "YYYY-MM-DD"})
			if err != nil {
				return err
			}
			raw = strings.TrimSpace(raw)
			if raw == "" {
				dp.Clear()
				return nil
			}
			parsed, err := time.Parse(dateInputLayout, raw)
			if err != nil {
				_ = r.driver.Info(ctx, r.theme.ErrorPrefix+"Enter a date as YYYY-MM-DD")
				continue
			}
			return dp.Select(parsed.Year(), parsed.Month(), parsed.Day())
		}
	})
}

func (r *Renderer) promptFile(ctx context.Context, fu *field.FileUpload, st field.State) error {
	if !fu.Required() {
		attach, err := r.driver.Confirm(ctx, ConfirmConfig{Message: "Attach " + displayLabel(st) + "?"})
		if err != nil {
			return err
		}
		if !attach {
			return nil
		}
	}
	return r.retry(ctx, fu, func() error {
		for {
			path, err := r.driver.Input(ctx, InputConfig{Message: displayLabel(st), Help: "Path to a file"})
			if err != nil {
				return err
			}
			if strings.TrimSpace(path) == "" {
				fu.Select(nil)
				return nil
			}
			if _, err := fu.SelectPath(path); err != nil {
				_ = r.driver.Info(ctx, r.theme.ErrorPrefix+err.Error())
				continue
			}
			return nil
		}
	})
}

func (r *Renderer) serialize(values map[string]any) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return []byte(flattenForm(values)), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(values)), nil
	default:
		return json.Marshal(values)
	}
}

func displayLabel(st field.State) string {
	if st.Label != "" {
		return st.Label
	}
	return st.Name
}

func displayButton(b *field.Button) string {
	if b.Label() != "" {
		return b.Label()
	}
	return b.Name()
}

func placeholderOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func flattenForm(values map[string]any) string {
	out := url.Values{}
	for key, value := range values {
		out.Set(key, fmt.Sprint(value))
	}
	return out.Encode()
}

func prettyPrint(values map[string]any) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s=%v\n", key, values[key])
	}
	return b.String()
}
