package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/testsupport"
	"github.com/goliatone/go-formkit/pkg/validation"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	selectIdx    []int
	confirm      []bool
	infoMessages []string
	inputPos     int
	passPos      int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", ErrAborted
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, _ InputConfig) (string, error) {
	if s.passPos >= len(s.passwords) {
		return "", ErrAborted
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, ErrAborted
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, ErrAborted
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func mustAdd(t *testing.T, f *form.Form, fields ...form.Field) {
	t.Helper()
	if err := f.Add(fields...); err != nil {
		t.Fatalf("add: %v", err)
	}
}

func TestRender_InputsAndDropdown(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"", "Walter", "bad", "w@x.io"},
		selectIdx: []int{1},
	}
	r := New(WithPromptDriver(driver))

	var submitted form.Values
	f := form.New(func(_ context.Context, v form.Values) error {
		submitted = v
		return nil
	})
	defer f.Close()

	fruit, err := field.NewDropdown(field.DropdownConfig{
		Name:    "fruit",
		Label:   "Fruit",
		Choices: []field.Choice{{Value: "apple", Label: "Apple"}, {Value: "banana", Label: "Banana"}},
	})
	if err != nil {
		t.Fatalf("dropdown: %v", err)
	}
	mustAdd(t, f,
		field.NewInput(field.InputConfig{Name: "name", Label: "Name", Rules: validation.RuleSet{Required: true}}),
		field.NewInput(field.InputConfig{Name: "email", Label: "Email", Kind: validation.KindEmail, Rules: validation.RuleSet{Required: true}}),
		fruit,
	)

	out, err := r.Render(testsupport.Context(), f, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]string
	testsupport.MustDecodeJSON(t, out, &got)
	want := map[string]string{"name": "Walter", "email": "w@x.io", "fruit": "apple"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(form.Values(want), submitted); diff != "" {
		t.Fatalf("submitted values mismatch (-want +got):\n%s", diff)
	}
	wantInfo := []string{"✗ This field is required", "✗ Invalid email format"}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_RichFieldsAndButtons(t *testing.T) {
	driver := &stubDriver{
		inputs:    []string{"zz", "an", "15/01/2024", "2024-01-15"},
		passwords: []string{"short", "abc12345!"},
		selectIdx: []int{1, 0, 1},
		confirm:   []bool{false},
	}
	r := New(WithPromptDriver(driver), WithOutputFormat(OutputFormatPrettyText))

	helped := 0
	f := form.New(nil)
	defer f.Close()

	fruit, err := field.NewSearchableDropdown(field.SearchableDropdownConfig{
		Name:     "fruit",
		Label:    "Fruit",
		Required: true,
		Choices: []field.Choice{
			{Value: "apple", Label: "Apple"},
			{Value: "banana", Label: "Banana"},
			{Value: "mango", Label: "Mango"},
		},
	})
	if err != nil {
		t.Fatalf("searchable: %v", err)
	}
	dob, err := field.NewDatePicker(field.DatePickerConfig{Name: "dob", Label: "Birthday", Location: time.UTC})
	if err != nil {
		t.Fatalf("date: %v", err)
	}
	mustAdd(t, f,
		fruit,
		dob,
		field.NewPassword(field.PasswordConfig{Name: "pw"}),
		field.NewFileUpload(field.FileUploadConfig{Name: "attachment"}),
	)
	for _, b := range []*field.Button{
		field.NewButton(field.ButtonConfig{Name: "help", Label: "Help", OnClick: func() { helped++ }}),
		field.NewButton(field.ButtonConfig{Name: "send", Label: "Send", Type: field.ButtonTypeSubmit}),
	} {
		if err := f.AddButton(b); err != nil {
			t.Fatalf("add button: %v", err)
		}
	}

	out, err := r.Render(testsupport.Context(), f, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := "attachment=\ndob=2024-01-15T00:00:00.000Z\nfruit=mango\npw=abc12345!\n"
	if diff := cmp.Diff(want, string(out)); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	if helped != 1 {
		t.Fatalf("expected help button to be pressed once, got %d", helped)
	}
	wantInfo := []string{
		"No options found",
		"✗ Enter a date as YYYY-MM-DD",
		"✗ Min 8 characters",
		"✗ Must contain a number",
		"✗ Must contain a special character",
	}
	if diff := cmp.Diff(wantInfo, driver.infoMessages); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
	if got := dob.Display(); got != "15 January 2024" {
		t.Fatalf("unexpected date display %q", got)
	}
}

func TestRender_MaxAttempts(t *testing.T) {
	driver := &stubDriver{inputs: []string{"", "", ""}}
	r := New(WithPromptDriver(driver), WithMaxAttempts(2))

	f := form.New(nil)
	defer f.Close()
	mustAdd(t, f, field.NewInput(field.InputConfig{Name: "name", Rules: validation.RuleSet{Required: true}}))

	_, err := r.Render(testsupport.Context(), f, render.RenderOptions{})
	if !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
	if driver.inputPos != 2 {
		t.Fatalf("expected two attempts, got %d", driver.inputPos)
	}
}

func TestRender_AbortPropagates(t *testing.T) {
	r := New(WithPromptDriver(&stubDriver{}))

	f := form.New(func(context.Context, form.Values) error {
		t.Fatalf("aborted session must not submit")
		return nil
	})
	defer f.Close()
	mustAdd(t, f, field.NewInput(field.InputConfig{Name: "name"}))

	if _, err := r.Render(testsupport.Context(), f, render.RenderOptions{}); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestRender_SubmitTransformerAndFormEncoding(t *testing.T) {
	driver := &stubDriver{inputs: []string{"walter"}}
	r := New(
		WithPromptDriver(driver),
		WithOutputFormat(OutputFormatFormURLEncoded),
		WithSubmitTransformer(func(values map[string]any) (map[string]any, error) {
			values["source"] = "cli"
			return values, nil
		}),
	)

	f := form.New(nil)
	defer f.Close()
	mustAdd(t, f, field.NewInput(field.InputConfig{Name: "user"}))

	out, err := r.Render(testsupport.Context(), f, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "source=cli&user=walter" {
		t.Fatalf("unexpected payload %q", got)
	}
	if r.ContentType() != "application/x-www-form-urlencoded" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestParseOutputFormat(t *testing.T) {
	for raw, want := range map[string]OutputFormat{
		"":       OutputFormatJSON,
		"json":   OutputFormatJSON,
		"form":   OutputFormatFormURLEncoded,
		"pretty": OutputFormatPrettyText,
	} {
		got, ok := ParseOutputFormat(raw)
		if !ok || got != want {
			t.Fatalf("ParseOutputFormat(%q) = %q, %v", raw, got, ok)
		}
	}
	if _, ok := ParseOutputFormat("xml"); ok {
		t.Fatalf("expected xml to be rejected")
	}
}
