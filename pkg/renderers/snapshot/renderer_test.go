package snapshot_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/snapshot"
	"github.com/goliatone/go-formkit/pkg/testsupport"
	"github.com/goliatone/go-formkit/pkg/validation"
)

func TestRender_ReflectsGateAndFieldState(t *testing.T) {
	clock := testsupport.NewManualClock()
	f := form.New(nil, form.WithCSRFToken("tok"))
	defer f.Close()

	email := field.NewInput(field.InputConfig{
		Name:  "email",
		Label: "Email",
		Kind:  validation.KindEmail,
		Rules: validation.RuleSet{Required: true},
	}, field.WithClock(clock))
	size, err := field.NewRadioGroup(field.RadioGroupConfig{
		Name:    "size",
		Label:   "Size",
		Value:   "s",
		Choices: []field.Choice{{Value: "s", Label: "Small"}, {Value: "l", Label: "Large"}},
	}, field.WithClock(clock))
	if err != nil {
		t.Fatalf("radio: %v", err)
	}
	if err := f.Add(email, size); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := f.AddButton(field.NewButton(field.ButtonConfig{Name: "send", Label: "Send", Type: field.ButtonTypeSubmit})); err != nil {
		t.Fatalf("add button: %v", err)
	}

	_ = f.Submit(testsupport.Context())

	out, err := snapshot.New(snapshot.WithIndent("  ")).Render(testsupport.Context(), f, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got snapshot.Document
	testsupport.MustDecodeJSON(t, out, &got)

	want := snapshot.Document{
		Fields: []field.State{
			{
				ID:          "email",
				Name:        "email",
				Label:       "Email",
				Widget:      "email",
				Placeholder: "Enter Email",
				Required:    true,
				Touched:     true,
				Invalid:     true,
				Errors:      []string{"This field is required", "Email is required"},
				ErrorID:     "email-error",
			},
			{
				ID:      "size",
				Name:    "size",
				Label:   "Size",
				Widget:  "radio",
				Value:   "s",
				Touched: true,
				Choices: []field.Choice{{Value: "s", Label: "Small"}, {Value: "l", Label: "Large"}},
			},
		},
		Buttons: []field.State{{ID: "send", Name: "send", Label: "Send", Widget: "button", Value: "submit"}},
		Hidden:  []form.HiddenField{{Name: "_csrf", Value: "tok"}},
		Errors:  []string{"Email is required"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
}

func TestRender_NilForm(t *testing.T) {
	if _, err := snapshot.New().Render(testsupport.Context(), nil, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for nil form")
	}
}
