package form_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/form"
)

func TestMapErrorPayload_OrderIsStable(t *testing.T) {
	payload := map[string][]string{
		"email":            {"Email taken"},
		"/body/email":      {"Email malformed"},
		"data.email[0]":    {"Email blocked"},
		"non_field_errors": {"Try again later"},
		"unknown_one":      {"First unknown"},
		"unknown_two":      {"Second unknown"},
	}
	want := form.ErrorMapping{
		Fields: map[string][]string{
			"email": {"Email malformed", "Email blocked", "Email taken"},
		},
		Form: []string{"Try again later", "First unknown", "Second unknown"},
	}

	for i := 0; i < 50; i++ {
		got := form.MapErrorPayload([]string{"email"}, payload)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("run %d: mapping mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	got := form.MapErrorPayload([]string{"email"}, nil)
	if got.Fields != nil || got.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", got)
	}
}
