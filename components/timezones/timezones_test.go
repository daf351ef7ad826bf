package timezones

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

func TestLoadZones_DedupesSortsAndIgnoresComments(t *testing.T) {
	input := strings.NewReader(`
# Comment
America/New_York
Europe/Paris
America/New_York

UTC
`)

	zones, err := LoadZones(input)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []string{"America/New_York", "Europe/Paris", "UTC"}
	if diff := cmp.Diff(want, zones); diff != "" {
		t.Fatalf("zones mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadZones_InlineCommentsAndMalformedLines(t *testing.T) {
	zones, err := LoadZones(strings.NewReader("Europe/Berlin  # CET\n\tAsia/Tokyo\n"))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if diff := cmp.Diff([]string{"Asia/Tokyo", "Europe/Berlin"}, zones); diff != "" {
		t.Fatalf("zones mismatch (-want +got):\n%s", diff)
	}

	_, err = LoadZones(strings.NewReader("UTC\nEurope/Paris Europe/Rome\n"))
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line 2 to be rejected, got %v", err)
	}
	if _, err := LoadZones(nil); err == nil {
		t.Fatalf("expected error for a nil reader")
	}
}

func TestDefaultZones_ContainsCommonEntries(t *testing.T) {
	zones, err := DefaultZones()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(zones) < 50 {
		t.Fatalf("expected a reasonably sized list, got %d", len(zones))
	}
	for _, expected := range []string{"America/New_York", "Europe/Paris", "UTC"} {
		if !slices.Contains(zones, expected) {
			t.Fatalf("expected zone %q to be present", expected)
		}
	}
	if !slices.IsSorted(zones) {
		t.Fatalf("expected sorted zones")
	}
}

func TestSearch_CaseInsensitiveContains(t *testing.T) {
	zones := []string{"Europe/Paris", "America/New_York", "UTC"}
	opts := NewOptions(WithEmptySearchMode(EmptySearchNone))

	results := Search(zones, "eUrOpE/p", 10, opts)
	if diff := cmp.Diff([]string{"Europe/Paris"}, results); diff != "" {
		t.Fatalf("results mismatch (-want +got):\n%s", diff)
	}
	if got := Search(zones, "  ", 10, opts); got != nil {
		t.Fatalf("blank query should return nothing, got %v", got)
	}
}

func TestSearch_PrefixBeforeContains(t *testing.T) {
	zones := []string{"x/a/b", "a/b", "a/b/c", "c/d"}
	opts := NewOptions()

	results := Search(zones, "a/b", 10, opts)
	want := []string{"a/b", "a/b/c", "x/a/b"}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("ordering mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_LimitApplied(t *testing.T) {
	zones := []string{"a", "b", "c", "d"}
	opts := NewOptions(WithDefaultLimit(2), WithMaxLimit(3), WithEmptySearchMode(EmptySearchTop))

	if results := Search(zones, "", 0, opts); len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %#v", len(results), results)
	}
	if results := Search(zones, "", 10, opts); len(results) != 3 {
		t.Fatalf("expected max limit to clamp to 3, got %d", len(results))
	}
}

func TestSearchChoices_MapsValueAndLabel(t *testing.T) {
	results := SearchChoices([]string{"America/New_York"}, "new", 10, NewOptions())
	want := []field.Choice{{Value: "America/New_York", Label: "America/New York"}}
	if diff := cmp.Diff(want, results); diff != "" {
		t.Fatalf("choices mismatch (-want +got):\n%s", diff)
	}
}

func TestComponent_NewDropdown(t *testing.T) {
	clock := testsupport.NewManualClock()
	c := New(WithZones([]string{"Europe/Paris", "Europe/Berlin", "UTC"}))

	dd, err := c.NewDropdown(DropdownConfig{Name: "tz", Required: true}, field.WithClock(clock))
	if err != nil {
		t.Fatalf("new dropdown: %v", err)
	}
	defer dd.Close()

	if dd.Label() != "Timezone" || len(dd.Choices()) != 3 {
		t.Fatalf("unexpected dropdown label=%q choices=%d", dd.Label(), len(dd.Choices()))
	}
	if err := dd.Select("Europe/Berlin"); err != nil {
		t.Fatalf("select: %v", err)
	}

	loc, err := Location(dd.Value())
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	if loc.String() != "Europe/Berlin" {
		t.Fatalf("unexpected location %s", loc)
	}
	if loc, _ := Location(""); loc != time.Local {
		t.Fatalf("blank zone should map to time.Local")
	}
	if _, err := Location("Nowhere/Land"); err == nil {
		t.Fatalf("expected unknown zone error")
	}

	found, err := c.Search("eu", 0)
	if err != nil || len(found) != 2 {
		t.Fatalf("unexpected search result %v %v", found, err)
	}
}
