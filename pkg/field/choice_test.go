package field_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/testsupport"
)

var fruit = []field.Choice{
	{Value: "apple", Label: "Apple"},
	{Value: "banana", Label: "Banana"},
	{Value: "cherry", Label: "Cherry"},
	{Value: "pineapple", Label: "Pineapple"},
}

func TestDropdown_RejectsDuplicateValues(t *testing.T) {
	_, err := field.NewDropdown(field.DropdownConfig{
		Name:    "dup",
		Choices: []field.Choice{{Value: "a", Label: "A"}, {Value: "a", Label: "Again"}},
	})
	if !errors.Is(err, field.ErrDuplicateOption) {
		t.Fatalf("expected ErrDuplicateOption, got %v", err)
	}
}

func TestDropdown_SelectTouchesAndValidates(t *testing.T) {
	d, err := field.NewDropdown(field.DropdownConfig{Name: "fruit", Label: "Fruit", Choices: fruit, Required: true})
	if err != nil {
		t.Fatalf("new dropdown: %v", err)
	}
	defer d.Close()

	if d.Placeholder() != field.DefaultDropdownPlaceholder {
		t.Fatalf("unexpected placeholder %q", d.Placeholder())
	}
	if d.Touched() {
		t.Fatalf("dropdown touched before selection")
	}

	if err := d.Select("banana"); err != nil {
		t.Fatalf("select: %v", err)
	}
	got, ok := d.Selected()
	if !ok || got.Label != "Banana" || !d.Touched() || d.Error() != "" {
		t.Fatalf("unexpected selection %+v ok=%v touched=%v err=%q", got, ok, d.Touched(), d.Error())
	}

	if err := d.Select(""); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if d.Error() != "This field is required" {
		t.Fatalf("expected required after clearing, got %q", d.Error())
	}

	if err := d.Select("durian"); !errors.Is(err, field.ErrUnknownOption) {
		t.Fatalf("expected ErrUnknownOption, got %v", err)
	}
	if len(d.State().Choices) != len(fruit) {
		t.Fatalf("expected every option in state")
	}
}

func TestRadioGroup_Select(t *testing.T) {
	r, err := field.NewRadioGroup(field.RadioGroupConfig{
		Name:    "size",
		Choices: []field.Choice{{Value: "s", Label: "Small"}, {Value: "l", Label: "Large"}},
	})
	if err != nil {
		t.Fatalf("new radio: %v", err)
	}
	defer r.Close()

	if _, ok := r.Selected(); ok {
		t.Fatalf("expected no initial selection")
	}
	if err := r.Select("l"); err != nil {
		t.Fatalf("select: %v", err)
	}
	if !r.IsSelected("l") || r.IsSelected("s") || r.Value() != "l" {
		t.Fatalf("unexpected selection state value=%q", r.Value())
	}
}

func TestSearchableDropdown_FiltersOnDebouncedTerm(t *testing.T) {
	clock := testsupport.NewManualClock()
	s, err := field.NewSearchableDropdown(field.SearchableDropdownConfig{Name: "fruit", Choices: fruit}, field.WithClock(clock))
	if err != nil {
		t.Fatalf("new searchable: %v", err)
	}
	defer s.Close()

	s.SetSearch("APP")
	if !s.IsOpen() {
		t.Fatalf("typing should open the list")
	}
	if got := len(s.Filtered()); got != len(fruit) {
		t.Fatalf("filter applied before debounce, got %d options", got)
	}

	clock.Advance(field.SearchDelay)
	want := []field.Choice{{Value: "apple", Label: "Apple"}, {Value: "pineapple", Label: "Pineapple"}}
	if diff := cmp.Diff(want, s.Filtered()); diff != "" {
		t.Fatalf("filtered mismatch (-want +got):\n%s", diff)
	}

	s.SetSearch("kiwi")
	s.FlushSearch()
	if got := s.Filtered(); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestSearchableDropdown_KeyboardSelection(t *testing.T) {
	clock := testsupport.NewManualClock()
	s, err := field.NewSearchableDropdown(field.SearchableDropdownConfig{Name: "fruit", Choices: fruit, Required: true}, field.WithClock(clock))
	if err != nil {
		t.Fatalf("new searchable: %v", err)
	}
	defer s.Close()

	s.SetSearch("app")
	clock.Advance(field.SearchDelay)

	if got := s.HighlightNext(); got != 0 {
		t.Fatalf("expected highlight 0, got %d", got)
	}
	s.HighlightNext()
	if got := s.HighlightNext(); got != 1 {
		t.Fatalf("highlight should stop at the last match, got %d", got)
	}
	s.HighlightPrev()
	s.HighlightPrev()
	if got := s.HighlightNext(); got != 1 {
		t.Fatalf("expected highlight 1, got %d", got)
	}

	choice, ok := s.SelectHighlighted()
	if !ok || choice.Value != "pineapple" {
		t.Fatalf("unexpected selection %+v ok=%v", choice, ok)
	}
	if s.SearchTerm() != "Pineapple" || s.IsOpen() || s.Highlighted() != -1 {
		t.Fatalf("unexpected post-select state term=%q open=%v highlight=%d", s.SearchTerm(), s.IsOpen(), s.Highlighted())
	}
	if s.Value() != "pineapple" || !s.Touched() || s.Error() != "" {
		t.Fatalf("unexpected value %q touched=%v err=%q", s.Value(), s.Touched(), s.Error())
	}
	if clock.Pending() != 0 {
		t.Fatalf("expected no pending timers after select, got %d", clock.Pending())
	}
}

func TestSearchableDropdown_CloseStopsSearchTimer(t *testing.T) {
	clock := testsupport.NewManualClock()
	s, err := field.NewSearchableDropdown(field.SearchableDropdownConfig{Name: "fruit", Choices: fruit}, field.WithClock(clock))
	if err != nil {
		t.Fatalf("new searchable: %v", err)
	}

	s.SetSearch("ch")
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if clock.Pending() != 0 {
		t.Fatalf("search timer leaked after close")
	}
}
