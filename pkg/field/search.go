package field

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"

	"github.com/goliatone/go-formkit/pkg/debounce"
)

const (
	// DefaultSearchPlaceholder is shown in an empty search box.
	DefaultSearchPlaceholder = "Search..."
	// NoOptionsMessage is shown when the filter matches nothing.
	NoOptionsMessage = "No options found"
)

// SearchableDropdownConfig describes a filterable single-select list.
type SearchableDropdownConfig struct {
	Name        string
	Label       string
	Placeholder string
	Value       string
	Choices     []Choice
	Required    bool
}

// SearchableDropdown filters its options by a debounced search term matched
// case-insensitively against option labels, and supports keyboard style
// highlight navigation.
type SearchableDropdown struct {
	base
	choices choiceSet
	search  *debounce.Debouncer[string]

	mu          sync.Mutex
	term        string
	open        bool
	highlighted int
}

// NewSearchableDropdown constructs the field. The search term uses
// SearchDelay unless WithDelay overrides it; the selection itself settles on
// commit.
func NewSearchableDropdown(cfg SearchableDropdownConfig, opts ...Option) (*SearchableDropdown, error) {
	choices, err := newChoiceSet(cfg.Choices)
	if err != nil {
		return nil, err
	}
	if err := choices.validSelection(cfg.Value); err != nil {
		return nil, err
	}
	placeholder := cfg.Placeholder
	if placeholder == "" {
		placeholder = DefaultSearchPlaceholder
	}

	s := &SearchableDropdown{
		base:        newBase(cfg.Name, cfg.Label, placeholder, WidgetSearchableDropdown, cfg.Required),
		choices:     choices,
		highlighted: -1,
	}
	if selected, ok := choices.lookup(cfg.Value); ok {
		s.term = selected.Label
	}

	o := newOptions(SearchDelay, opts)
	s.search = debounce.New(s.term, o.delay, debounce.WithClock(o.clock))
	ctrlOpts := append(o.controllerOptions(), WithInitialValue(cfg.Value))
	s.ctrl = NewController(s.name, requiredChecker(cfg.Required), ctrlOpts...)
	return s, nil
}

// Choices returns every offered option in order.
func (s *SearchableDropdown) Choices() []Choice {
	return s.choices.all()
}

// SetSearch records a new search term and opens the list. Filtering follows
// the debounced term.
func (s *SearchableDropdown) SetSearch(term string) {
	s.mu.Lock()
	s.term = term
	s.open = true
	s.mu.Unlock()
	s.search.Set(term)
}

// SearchTerm returns the raw search box content.
func (s *SearchableDropdown) SearchTerm() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term
}

// FlushSearch applies a pending search term immediately.
func (s *SearchableDropdown) FlushSearch() {
	s.search.Flush()
}

// Filtered returns the options whose label contains the debounced term.
func (s *SearchableDropdown) Filtered() []Choice {
	return filterChoices(s.choices.items, s.search.Stable())
}

// Open shows the option list.
func (s *SearchableDropdown) Open() {
	s.mu.Lock()
	s.open = true
	s.mu.Unlock()
}

// Dismiss hides the option list and clears the highlight. Leaving the list
// counts as a blur.
func (s *SearchableDropdown) Dismiss() {
	s.mu.Lock()
	s.open = false
	s.highlighted = -1
	s.mu.Unlock()
	s.ctrl.Blur()
}

// IsOpen reports whether the option list is shown.
func (s *SearchableDropdown) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Highlighted returns the highlighted index into Filtered, or -1.
func (s *SearchableDropdown) Highlighted() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.highlighted
}

// HighlightNext moves the highlight down, stopping at the last match.
func (s *SearchableDropdown) HighlightNext() int {
	count := len(s.Filtered())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.highlighted = min(s.highlighted+1, count-1)
	return s.highlighted
}

// HighlightPrev moves the highlight up, stopping at the first match.
func (s *SearchableDropdown) HighlightPrev() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.highlighted = max(s.highlighted-1, 0)
	return s.highlighted
}

// SelectHighlighted commits the highlighted match.
func (s *SearchableDropdown) SelectHighlighted() (Choice, bool) {
	filtered := s.Filtered()
	idx := s.Highlighted()
	if idx < 0 || idx >= len(filtered) {
		return Choice{}, false
	}
	choice := filtered[idx]
	if err := s.Select(choice.Value); err != nil {
		return Choice{}, false
	}
	return choice, true
}

// Select commits an option: the search box shows its label and the list
// closes.
func (s *SearchableDropdown) Select(value string) error {
	if err := s.choices.validSelection(value); err != nil {
		return err
	}
	label := ""
	if choice, ok := s.choices.lookup(value); ok {
		label = choice.Label
	}

	s.mu.Lock()
	s.term = label
	s.open = false
	s.highlighted = -1
	s.mu.Unlock()

	s.search.Set(label)
	s.search.Flush()
	s.ctrl.Commit(value)
	return nil
}

// Selected returns the committed option, if any.
func (s *SearchableDropdown) Selected() (Choice, bool) {
	return s.choices.lookup(s.ctrl.Value())
}

// Close stops both the selection and the search debouncers.
func (s *SearchableDropdown) Close() error {
	s.search.Stop()
	return s.ctrl.Close()
}

// State returns the presentational snapshot; Choices holds the filtered list.
func (s *SearchableDropdown) State() State {
	st := s.base.State()
	st.Choices = s.Filtered()
	return st
}

func filterChoices(items []Choice, term string) []Choice {
	needle := cases.Fold().String(strings.TrimSpace(term))
	out := make([]Choice, 0, len(items))
	for _, item := range items {
		if needle == "" || strings.Contains(cases.Fold().String(item.Label), needle) {
			out = append(out, item)
		}
	}
	return out
}
