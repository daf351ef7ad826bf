package field

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrDuplicateOption is returned when two choices share a value.
	ErrDuplicateOption = errors.New("field: duplicate option value")
	// ErrUnknownOption is returned when selecting a value that is not offered.
	ErrUnknownOption = errors.New("field: unknown option value")
)

// Choice is one entry of an ordered option list.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type choiceSet struct {
	items []Choice
	index map[string]int
}

func newChoiceSet(items []Choice) (choiceSet, error) {
	set := choiceSet{
		items: make([]Choice, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, item := range items {
		value := strings.TrimSpace(item.Value)
		if value == "" {
			return choiceSet{}, fmt.Errorf("field: option %q has an empty value", item.Label)
		}
		if _, exists := set.index[value]; exists {
			return choiceSet{}, fmt.Errorf("%w: %q", ErrDuplicateOption, value)
		}
		label := sanitizeText(item.Label)
		if label == "" {
			label = value
		}
		set.index[value] = len(set.items)
		set.items = append(set.items, Choice{Value: value, Label: label})
	}
	return set, nil
}

func (s choiceSet) all() []Choice {
	return slices.Clone(s.items)
}

func (s choiceSet) lookup(value string) (Choice, bool) {
	idx, ok := s.index[value]
	if !ok {
		return Choice{}, false
	}
	return s.items[idx], true
}

// validSelection accepts any offered value, plus "" which clears the field.
func (s choiceSet) validSelection(value string) error {
	if value == "" {
		return nil
	}
	if _, ok := s.index[value]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOption, value)
	}
	return nil
}
