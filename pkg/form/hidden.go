package form

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DefaultCSRFName is the hidden value name used by WithCSRFToken.
const DefaultCSRFName = "_csrf"

// HiddenField is a value submitted with the form but never shown or
// validated.
type HiddenField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// WithHidden seeds a hidden value. Blank names are ignored and a repeated name
// keeps the last value.
func WithHidden(name, value string) Option {
	return func(f *Form) {
		if key := strings.TrimSpace(name); key != "" {
			f.putHidden(key, value)
		}
	}
}

// WithCSRFToken seeds the anti-forgery token under DefaultCSRFName.
func WithCSRFToken(token string) Option {
	return WithHidden(DefaultCSRFName, token)
}

// SetHidden records or replaces a hidden value. The name may not be blank and
// may not belong to a field or button.
func (f *Form) SetHidden(name, value string) error {
	key := strings.TrimSpace(name)
	if key == "" {
		return fmt.Errorf("form: hidden value name is required")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, taken := f.names[key]; taken {
		return fmt.Errorf("%w: %q", ErrDuplicateField, key)
	}
	f.putHidden(key, value)
	return nil
}

// RemoveHidden drops a hidden value. Unknown names are ignored.
func (f *Form) RemoveHidden(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.hidden, strings.TrimSpace(name))
}

// Hidden returns the hidden values ordered by name.
func (f *Form) Hidden() []HiddenField {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.hidden) == 0 {
		return nil
	}
	out := make([]HiddenField, 0, len(f.hidden))
	for _, name := range slices.Sorted(maps.Keys(f.hidden)) {
		out = append(out, HiddenField{Name: name, Value: f.hidden[name]})
	}
	return out
}

// putHidden expects f.mu held or f still under construction.
func (f *Form) putHidden(name, value string) {
	if f.hidden == nil {
		f.hidden = make(map[string]string)
	}
	f.hidden[name] = value
}
