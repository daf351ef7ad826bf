package timezones

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/goliatone/go-formkit/pkg/field"
)

// DropdownConfig describes a timezone picker.
type DropdownConfig struct {
	Name     string
	Label    string
	Value    string
	Required bool
}

// Component bundles the zone list with its search options.
type Component struct {
	opts Options
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Search ranks the component's zones against query.
func (c *Component) Search(query string, limit int) ([]string, error) {
	opts := c.Options()
	zones, err := opts.zones()
	if err != nil {
		return nil, fmt.Errorf("timezones: load zones: %w", err)
	}
	return Search(zones, query, limit, opts), nil
}

// NewDropdown builds a searchable dropdown over every zone. Label defaults to
// "Timezone".
func (c *Component) NewDropdown(cfg DropdownConfig, opts ...field.Option) (*field.SearchableDropdown, error) {
	zones, err := c.Options().zones()
	if err != nil {
		return nil, fmt.Errorf("timezones: load zones: %w", err)
	}
	label := cfg.Label
	if label == "" {
		label = "Timezone"
	}
	return field.NewSearchableDropdown(field.SearchableDropdownConfig{
		Name:     cfg.Name,
		Label:    label,
		Value:    cfg.Value,
		Required: cfg.Required,
		Choices:  Choices(zones),
	}, opts...)
}

// Location resolves a zone name picked from the dropdown. Blank names map to
// time.Local.
func Location(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("timezones: %w", err)
	}
	return loc, nil
}
